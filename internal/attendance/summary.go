package attendance

import (
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Summary struct {
	Present   int `json:"present"`
	Leave     int `json:"leave"`
	CheckOuts int `json:"check_outs"`
}

func Summarize(records []model.AttendanceRecord) Summary {
	var summary Summary
	for _, record := range records {
		if record.CheckInAt != nil {
			summary.Present++
		}
		if strings.Contains(record.Status, "Leave") {
			summary.Leave++
		}
		if record.CheckOutAt != nil {
			summary.CheckOuts++
		}
	}
	return summary
}

type DayKind int

const (
	DayNone DayKind = iota
	DayOpen
	DayComplete
	DayLeave
)

func (k DayKind) String() string {
	switch k {
	case DayOpen:
		return "open"
	case DayComplete:
		return "complete"
	case DayLeave:
		return "leave"
	default:
		return "none"
	}
}

type CalendarDay struct {
	Date model.DateStamp `json:"date"`
	Day  int             `json:"day"`
	Kind DayKind         `json:"kind"`
}

// Calendar classifies every day of the month by the record checked in on it.
func Calendar(records []model.AttendanceRecord, year int, month time.Month) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	days := make([]CalendarDay, 0, last)
	for day := 1; day <= last; day++ {
		stamp := model.StampOf(first.AddDate(0, 0, day-1))
		entry := CalendarDay{Date: stamp, Day: day}
		if record, ok := checkedInOn(records, stamp); ok {
			switch {
			case strings.Contains(record.Status, "Leave"):
				entry.Kind = DayLeave
			case record.CheckOutAt == nil:
				entry.Kind = DayOpen
			default:
				entry.Kind = DayComplete
			}
		}
		days = append(days, entry)
	}
	return days
}

func checkedInOn(records []model.AttendanceRecord, day model.DateStamp) (model.AttendanceRecord, bool) {
	for _, record := range records {
		if onDay(record.CheckInAt, day) {
			return record, true
		}
	}
	return model.AttendanceRecord{}, false
}

func RowLabel(record model.AttendanceRecord) string {
	switch {
	case record.Status == "Leave":
		return "Leave"
	case record.CheckOutAt != nil:
		return "Check-Out"
	case record.CheckInAt != nil:
		return "Present"
	default:
		return "-"
	}
}
