package attendance

import (
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Status struct {
	HasCheckedIn  bool `json:"has_checked_in"`
	HasCheckedOut bool `json:"has_checked_out"`
	HasLeave      bool `json:"has_leave"`
}

// Guard carries the request-lifecycle state that gates actions on top of the
// derived status.
type Guard struct {
	InFlight     bool `json:"in_flight"`
	CheckInLock  bool `json:"check_in_lock"`
	CheckOutLock bool `json:"check_out_lock"`
}

type Actions struct {
	CheckIn  bool `json:"check_in"`
	CheckOut bool `json:"check_out"`
	Leave    bool `json:"leave"`
}

func DeriveStatus(records []model.AttendanceRecord, today model.DateStamp) Status {
	var status Status
	for _, record := range records {
		checkedInToday := onDay(record.CheckInAt, today)
		if checkedInToday {
			status.HasCheckedIn = true
		}
		if onDay(record.CheckOutAt, today) {
			status.HasCheckedOut = true
		}
		if checkedInToday && strings.Contains(record.Status, "Leave") {
			status.HasLeave = true
		}
	}
	return status
}

func Permitted(status Status, guard Guard) Actions {
	return Actions{
		CheckIn:  !(status.HasCheckedIn || status.HasLeave || guard.InFlight || guard.CheckInLock),
		CheckOut: status.HasCheckedIn && !(status.HasCheckedOut || status.HasLeave || guard.InFlight || guard.CheckOutLock),
		Leave:    !(status.HasCheckedIn || status.HasCheckedOut || guard.InFlight),
	}
}

func onDay(value *time.Time, day model.DateStamp) bool {
	return value != nil && model.StampOf(*value) == day
}
