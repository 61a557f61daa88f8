package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (model.Date, model.Date) {
	first := model.NewDate(t.Year(), t.Month(), 1)
	return first, model.DateOf(first.AddDate(0, 1, -1))
}

// MonthRange parses a YYYY-MM month.
func MonthRange(month string) (model.Date, model.Date, error) {
	parsed, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return model.Date{}, model.Date{}, fmt.Errorf("invalid month %q: want YYYY-MM", month)
	}
	from, to := MonthBounds(parsed)
	return from, to, nil
}

type Band string

const (
	BandAll    Band = "all"
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

func ParseBand(value string) (Band, error) {
	switch band := Band(strings.ToLower(strings.TrimSpace(value))); band {
	case "", BandAll:
		return BandAll, nil
	case BandHigh, BandMedium, BandLow:
		return band, nil
	default:
		return "", fmt.Errorf("unknown attendance band %q", value)
	}
}

// Rate is the share of working days present, as a percentage.
func Rate(row model.MonthlyAttendance) float64 {
	if row.TotalDays <= 0 {
		return 0
	}
	return float64(row.Present) / float64(row.TotalDays) * 100
}

func BandOf(rate float64) Band {
	switch {
	case rate > 90:
		return BandHigh
	case rate >= 70:
		return BandMedium
	default:
		return BandLow
	}
}

func FilterRollup(rows []model.MonthlyAttendance, search string, band Band) []model.MonthlyAttendance {
	needle := strings.ToLower(strings.TrimSpace(search))
	filtered := make([]model.MonthlyAttendance, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !strings.Contains(strings.ToLower(row.Name), needle) {
			continue
		}
		if band != "" && band != BandAll && BandOf(Rate(row)) != band {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

type RollupStats struct {
	Employees   int     `json:"employees"`
	AverageRate float64 `json:"average_rate"`
}

func SummarizeRollup(rows []model.MonthlyAttendance) RollupStats {
	stats := RollupStats{Employees: len(rows)}
	if len(rows) == 0 {
		return stats
	}
	var total float64
	for _, row := range rows {
		total += Rate(row)
	}
	stats.AverageRate = total / float64(len(rows))
	return stats
}
