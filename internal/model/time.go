package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateStamp is a calendar day written as YYYY-MM-DD.
type DateStamp string

// StampOf keeps the location the time was parsed in, so a record written as
// "2025-09-10T23:30:00+05:30" belongs to 2025-09-10 regardless of the
// reader's zone.
func StampOf(t time.Time) DateStamp {
	return DateStamp(t.Format(DateLayout))
}

func Today(now time.Time) DateStamp {
	return StampOf(now.UTC())
}

func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// Date is a day-precision value stored as UTC midnight.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(DateLayout, trimmed); err == nil {
		return DateOf(parsed), nil
	}
	parsed, err := ParseTimestamp(trimmed)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", value)
	}
	return DateOf(parsed), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Stamp() DateStamp {
	return DateStamp(d.String())
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (r *AttendanceRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.RawMessage `json:"id"`
		CheckInAt  *string         `json:"check_in_at"`
		CheckOutAt *string         `json:"check_out_at"`
		Status     string          `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	record := AttendanceRecord{Status: raw.Status, ID: rawID(raw.ID)}
	var err error
	if record.CheckInAt, err = optionalTimestamp(raw.CheckInAt); err != nil {
		return fmt.Errorf("check_in_at: %w", err)
	}
	if record.CheckOutAt, err = optionalTimestamp(raw.CheckOutAt); err != nil {
		return fmt.Errorf("check_out_at: %w", err)
	}
	*r = record
	return nil
}

func optionalTimestamp(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := ParseTimestamp(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// rawID accepts numeric and string ids; the backend has used both.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}
