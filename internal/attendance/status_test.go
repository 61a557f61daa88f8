package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func at(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := model.ParseTimestamp(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return &parsed
}

func TestDeriveStatusCheckedInNotOut(t *testing.T) {
	records := []model.AttendanceRecord{{CheckInAt: at(t, "2025-09-10T09:00Z")}}

	status := DeriveStatus(records, "2025-09-10")
	assert.Equal(t, Status{HasCheckedIn: true}, status)

	actions := Permitted(status, Guard{})
	assert.True(t, actions.CheckOut)
	assert.False(t, actions.CheckIn)
	assert.False(t, actions.Leave)
}

func TestDeriveStatusIgnoresOtherDays(t *testing.T) {
	records := []model.AttendanceRecord{
		{CheckInAt: at(t, "2025-09-09T09:00:00Z"), CheckOutAt: at(t, "2025-09-09T18:00:00Z")},
		{CheckInAt: at(t, "2025-09-11T09:00:00Z"), Status: "On Leave"},
	}

	status := DeriveStatus(records, "2025-09-10")
	assert.Equal(t, Status{}, status)
	assert.Equal(t, Actions{CheckIn: true, Leave: true}, Permitted(status, Guard{}))
}

func TestDeriveStatusLeaveNeedsCheckInToday(t *testing.T) {
	records := []model.AttendanceRecord{
		{Status: "Leave"},
		{CheckInAt: at(t, "2025-09-10T00:00:00Z"), Status: "Sick Leave"},
	}

	status := DeriveStatus(records, "2025-09-10")
	assert.True(t, status.HasLeave)
	assert.Equal(t, Actions{}, Permitted(status, Guard{}))

	status = DeriveStatus(records[:1], "2025-09-10")
	assert.False(t, status.HasLeave)
}

func TestDeriveStatusUsesWrittenDayPrefix(t *testing.T) {
	records := []model.AttendanceRecord{{CheckInAt: at(t, "2025-09-10T23:30:00+05:30")}}
	assert.True(t, DeriveStatus(records, "2025-09-10").HasCheckedIn)
	assert.False(t, DeriveStatus(records, "2025-09-11").HasCheckedIn)
}

func TestCheckOutNeverPermittedWithoutCheckIn(t *testing.T) {
	for _, status := range []Status{
		{},
		{HasCheckedOut: true},
		{HasLeave: true},
		{HasCheckedOut: true, HasLeave: true},
	} {
		for _, guard := range []Guard{{}, {InFlight: true}, {CheckInLock: true}, {CheckOutLock: true}} {
			assert.False(t, Permitted(status, guard).CheckOut, "status %+v guard %+v", status, guard)
		}
	}
}

func TestGuardBlocksActions(t *testing.T) {
	assert.Equal(t, Actions{}, Permitted(Status{}, Guard{InFlight: true}))
	assert.Equal(t, Actions{Leave: true}, Permitted(Status{}, Guard{CheckInLock: true}))
	assert.Equal(t, Actions{}, Permitted(Status{HasCheckedIn: true}, Guard{CheckOutLock: true}))
}

func TestLifecycleTransitions(t *testing.T) {
	life := NewLifecycle()
	day := model.DateStamp("2025-09-10")

	assert.Equal(t, Idle, life.Phase(ActionCheckIn, day))
	assert.NoError(t, life.Begin(ActionCheckIn, day))
	assert.Equal(t, Pending, life.Phase(ActionCheckIn, day))
	assert.ErrorIs(t, life.Begin(ActionCheckOut, day), ErrRequestPending)
	assert.True(t, life.Guard(day).InFlight)

	life.Settle(ActionCheckIn, false)
	assert.Equal(t, Idle, life.Phase(ActionCheckIn, day))

	assert.NoError(t, life.Begin(ActionCheckIn, day))
	life.Settle(ActionCheckIn, true)
	assert.Equal(t, Settled, life.Phase(ActionCheckIn, day))
	assert.ErrorIs(t, life.Begin(ActionCheckIn, day), ErrAlreadySettled)
	assert.Equal(t, Guard{CheckInLock: true}, life.Guard(day))

	assert.Equal(t, Idle, life.Phase(ActionCheckIn, "2025-09-11"))
	assert.Equal(t, Guard{}, life.Guard("2025-09-11"))
}

func TestSummarizeAndLabels(t *testing.T) {
	records := []model.AttendanceRecord{
		{CheckInAt: at(t, "2025-09-01T09:00:00Z"), CheckOutAt: at(t, "2025-09-01T17:00:00Z"), Status: "Present"},
		{CheckInAt: at(t, "2025-09-02T09:00:00Z"), Status: "Present"},
		{Status: "Leave"},
		{},
	}

	assert.Equal(t, Summary{Present: 2, Leave: 1, CheckOuts: 1}, Summarize(records))
	assert.Equal(t, "Check-Out", RowLabel(records[0]))
	assert.Equal(t, "Present", RowLabel(records[1]))
	assert.Equal(t, "Leave", RowLabel(records[2]))
	assert.Equal(t, "-", RowLabel(records[3]))
}

func TestCalendarClassifiesDays(t *testing.T) {
	records := []model.AttendanceRecord{
		{CheckInAt: at(t, "2025-09-01T09:00:00Z"), CheckOutAt: at(t, "2025-09-01T17:00:00Z")},
		{CheckInAt: at(t, "2025-09-02T09:00:00Z")},
		{CheckInAt: at(t, "2025-09-03T00:00:00Z"), Status: "Leave"},
	}

	days := Calendar(records, 2025, time.September)
	assert.Len(t, days, 30)
	assert.Equal(t, DayComplete, days[0].Kind)
	assert.Equal(t, DayOpen, days[1].Kind)
	assert.Equal(t, DayLeave, days[2].Kind)
	assert.Equal(t, DayNone, days[3].Kind)
	assert.Equal(t, model.DateStamp("2025-09-30"), days[29].Date)
}
