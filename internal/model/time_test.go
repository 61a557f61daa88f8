package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAttendanceRecordAcceptsShortTimestamps(t *testing.T) {
	var record AttendanceRecord
	payload := `{"id":7,"check_in_at":"2025-09-10T09:00Z","check_out_at":null,"status":"Present"}`
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record.ID != "7" {
		t.Fatalf("expected id '7', got %q", record.ID)
	}
	if record.CheckInAt == nil {
		t.Fatalf("expected check-in time")
	}
	if got := StampOf(*record.CheckInAt); got != "2025-09-10" {
		t.Fatalf("expected stamp 2025-09-10, got %s", got)
	}
	if record.CheckOutAt != nil {
		t.Fatalf("expected no check-out time")
	}
}

func TestStampOfKeepsWrittenOffset(t *testing.T) {
	parsed, err := ParseTimestamp("2025-09-10T23:30:00+05:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := StampOf(parsed); got != "2025-09-10" {
		t.Fatalf("expected 2025-09-10, got %s", got)
	}
	if got := Today(parsed); got != "2025-09-10" {
		t.Fatalf("expected UTC day 2025-09-10, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id":1,"due_date":"2025-09-01T00:00:00.000Z"}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !task.DueDate.Equal(NewDate(2025, time.September, 1).Time) {
		t.Fatalf("unexpected due date %v", task.DueDate)
	}

	var empty Task
	if err := json.Unmarshal([]byte(`{"id":2,"due_date":null}`), &empty); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !empty.DueDate.IsZero() {
		t.Fatalf("expected zero due date")
	}

	data, err := json.Marshal(NewDate(2025, time.March, 4))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-03-04"` {
		t.Fatalf("unexpected encoding %s", data)
	}
}

func TestRolePermissions(t *testing.T) {
	if !RoleTeamLeader.IsManagement() || RoleHR.IsManagement() {
		t.Fatalf("unexpected management roles")
	}
	if !RoleHR.CanManageStaff() || RoleEmployee.CanManageStaff() {
		t.Fatalf("unexpected staff roles")
	}
}
