package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/todo"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func actionLabel(allowed bool, phase attendance.Phase) string {
	switch {
	case phase == attendance.Pending:
		return "pending"
	case phase == attendance.Settled:
		return "done"
	case allowed:
		return "ready"
	default:
		return "unavailable"
	}
}

func selectionPrefix(selected, focused bool) string {
	switch {
	case selected && focused:
		return ">"
	case selected:
		return "*"
	default:
		return " "
	}
}

// calendarStrip draws one character per day: . none, o open, # complete,
// L leave.
func calendarStrip(days []attendance.CalendarDay) string {
	var b strings.Builder
	for _, day := range days {
		switch day.Kind {
		case attendance.DayOpen:
			b.WriteByte('o')
		case attendance.DayComplete:
			b.WriteByte('#')
		case attendance.DayLeave:
			b.WriteByte('L')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func newestFirst(records []model.AttendanceRecord) []model.AttendanceRecord {
	sorted := append([]model.AttendanceRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CheckInAt, sorted[j].CheckInAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return sorted
}

func formatRecord(record model.AttendanceRecord) string {
	day, in, out := "----------", "--:--", "--:--"
	if record.CheckInAt != nil {
		day = string(model.StampOf(*record.CheckInAt))
		in = record.CheckInAt.Format("15:04")
	}
	if record.CheckOutAt != nil {
		out = record.CheckOutAt.Format("15:04")
	}
	return fmt.Sprintf("%s %s-%s %s", day, in, out, attendance.RowLabel(record))
}

func formatProjectSummary(project model.Project, now time.Time) string {
	return fmt.Sprintf("%s | %d%% | %d tasks | %s", project.Name, project.Progress, len(project.Tasks), projects.LaunchCountdown(project.LaunchDate, now))
}

func formatTask(task model.Task) string {
	due := "no due date"
	if !task.DueDate.IsZero() {
		due = "due " + task.DueDate.String()
	}
	assignee := task.AssignedUserName
	if assignee == "" {
		assignee = "unassigned"
	}
	return fmt.Sprintf("%s | %s | %s | %s", task.Title, assignee, task.Priority, due)
}

func formatWorkload(workload map[string]int) []string {
	if len(workload) == 0 {
		return []string{"  no team members"}
	}
	lines := make([]string, 0, len(workload))
	for _, name := range sortedNames(workload) {
		lines = append(lines, fmt.Sprintf("  %-16s %s", name, humanize.Comma(int64(workload[name]))))
	}
	return lines
}

func formatActivity(entry model.Activity) string {
	line := fmt.Sprintf("%s | %s", humanize.Time(entry.CreatedAt), entry.Kind)
	if entry.Details != "" {
		line += " | " + entry.Details
	}
	return line
}

func formatTodo(item model.Todo, now time.Time) string {
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s | %s | %s", box, item.Title, item.Category, item.Priority)
	if item.DueAt != nil {
		line += " | due " + item.DueAt.Format(model.DateLayout)
	}
	if flag := todo.FlagOf(item, now); flag != todo.FlagNone {
		line += " | " + string(flag)
	}
	return line
}
