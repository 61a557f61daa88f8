package projects

import (
	"math"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type OverdueTask struct {
	model.Task
	DaysOverdue int `json:"days_overdue"`
}

type BurndownPoint struct {
	Label     string `json:"label"`
	Remaining int    `json:"remaining"`
}

type Metrics struct {
	Workload map[string]int  `json:"workload"`
	Overdue  []OverdueTask   `json:"overdue"`
	Burndown []BurndownPoint `json:"burndown"`
}

// Aggregate derives the dashboard metrics for a project's open tasks.
//
// Workload is keyed by member name: tasks are matched on the assignee's
// display name, so two members sharing a name share a count. WorkloadByID is
// the id-keyed variant.
func Aggregate(tasks []model.Task, team []model.Member, ref time.Time) Metrics {
	metrics := Metrics{
		Workload: make(map[string]int, len(team)),
		Overdue:  []OverdueTask{},
		Burndown: []BurndownPoint{},
	}
	for _, member := range team {
		metrics.Workload[member.Name] = 0
	}
	for _, task := range tasks {
		if _, ok := metrics.Workload[task.AssignedUserName]; ok {
			metrics.Workload[task.AssignedUserName]++
		}
	}

	for _, task := range tasks {
		if days, ok := overdueBy(task.DueDate, ref); ok {
			metrics.Overdue = append(metrics.Overdue, OverdueTask{Task: task, DaysOverdue: days})
		}
	}

	if len(tasks) > 0 {
		metrics.Burndown = []BurndownPoint{
			{Label: "Start", Remaining: len(tasks) + 1},
			{Label: "Current", Remaining: len(tasks)},
		}
	}
	return metrics
}

func WorkloadByID(tasks []model.Task, team []model.Member) map[int64]int {
	workload := make(map[int64]int, len(team))
	for _, member := range team {
		workload[member.ID] = 0
	}
	for _, task := range tasks {
		if _, ok := workload[task.AssignedUserID]; ok {
			workload[task.AssignedUserID]++
		}
	}
	return workload
}

// DaysOverdue counts whole days from the due date to the start of the
// reference day. Tasks due today or later report 0.
func DaysOverdue(due model.Date, ref time.Time) int {
	days, _ := overdueBy(due, ref)
	return days
}

func overdueBy(due model.Date, ref time.Time) (int, bool) {
	if due.IsZero() {
		return 0, false
	}
	refDay := model.DateOf(ref)
	if !due.Before(refDay.Time) {
		return 0, false
	}
	return int(math.Ceil(refDay.Sub(due.Time).Hours() / 24)), true
}
