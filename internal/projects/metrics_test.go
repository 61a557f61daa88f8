package projects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestAggregateSingleOverdueTask(t *testing.T) {
	tasks := []model.Task{{ID: 1, AssignedUserName: "Alice", DueDate: model.NewDate(2025, time.September, 1)}}
	team := []model.Member{{ID: 1, Name: "Alice"}}
	ref := time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)

	metrics := Aggregate(tasks, team, ref)
	assert.Equal(t, map[string]int{"Alice": 1}, metrics.Workload)
	require.Len(t, metrics.Overdue, 1)
	assert.Equal(t, 4, metrics.Overdue[0].DaysOverdue)
	assert.Equal(t, int64(1), metrics.Overdue[0].ID)
	assert.Equal(t, []BurndownPoint{{"Start", 2}, {"Current", 1}}, metrics.Burndown)
}

func TestDaysOverdueBoundaries(t *testing.T) {
	ref := time.Date(2025, time.September, 5, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(model.DateOf(ref), ref))
	assert.Equal(t, 1, DaysOverdue(model.DateOf(ref.Add(-24*time.Hour)), ref))
	assert.Equal(t, 0, DaysOverdue(model.NewDate(2025, time.September, 9), ref))
	assert.Equal(t, 0, DaysOverdue(model.Date{}, ref))

	metrics := Aggregate([]model.Task{{DueDate: model.DateOf(ref)}}, nil, ref)
	assert.Empty(t, metrics.Overdue)
}

func TestWorkloadDropsUnknownAssignees(t *testing.T) {
	tasks := []model.Task{
		{AssignedUserName: "Alice", AssignedUserID: 1},
		{AssignedUserName: "Bob", AssignedUserID: 2},
		{AssignedUserName: "Mallory", AssignedUserID: 9},
		{AssignedUserName: "Alice", AssignedUserID: 1},
	}
	team := []model.Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}}

	workload := Aggregate(tasks, team, time.Now()).Workload
	assert.Equal(t, map[string]int{"Alice": 2, "Bob": 1, "Carol": 0}, workload)

	total := 0
	for _, count := range workload {
		total += count
	}
	assert.LessOrEqual(t, total, len(tasks))

	assert.Equal(t, map[int64]int{1: 2, 2: 1, 3: 0}, WorkloadByID(tasks, team))
}

func TestWorkloadNameCollision(t *testing.T) {
	tasks := []model.Task{{AssignedUserName: "Sam", AssignedUserID: 1}, {AssignedUserName: "Sam", AssignedUserID: 2}}
	team := []model.Member{{ID: 1, Name: "Sam"}, {ID: 2, Name: "Sam"}}

	assert.Equal(t, map[string]int{"Sam": 2}, Aggregate(tasks, team, time.Now()).Workload)
	assert.Equal(t, map[int64]int{1: 1, 2: 1}, WorkloadByID(tasks, team))
}

func TestAggregateEmptyInputs(t *testing.T) {
	metrics := Aggregate(nil, nil, time.Now())
	assert.Empty(t, metrics.Workload)
	assert.NotNil(t, metrics.Workload)
	assert.Empty(t, metrics.Overdue)
	assert.Empty(t, metrics.Burndown)

	metrics = Aggregate(nil, []model.Member{{Name: "Alice"}}, time.Now())
	assert.Equal(t, map[string]int{"Alice": 0}, metrics.Workload)
}

func TestNormalizePhase(t *testing.T) {
	assert.Equal(t, 100, NormalizePhase(model.Phase{Status: PhaseCompleted, Progress: 20}).Progress)
	assert.Equal(t, 0, NormalizePhase(model.Phase{Status: PhaseWaiting, Progress: 60}).Progress)
	assert.Equal(t, 100, NormalizePhase(model.Phase{Status: PhaseInProgress, Progress: 140}).Progress)
	assert.Equal(t, 0, NormalizePhase(model.Phase{Status: PhaseInProgress, Progress: -5}).Progress)
	assert.Equal(t, 45, NormalizePhase(model.Phase{Status: PhaseInProgress, Progress: 45}).Progress)

	rows := Phases(model.Project{Phases: map[string]model.Phase{
		"Testing": {Status: PhaseWaiting, Progress: 10},
		"Design":  {Status: PhaseCompleted},
	}})
	require.Len(t, rows, 2)
	assert.Equal(t, "Design", rows[0].Name)
	assert.Equal(t, 100, rows[0].Progress)
	assert.Equal(t, 0, rows[1].Progress)
}

func TestVisibleProjectsAndSelection(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Team: []model.Member{{Name: "Alice"}}},
		{ID: 2, Team: []model.Member{{Name: "Bob"}}},
	}

	assert.Len(t, VisibleProjects(projects, model.RoleAdmin, ""), 2)
	visible := VisibleProjects(projects, model.RoleTeamLeader, "Bob")
	require.Len(t, visible, 1)
	assert.Equal(t, int64(2), visible[0].ID)
	assert.Len(t, VisibleProjects(projects, model.RoleEmployee, "Bob"), 2)

	id, ok := DefaultSelection(visible, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	id, ok = DefaultSelection(projects, 2)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	_, ok = DefaultSelection(nil, 2)
	assert.False(t, ok)
}

func TestLaunchCountdownAndBudget(t *testing.T) {
	now := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "launches today", LaunchCountdown(model.NewDate(2025, time.September, 10), now))
	assert.Equal(t, "launches 5 days from now", LaunchCountdown(model.NewDate(2025, time.September, 15), now))
	assert.Equal(t, "launched 2 days ago", LaunchCountdown(model.NewDate(2025, time.September, 8), now))
	assert.Equal(t, "no launch date", LaunchCountdown(model.Date{}, now))

	assert.Equal(t, 250.0, BudgetRemaining(model.Project{TotalBudget: 1000, UsedBudget: 750}))
}
