package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestFlagOf(t *testing.T) {
	now := time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)
	due := func(d time.Time) model.Todo { return model.Todo{DueAt: &d} }

	assert.Equal(t, FlagOverdue, FlagOf(due(time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)), now))
	assert.Equal(t, FlagDueSoon, FlagOf(due(time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)), now))
	assert.Equal(t, FlagNone, FlagOf(due(time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)), now))
	assert.Equal(t, FlagNone, FlagOf(due(now), now))
	assert.Equal(t, FlagNone, FlagOf(model.Todo{}, now))

	done := due(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
	done.Completed = true
	assert.Equal(t, FlagNone, FlagOf(done, now))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(model.TodoCounts{}))
	assert.Equal(t, 33, Percent(model.TodoCounts{Completed: 1, Total: 3}))
	assert.Equal(t, 67, Percent(model.TodoCounts{Completed: 2, Total: 3}))
	assert.Equal(t, 100, Percent(model.TodoCounts{Completed: 4, Total: 4}))
}

func TestParseStatusAndCycle(t *testing.T) {
	status, err := ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, model.TodoAll, status)

	status, err = ParseStatus(" Pending ")
	require.NoError(t, err)
	assert.Equal(t, model.TodoPending, status)

	_, err = ParseStatus("done")
	assert.ErrorContains(t, err, "want all, pending or completed")

	assert.Equal(t, model.TodoPending, Cycle(model.TodoAll))
	assert.Equal(t, model.TodoCompleted, Cycle(model.TodoPending))
	assert.Equal(t, model.TodoAll, Cycle(model.TodoCompleted))
}

func TestNormalizeAndParseDue(t *testing.T) {
	input, err := Normalize(model.TodoInput{Title: " Plan ", Category: "personal", Priority: "medium"})
	require.NoError(t, err)
	assert.Equal(t, "Plan", input.Title)
	assert.Equal(t, "Personal", input.Category)
	assert.Equal(t, "Medium", input.Priority)

	_, err = Normalize(model.TodoInput{Title: "Plan", Priority: "urgent"})
	assert.ErrorContains(t, err, `unknown priority "urgent"`)

	due, err := ParseDue("2025-09-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC), *due)

	due, err = ParseDue("")
	require.NoError(t, err)
	assert.Nil(t, due)

	_, err = ParseDue("12/09/2025")
	assert.ErrorContains(t, err, "want YYYY-MM-DD")
}
