// Package todo holds the rules for the personal todo list: input
// normalisation, status filters, due-date flags and completion progress.
package todo

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Flag string

const (
	FlagNone    Flag = ""
	FlagOverdue Flag = "Overdue"
	FlagDueSoon Flag = "Due Soon"
)

const dueSoonWindow = 24 * time.Hour

var Statuses = []model.TodoStatus{model.TodoAll, model.TodoPending, model.TodoCompleted}

// Normalize trims the input and maps category and priority onto their
// canonical spelling. Empty values take the first option.
func Normalize(input model.TodoInput) (model.TodoInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" {
		return model.TodoInput{}, fmt.Errorf("title is required")
	}
	category, err := canonical(model.TodoCategories, input.Category, "category")
	if err != nil {
		return model.TodoInput{}, err
	}
	priority, err := canonical(model.TodoPriorities, input.Priority, "priority")
	if err != nil {
		return model.TodoInput{}, err
	}
	input.Category = category
	input.Priority = priority
	return input, nil
}

func canonical(options []string, value, label string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return options[0], nil
	}
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return option, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q: want one of %s", label, value, strings.Join(options, ", "))
}

func ParseStatus(value string) (model.TodoStatus, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return model.TodoAll, nil
	}
	for _, status := range Statuses {
		if string(status) == value {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q: want all, pending or completed", value)
}

// ParseDue reads a YYYY-MM-DD due date as midnight UTC. Empty means none.
func ParseDue(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: want YYYY-MM-DD", value)
	}
	return &parsed, nil
}

// FlagOf marks open todos whose due time has passed, or falls within the
// next day.
func FlagOf(t model.Todo, now time.Time) Flag {
	if t.Completed || t.DueAt == nil {
		return FlagNone
	}
	switch left := t.DueAt.Sub(now); {
	case left < 0:
		return FlagOverdue
	case left > 0 && left < dueSoonWindow:
		return FlagDueSoon
	default:
		return FlagNone
	}
}

// Percent is the rounded share of completed todos, 0 for an empty list.
func Percent(counts model.TodoCounts) int {
	if counts.Total == 0 {
		return 0
	}
	return int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
}

func Cycle(status model.TodoStatus) model.TodoStatus {
	for i, s := range Statuses {
		if s == status {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return model.TodoAll
}
