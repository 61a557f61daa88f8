package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestCreateTodoNormalizesAndRecordsActivity(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	stepClock(store)
	ctx := context.Background()

	due := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)
	created, err := store.CreateTodo(ctx, model.TodoInput{
		Title:       "  Review payslips ",
		Description: "September batch",
		Category:    "design",
		Priority:    "HIGH",
		DueAt:       &due,
	})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected todo ID to be set")
	}
	if created.Title != "Review payslips" || created.Category != "Design" || created.Priority != "High" {
		t.Fatalf("unexpected todo %+v", created)
	}
	if created.Completed {
		t.Fatalf("expected new todo to be open")
	}
	if created.DueAt == nil || !created.DueAt.Equal(due) {
		t.Fatalf("expected due %v, got %v", due, created.DueAt)
	}

	activity, err := store.ListActivity(ctx, 0)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(activity) != 1 || activity[0].Kind != "todo-added" {
		t.Fatalf("expected one todo-added entry, got %+v", activity)
	}
	if !strings.Contains(activity[0].Details, "due=2025-09-12") {
		t.Fatalf("expected due date in details, got %q", activity[0].Details)
	}
}

func TestCreateTodoDefaultsAndValidation(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.CreateTodo(ctx, model.TodoInput{Title: "Call vendor"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if created.Category != "Coding" || created.Priority != "Low" || created.DueAt != nil {
		t.Fatalf("expected defaults, got %+v", created)
	}

	if _, err := store.CreateTodo(ctx, model.TodoInput{Title: "  "}); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if _, err := store.CreateTodo(ctx, model.TodoInput{Title: "x", Category: "Sales"}); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestListTodosFiltersAndCounts(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	stepClock(store)
	ctx := context.Background()

	var ids []int64
	for _, input := range []model.TodoInput{
		{Title: "Write runbook", Description: "deploy steps"},
		{Title: "Book travel", Description: "Pune offsite"},
		{Title: "Update RUNBOOK index"},
	} {
		created, err := store.CreateTodo(ctx, input)
		if err != nil {
			t.Fatalf("create %q: %v", input.Title, err)
		}
		ids = append(ids, created.ID)
	}
	if _, err := store.SetTodoCompleted(ctx, ids[0], true); err != nil {
		t.Fatalf("complete todo: %v", err)
	}

	all, err := store.ListTodos(ctx, model.TodoFilter{})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[2] {
		t.Fatalf("expected newest first, got %+v", all)
	}

	matched, err := store.ListTodos(ctx, model.TodoFilter{Query: "runbook"})
	if err != nil {
		t.Fatalf("search todos: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 runbook todos, got %d", len(matched))
	}

	matched, err = store.ListTodos(ctx, model.TodoFilter{Query: "pune"})
	if err != nil {
		t.Fatalf("search description: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != ids[1] {
		t.Fatalf("expected description match, got %+v", matched)
	}

	pending, err := store.ListTodos(ctx, model.TodoFilter{Query: "runbook", Status: model.TodoPending})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != ids[2] {
		t.Fatalf("expected only the open runbook todo, got %+v", pending)
	}

	completed, err := store.ListTodos(ctx, model.TodoFilter{Status: model.TodoCompleted})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != ids[0] {
		t.Fatalf("expected the completed todo, got %+v", completed)
	}

	counts, err := store.CountTodos(ctx)
	if err != nil {
		t.Fatalf("count todos: %v", err)
	}
	if counts.Total != 3 || counts.Completed != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestTodoUndoUpdateAndDelete(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	stepClock(store)
	ctx := context.Background()

	created, err := store.CreateTodo(ctx, model.TodoInput{Title: "Draft policy", Priority: "Medium"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if _, err := store.SetTodoCompleted(ctx, created.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	reopened, err := store.SetTodoCompleted(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if reopened.Completed {
		t.Fatalf("expected todo to be open again")
	}

	updated, err := store.UpdateTodo(ctx, created.ID, model.TodoInput{Title: "Draft leave policy", Priority: "High"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Draft leave policy" || updated.Priority != "High" {
		t.Fatalf("unexpected update %+v", updated)
	}

	activity, err := store.ListActivity(ctx, 1)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	want := "priority: 'Medium' -> 'High'"
	if len(activity) != 1 || activity[0].Kind != "todo-updated" || !strings.Contains(activity[0].Details, want) {
		t.Fatalf("expected diff %q, got %+v", want, activity)
	}

	if err := store.DeleteTodo(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetTodo(ctx, created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if err := store.DeleteTodo(ctx, created.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound on second delete, got %v", err)
	}
	if _, err := store.SetTodoCompleted(ctx, created.ID, true); !errors.Is(err, ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound on complete, got %v", err)
	}
}

// stepClock makes each write one second later than the previous one.
func stepClock(store *Store) {
	base := time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)
	step := 0
	store.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
}
