package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/todo"
)

var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = "id, title, description, category, priority, due_at, completed, created_at, updated_at"

func (s *Store) CreateTodo(ctx context.Context, input model.TodoInput) (model.Todo, error) {
	input, err := todo.Normalize(input)
	if err != nil {
		return model.Todo{}, err
	}

	now := s.now().UTC()
	result, err := s.DB.ExecContext(ctx, `
INSERT INTO todos (title, description, category, priority, due_at, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		input.Title, input.Description, input.Category, input.Priority, nullTime(input.DueAt), now, now)
	if err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	created, err := s.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	if err := s.AddActivity(ctx, "todo-added", formatTodoDetails(created)); err != nil {
		return model.Todo{}, err
	}
	return created, nil
}

func (s *Store) UpdateTodo(ctx context.Context, id int64, input model.TodoInput) (model.Todo, error) {
	before, err := s.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	input, err = todo.Normalize(input)
	if err != nil {
		return model.Todo{}, err
	}

	_, err = s.DB.ExecContext(ctx, `
UPDATE todos SET title = ?, description = ?, category = ?, priority = ?, due_at = ?, updated_at = ?
WHERE id = ?`,
		input.Title, input.Description, input.Category, input.Priority, nullTime(input.DueAt), s.now().UTC(), id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}

	after, err := s.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	if err := s.AddActivity(ctx, "todo-updated", formatTodoDiff(before, after)); err != nil {
		return model.Todo{}, err
	}
	return after, nil
}

// SetTodoCompleted marks a todo done or reopens it.
func (s *Store) SetTodoCompleted(ctx context.Context, id int64, completed bool) (model.Todo, error) {
	result, err := s.DB.ExecContext(ctx,
		"UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?",
		completed, s.now().UTC(), id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return model.Todo{}, fmt.Errorf("todo %d: %w", id, ErrTodoNotFound)
	}

	updated, err := s.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	kind := "todo-reopened"
	if completed {
		kind = "todo-done"
	}
	if err := s.AddActivity(ctx, kind, fmt.Sprintf("title='%s'", updated.Title)); err != nil {
		return model.Todo{}, err
	}
	return updated, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	before, err := s.GetTodo(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return s.AddActivity(ctx, "todo-deleted", formatTodoDetails(before))
}

func (s *Store) GetTodo(ctx context.Context, id int64) (model.Todo, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+todoColumns+" FROM todos WHERE id = ?", id)
	item, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, fmt.Errorf("todo %d: %w", id, ErrTodoNotFound)
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return item, nil
}

// ListTodos returns the newest todos first. Query matches title or
// description without regard to case.
func (s *Store) ListTodos(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos WHERE 1 = 1"
	args := []any{}
	switch filter.Status {
	case model.TodoPending:
		query += " AND completed = 0"
	case model.TodoCompleted:
		query += " AND completed = 1"
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		query += " AND (instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0)"
		args = append(args, q, q)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, item)
	}
	return todos, rows.Err()
}

// CountTodos counts the whole list regardless of any filter.
func (s *Store) CountTodos(ctx context.Context) (model.TodoCounts, error) {
	var counts model.TodoCounts
	err := s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM todos").
		Scan(&counts.Total, &counts.Completed)
	if err != nil {
		return model.TodoCounts{}, fmt.Errorf("count todos: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (model.Todo, error) {
	var (
		item  model.Todo
		dueAt sql.NullTime
	)
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Category, &item.Priority,
		&dueAt, &item.Completed, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return model.Todo{}, err
	}
	if dueAt.Valid {
		due := dueAt.Time.UTC()
		item.DueAt = &due
	}
	return item, nil
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

func formatTodoDetails(item model.Todo) string {
	return fmt.Sprintf("title='%s' category=%s priority=%s due=%s", item.Title, item.Category, item.Priority, formatDue(item.DueAt))
}

func formatTodoDiff(before, after model.Todo) string {
	changes := []string{}
	if before.Title != after.Title {
		changes = append(changes, formatChange("title", before.Title, after.Title))
	}
	if before.Description != after.Description {
		changes = append(changes, formatChange("description", before.Description, after.Description))
	}
	if before.Category != after.Category {
		changes = append(changes, formatChange("category", before.Category, after.Category))
	}
	if before.Priority != after.Priority {
		changes = append(changes, formatChange("priority", before.Priority, after.Priority))
	}
	if formatDue(before.DueAt) != formatDue(after.DueAt) {
		changes = append(changes, formatChange("due", formatDue(before.DueAt), formatDue(after.DueAt)))
	}
	if len(changes) == 0 {
		return fmt.Sprintf("title='%s' no changes", after.Title)
	}
	return fmt.Sprintf("title='%s' %s", after.Title, strings.Join(changes, "; "))
}

func formatChange(field, before, after string) string {
	return fmt.Sprintf("%s: '%s' -> '%s'", field, valueOrNone(before), valueOrNone(after))
}

func valueOrNone(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "none"
	}
	return trimmed
}

func formatDue(value *time.Time) string {
	if value == nil {
		return "none"
	}
	return value.Format(model.DateLayout)
}
