package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

// Store keeps the local state of the client: the signed-in credential and a
// history of actions taken from this machine.
type Store struct {
	DB  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, now: time.Now}
}

func (s *Store) SaveSession(ctx context.Context, saved model.SavedSession) error {
	if strings.TrimSpace(saved.Token) == "" {
		return fmt.Errorf("session token is required")
	}
	createdAt := saved.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO sessions (id, token, role, name, remember, created_at)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    token = excluded.token,
    role = excluded.role,
    name = excluded.name,
    remember = excluded.remember,
    created_at = excluded.created_at`,
		saved.Token, string(saved.Role), saved.Name, saved.Remember, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) LoadSession(ctx context.Context) (model.SavedSession, bool, error) {
	var (
		saved model.SavedSession
		role  string
	)
	err := s.DB.QueryRowContext(ctx,
		"SELECT token, role, name, remember, created_at FROM sessions WHERE id = 1").
		Scan(&saved.Token, &role, &saved.Name, &saved.Remember, &saved.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedSession{}, false, nil
	}
	if err != nil {
		return model.SavedSession{}, false, fmt.Errorf("load session: %w", err)
	}
	saved.Role = model.Role(role)
	return saved, true, nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) AddActivity(ctx context.Context, kind, details string) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("activity kind is required")
	}
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO activity (kind, details, created_at) VALUES (?, ?, ?)",
		kind, details, s.now().UTC())
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}
	return nil
}

// ListActivity returns the newest entries first. A limit of 0 returns all.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	query := "SELECT id, kind, details, created_at FROM activity ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []model.Activity
	for rows.Next() {
		var entry model.Activity
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PruneActivity drops entries older than cutoff and reports how many went.
func (s *Store) PruneActivity(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM activity WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return result.RowsAffected()
}
