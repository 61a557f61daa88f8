package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Persister interface {
	SaveSession(ctx context.Context, saved model.SavedSession) error
	LoadSession(ctx context.Context) (model.SavedSession, bool, error)
	DeleteSession(ctx context.Context) error
}

type Manager struct {
	store  Persister
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

func NewManager(store Persister, ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, ttl: ttl, now: time.Now, logger: logger}
}

func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Manager) Start(ctx context.Context, token string, role model.Role, remember bool) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("start session: empty token")
	}
	sess := New(token, role, remember, m.now())
	if err := m.store.SaveSession(ctx, sess.Saved()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	m.watch(sess)
	return sess, nil
}

// Resume loads the stored credential. Sessions saved without remember expire
// after the configured TTL.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	saved, ok, err := m.store.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok || saved.Token == "" {
		return nil, ErrNoSession
	}
	if !saved.Remember && m.ttl > 0 && m.now().Sub(saved.CreatedAt) > m.ttl {
		if err := m.store.DeleteSession(ctx); err != nil {
			m.logger.Warn("delete expired session", "error", err)
		}
		return nil, ErrExpired
	}
	sess := FromSaved(saved)
	m.watch(sess)
	return sess, nil
}

// Update persists changes such as a name fetched after login.
func (m *Manager) Update(ctx context.Context, sess *Session) error {
	if !sess.Valid() {
		return ErrEnded
	}
	return m.store.SaveSession(ctx, sess.Saved())
}

func (m *Manager) Logout(sess *Session) {
	if sess == nil {
		return
	}
	sess.End()
}

func (m *Manager) watch(sess *Session) {
	sess.OnEnd(func() {
		if err := m.store.DeleteSession(context.Background()); err != nil {
			m.logger.Warn("delete session", "error", err)
			return
		}
		m.logger.Info("session ended")
	})
}
