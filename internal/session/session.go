package session

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoSession    = errors.New("not logged in")
	ErrExpired      = errors.New("session expired")
	ErrEnded        = errors.New("session ended")
)

// Claims is the subset of the backend token payload the client reads. The
// token is never verified locally; the server remains the authority.
type Claims struct {
	ID   int64      `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	mu        sync.Mutex
	token     string
	role      model.Role
	name      string
	userID    int64
	remember  bool
	createdAt time.Time
	ended     bool
	hooks     []func()
}

func New(token string, role model.Role, remember bool, createdAt time.Time) *Session {
	s := &Session{
		token:     token,
		role:      role,
		remember:  remember,
		createdAt: createdAt,
	}
	if claims, ok := DecodeClaims(token); ok {
		s.userID = claims.ID
		s.name = claims.Name
		if s.role == "" {
			s.role = claims.Role
		}
	}
	return s
}

func FromSaved(saved model.SavedSession) *Session {
	s := New(saved.Token, saved.Role, saved.Remember, saved.CreatedAt)
	if saved.Name != "" {
		s.name = saved.Name
	}
	return s
}

// DecodeClaims reads the payload of a JWT without checking its signature.
// Opaque tokens report false.
func DecodeClaims(token string) (Claims, bool) {
	var claims Claims
	if token == "" {
		return claims, false
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, false
	}
	return claims, true
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ""
	}
	return s.token
}

func (s *Session) Role() model.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

func (s *Session) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) Remember() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remember
}

func (s *Session) CreatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createdAt
}

func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended && s.token != ""
}

// OnEnd registers fn to run when the session ends. Hooks registered after the
// session ended run immediately.
func (s *Session) OnEnd(fn func()) {
	s.mu.Lock()
	if !s.ended {
		s.hooks = append(s.hooks, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn()
}

// End clears the credential and runs the end hooks exactly once.
func (s *Session) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.token = ""
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

func (s *Session) Saved() model.SavedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SavedSession{
		Token:     s.token,
		Role:      s.role,
		Name:      s.name,
		Remember:  s.remember,
		CreatedAt: s.createdAt,
	}
}
