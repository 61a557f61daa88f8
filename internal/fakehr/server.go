// Package fakehr is an in-memory HR backend used by tests and the demo mode
// of the local dashboard. It speaks the same routes and payloads as the real
// service.
package fakehr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

type Account struct {
	ID         int64
	EmployeeID string
	Password   string
	Name       string
	Email      string
	Role       model.Role
}

type Server struct {
	mu sync.Mutex

	secret     []byte
	now        func() time.Time
	accounts   map[string]*Account
	revoked    map[string]bool
	resets     map[string]string
	attendance map[int64][]model.AttendanceRecord
	leaves     []model.Leave
	projects   map[int64]*model.Project
	employees  []model.Employee
	monthly    []model.MonthlyAttendance
	reports    []model.FinancialReport
	entries    []model.FinancialEntry
	failures   map[string]int
	requests   []Request
	nextID     int64

	engine *gin.Engine
}

// Request is what the server saw of one call.
type Request struct {
	Method    string
	Path      string
	Route     string
	Bearer    string
	RequestID string
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		secret:     []byte("fakehr-signing-key"),
		now:        time.Now,
		revoked:    map[string]bool{},
		resets:     map[string]string{},
		attendance: map[int64][]model.AttendanceRecord{},
		failures:   map[string]int{},
		nextID:     1000,
	}
	s.seed()
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve starts the server on a loopback port. Callers close it.
func (s *Server) Serve() *httptest.Server {
	return httptest.NewServer(s.engine)
}

func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Fail makes every request to the route answer with status until cleared
// with status 0. Routes use gin syntax, e.g. "POST /api/projects/:id/tasks".
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, route)
		return
	}
	s.failures[route] = status
}

// Revoke invalidates a token so the next call with it gets 401.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Token issues a token for an account without going through login.
func (s *Server) Token(employeeID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[employeeID]
	if !ok {
		return "", fmt.Errorf("unknown employee %q", employeeID)
	}
	return s.sign(account)
}

// ResetToken returns the token mailed by forgot-password for email.
func (s *Server) ResetToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.resets {
		if owner == email {
			return token
		}
	}
	return ""
}

func (s *Server) Attendance(userID int64) []model.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AttendanceRecord, len(s.attendance[userID]))
	copy(out, s.attendance[userID])
	return out
}

func (s *Server) AddAttendance(userID int64, record model.AttendanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if record.ID == "" {
		record.ID = strconv.FormatInt(s.nextID, 10)
	}
	s.attendance[userID] = append(s.attendance[userID], record)
}

func (s *Server) Leaves() []model.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Leave, len(s.leaves))
	copy(out, s.leaves)
	return out
}

func (s *Server) ProjectSnapshot(id int64) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return model.Project{}, false
	}
	return *project, true
}

func (s *Server) sign(account *Account) (string, error) {
	claims := session.Claims{
		ID:   account.ID,
		Name: account.Name,
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  account.EmployeeID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) accountFor(token string) (*Account, bool) {
	if s.revoked[token] {
		return nil, false
	}
	var claims session.Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, false
	}
	account, ok := s.accounts[claims.Subject]
	return account, ok
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func bearer(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
