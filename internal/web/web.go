package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Joseda-hg/hrdesk/internal/api"
	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/finance"
	"github.com/Joseda-hg/hrdesk/internal/metrics"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.tmpl").Funcs(template.FuncMap{
	"inr":       finance.FormatINR,
	"countdown": projects.LaunchCountdown,
}).ParseFS(templateFS, "templates/index.tmpl"))

const activityLimit = 10

// ActivityLister is the read side of the local activity history.
type ActivityLister interface {
	ListActivity(ctx context.Context, limit int) ([]model.Activity, error)
}

type Options struct {
	Session  *session.Session
	Tracker  *attendance.Tracker
	Board    *projects.Board
	Activity ActivityLister
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Now      func() time.Time
}

type Server struct {
	sess     *session.Session
	tracker  *attendance.Tracker
	board    *projects.Board
	activity ActivityLister
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

type statusPayload struct {
	Today   model.DateStamp          `json:"today"`
	Status  attendance.Status        `json:"status"`
	Actions attendance.Actions       `json:"actions"`
	Summary attendance.Summary       `json:"summary"`
	Last    *lastPayload             `json:"last_action,omitempty"`
	Records []model.AttendanceRecord `json:"records"`
}

type lastPayload struct {
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		sess:     opts.Session,
		tracker:  opts.Tracker,
		board:    opts.Board,
		activity: opts.Activity,
		metrics:  opts.Metrics,
		logger:   logger,
		now:      now,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(logRequests(s.logger, s.metrics))

	r.Get("/", s.indexHandler)
	r.Route("/api", func(r chi.Router) {
		r.Get("/attendance/status", s.statusHandler)
		r.Post("/attendance/check-in", s.actionHandler(attendance.ActionCheckIn))
		r.Post("/attendance/check-out", s.actionHandler(attendance.ActionCheckOut))
		r.Get("/projects", s.projectsHandler)
		r.Get("/projects/{id}/metrics", s.projectMetricsHandler)
		r.Get("/activity", s.activityHandler)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	var problem string
	if err := s.tracker.Refresh(r.Context()); err != nil {
		problem = api.Message(err)
	}
	if len(s.board.Projects()) == 0 {
		if err := s.board.Load(r.Context()); err != nil && problem == "" {
			problem = api.Message(err)
		}
	}

	activity, err := s.recentActivity(r.Context())
	if err != nil {
		s.logger.Warn("list activity", "error", err)
	}

	data := struct {
		Name     string
		Role     model.Role
		Status   statusPayload
		Projects []model.Project
		Activity []model.Activity
		Error    string
		Now      time.Time
	}{
		Status:   s.statusOf(),
		Projects: s.board.Visible(),
		Activity: activity,
		Error:    problem,
		Now:      s.now(),
	}
	if s.sess != nil {
		data.Name = s.sess.Name()
		data.Role = s.sess.Role()
	}

	if err := indexTemplate.Execute(w, data); err != nil {
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") != "" {
		if err := s.tracker.Refresh(r.Context()); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.statusOf())
}

func (s *Server) actionHandler(action attendance.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		switch action {
		case attendance.ActionCheckIn:
			err = s.tracker.CheckIn(r.Context())
		case attendance.ActionCheckOut:
			err = s.tracker.CheckOut(r.Context())
		}
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, s.statusOf())
	}
}

func (s *Server) projectsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") != "" || len(s.board.Projects()) == 0 {
		if err := s.board.Load(r.Context()); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.board.Visible())
}

func (s *Server) projectMetricsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, errors.New("invalid project id"))
		return
	}
	if err := s.board.Select(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	project, _ := s.board.Current()
	payload := struct {
		Project   model.Project       `json:"project"`
		Metrics   projects.Metrics    `json:"metrics"`
		Phases    []projects.PhaseRow `json:"phases"`
		Remaining float64             `json:"budget_remaining"`
		Countdown string              `json:"launch"`
	}{
		Project:   project,
		Metrics:   s.board.Metrics(),
		Phases:    projects.Phases(project),
		Remaining: projects.BudgetRemaining(project),
		Countdown: projects.LaunchCountdown(project.LaunchDate, s.now()),
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) activityHandler(w http.ResponseWriter, r *http.Request) {
	activity, err := s.recentActivity(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (s *Server) recentActivity(ctx context.Context) ([]model.Activity, error) {
	if s.activity == nil {
		return []model.Activity{}, nil
	}
	return s.activity.ListActivity(ctx, activityLimit)
}

func (s *Server) statusOf() statusPayload {
	records := s.tracker.Records()
	payload := statusPayload{
		Today:   s.tracker.Today(),
		Status:  s.tracker.Status(),
		Actions: s.tracker.Actions(),
		Summary: attendance.Summarize(records),
		Records: records,
	}
	if payload.Records == nil {
		payload.Records = []model.AttendanceRecord{}
	}
	if last, ok := s.tracker.LastAction(); ok {
		payload.Last = &lastPayload{Action: string(last.Action), At: last.At}
	}
	return payload
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, attendance.ErrRequestPending),
		errors.Is(err, attendance.ErrAlreadySettled),
		errors.Is(err, attendance.ErrNotPermitted):
		return http.StatusConflict
	}
	if status := api.StatusOf(err); status >= 400 {
		return status
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": api.Message(err)})
}
