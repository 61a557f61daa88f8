package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

var (
	ErrNotFound       = errors.New("leave application not found")
	ErrAlreadyDecided = errors.New("leave application already decided")
	ErrInvalidRequest = errors.New("invalid leave request")
)

type Backend interface {
	ApplyLeave(ctx context.Context, req model.LeaveRequest) error
	MyLeaves(ctx context.Context) ([]model.Leave, error)
	LeaveApplications(ctx context.Context) ([]model.Leave, error)
	SetLeaveStatus(ctx context.Context, id int64, status model.LeaveStatus) error
}

// Gate reserves the attendance request slot while an application is sent,
// so leave cannot race a check-in.
type Gate interface {
	BeginLeave() (func(error), error)
}

type Recorder interface {
	AddActivity(ctx context.Context, kind, details string) error
}

type Service struct {
	backend  Backend
	gate     Gate
	recorder Recorder
	logger   *slog.Logger
}

func NewService(backend Backend, gate Gate, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, gate: gate, recorder: recorder, logger: logger}
}

func Validate(req model.LeaveRequest) error {
	switch {
	case strings.TrimSpace(req.Reason) == "":
		return fmt.Errorf("%w: reason is required", ErrInvalidRequest)
	case req.StartDate.IsZero() || req.EndDate.IsZero():
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	case req.EndDate.Before(req.StartDate.Time):
		return fmt.Errorf("%w: end date is before start date", ErrInvalidRequest)
	}
	return nil
}

func (s *Service) Apply(ctx context.Context, req model.LeaveRequest) error {
	if err := Validate(req); err != nil {
		return err
	}

	settle := func(error) {}
	if s.gate != nil {
		var err error
		if settle, err = s.gate.BeginLeave(); err != nil {
			return fmt.Errorf("apply leave: %w", err)
		}
	}
	err := s.backend.ApplyLeave(ctx, req)
	settle(err)
	if err != nil {
		return fmt.Errorf("apply leave: %w", err)
	}

	details := fmt.Sprintf("%s to %s: %s", req.StartDate, req.EndDate, req.Reason)
	s.logger.Info("leave applied", "start", req.StartDate.String(), "end", req.EndDate.String())
	s.record(ctx, "leave", details)
	return nil
}

func (s *Service) Mine(ctx context.Context) ([]model.Leave, error) {
	leaves, err := s.backend.MyLeaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// Applications lists what approvers see, optionally only undecided ones.
func (s *Service) Applications(ctx context.Context, pendingOnly bool) ([]model.Leave, error) {
	leaves, err := s.backend.LeaveApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	if !pendingOnly {
		return leaves, nil
	}
	return Pending(leaves), nil
}

// Decide approves or rejects a pending application and returns the list as
// the server reports it afterwards.
func (s *Service) Decide(ctx context.Context, id int64, status model.LeaveStatus) ([]model.Leave, error) {
	if status != model.LeaveApproved && status != model.LeaveRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", ErrInvalidRequest)
	}
	leaves, err := s.backend.LeaveApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	target, ok := find(leaves, id)
	if !ok {
		return nil, fmt.Errorf("leave %d: %w", id, ErrNotFound)
	}
	if !Actionable(target) {
		return nil, fmt.Errorf("leave %d is %s: %w", id, Label(target.Status), ErrAlreadyDecided)
	}

	if err := s.backend.SetLeaveStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("decide leave %d: %w", id, err)
	}
	s.record(ctx, "leave-"+strings.ToLower(string(status)), fmt.Sprintf("%d %s", id, target.EmployeeName))

	refreshed, err := s.backend.LeaveApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh leave applications: %w", err)
	}
	return refreshed, nil
}

func (s *Service) record(ctx context.Context, kind, details string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.AddActivity(ctx, kind, details); err != nil {
		s.logger.Warn("record activity", "kind", kind, "error", err)
	}
}

// Actionable reports whether approve/reject may be offered.
func Actionable(leave model.Leave) bool {
	return leave.Status == model.LeavePending
}

func Pending(leaves []model.Leave) []model.Leave {
	pending := make([]model.Leave, 0, len(leaves))
	for _, leave := range leaves {
		if Actionable(leave) {
			pending = append(pending, leave)
		}
	}
	return pending
}

func find(leaves []model.Leave, id int64) (model.Leave, bool) {
	for _, leave := range leaves {
		if leave.ID == id {
			return leave, true
		}
	}
	return model.Leave{}, false
}

// Label renders a status for display, e.g. "PENDING" as "Pending".
func Label(status model.LeaveStatus) string {
	if status == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(strings.ToLower(string(status)))
}

func ParseDecision(value string) (model.LeaveStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "approve", "approved":
		return model.LeaveApproved, nil
	case "reject", "rejected":
		return model.LeaveRejected, nil
	default:
		return "", fmt.Errorf("%w: unknown decision %q", ErrInvalidRequest, value)
	}
}
