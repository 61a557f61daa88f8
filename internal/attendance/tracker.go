package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

var ErrNotPermitted = errors.New("action not permitted right now")

type Backend interface {
	MyAttendance(ctx context.Context, from, to model.Date) ([]model.AttendanceRecord, error)
	CheckIn(ctx context.Context) error
	CheckOut(ctx context.Context) error
}

// Recorder keeps a local history of completed actions.
type Recorder interface {
	AddActivity(ctx context.Context, kind, details string) error
}

// Observer counts action outcomes.
type Observer interface {
	ObserveAttendance(action string, ok bool)
}

type LastAction struct {
	Action Action
	At     time.Time
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

func WithRecorder(recorder Recorder) Option {
	return func(t *Tracker) { t.recorder = recorder }
}

func WithObserver(observer Observer) Option {
	return func(t *Tracker) { t.observer = observer }
}

// Tracker owns the cached attendance list for the signed-in user and applies
// check-in/check-out as tentative updates that the server later confirms.
type Tracker struct {
	backend  Backend
	life     *Lifecycle
	now      func() time.Time
	logger   *slog.Logger
	recorder Recorder
	observer Observer

	mu      sync.Mutex
	records []model.AttendanceRecord
	last    *LastAction

	// generation changes whenever records is replaced wholesale.
	generation uint64
}

func NewTracker(backend Backend, opts ...Option) *Tracker {
	t := &Tracker{
		backend: backend,
		life:    NewLifecycle(),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Today() model.DateStamp {
	return model.Today(t.now())
}

// Refresh replaces the cache with the server's records for the current month.
func (t *Tracker) Refresh(ctx context.Context) error {
	from, to := MonthBounds(t.now().UTC())
	records, err := t.backend.MyAttendance(ctx, from, to)
	if err != nil {
		t.handleFailure(err)
		return fmt.Errorf("fetch attendance: %w", err)
	}
	t.mu.Lock()
	t.records = records
	t.generation++
	t.mu.Unlock()
	return nil
}

func (t *Tracker) Records() []model.AttendanceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.records)
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DeriveStatus(t.records, t.Today())
}

func (t *Tracker) Actions() Actions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.actionsLocked(t.Today())
}

func (t *Tracker) Phase(action Action) Phase {
	return t.life.Phase(action, t.Today())
}

func (t *Tracker) LastAction() (LastAction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return LastAction{}, false
	}
	return *t.last, true
}

func (t *Tracker) CheckIn(ctx context.Context) error {
	now := t.now()
	today := model.Today(now)

	t.mu.Lock()
	if err := t.beginLocked(ActionCheckIn, today); err != nil {
		t.mu.Unlock()
		return err
	}
	prior := t.priorLocked()
	stamp := now.UTC()
	t.records = append(t.records, model.AttendanceRecord{
		ID:        "local-" + uuid.NewString(),
		CheckInAt: &stamp,
		Status:    "Present",
	})
	t.mu.Unlock()

	return t.finish(ctx, ActionCheckIn, prior, t.backend.CheckIn(ctx), now)
}

func (t *Tracker) CheckOut(ctx context.Context) error {
	now := t.now()
	today := model.Today(now)

	t.mu.Lock()
	if err := t.beginLocked(ActionCheckOut, today); err != nil {
		t.mu.Unlock()
		return err
	}
	prior := t.priorLocked()
	stamp := now.UTC()
	for i := range t.records {
		if onDay(t.records[i].CheckInAt, today) {
			t.records[i].CheckOutAt = &stamp
		}
	}
	t.mu.Unlock()

	return t.finish(ctx, ActionCheckOut, prior, t.backend.CheckOut(ctx), now)
}

// BeginLeave reserves the request slot for a leave application submitted
// elsewhere. The returned func settles it with the request outcome.
func (t *Tracker) BeginLeave() (func(error), error) {
	today := t.Today()
	t.mu.Lock()
	err := t.beginLocked(ActionLeave, today)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return func(result error) {
		if result != nil {
			t.handleFailure(result)
		}
		t.life.Settle(ActionLeave, false)
	}, nil
}

func (t *Tracker) beginLocked(action Action, today model.DateStamp) error {
	actions := t.actionsLocked(today)
	allowed := map[Action]bool{
		ActionCheckIn:  actions.CheckIn,
		ActionCheckOut: actions.CheckOut,
		ActionLeave:    actions.Leave,
	}[action]
	if !allowed {
		guard := t.life.Guard(today)
		switch {
		case guard.InFlight:
			return ErrRequestPending
		case action == ActionCheckIn && guard.CheckInLock, action == ActionCheckOut && guard.CheckOutLock:
			return ErrAlreadySettled
		default:
			return fmt.Errorf("%s: %w", action, ErrNotPermitted)
		}
	}
	return t.life.Begin(action, today)
}

func (t *Tracker) actionsLocked(today model.DateStamp) Actions {
	return Permitted(DeriveStatus(t.records, today), t.life.Guard(today))
}

// snapshot is the cache as it stood before a tentative update.
type snapshot struct {
	records    []model.AttendanceRecord
	generation uint64
}

func (t *Tracker) priorLocked() snapshot {
	return snapshot{records: slices.Clone(t.records), generation: t.generation}
}

// rollback restores prior unless a fetch replaced the list in the meantime.
func (t *Tracker) rollback(prior snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generation != prior.generation {
		return
	}
	t.records = prior.records
}

func (t *Tracker) finish(ctx context.Context, action Action, prior snapshot, err error, now time.Time) error {
	if t.observer != nil {
		t.observer.ObserveAttendance(string(action), err == nil)
	}
	if err != nil {
		t.rollback(prior)
		t.life.Settle(action, false)
		t.handleFailure(err)
		t.logger.Warn("attendance request failed", "action", string(action), "error", err)
		return fmt.Errorf("%s: %w", action, err)
	}

	t.life.Settle(action, true)
	t.mu.Lock()
	t.last = &LastAction{Action: action, At: now}
	t.mu.Unlock()
	t.logger.Info("attendance recorded", "action", string(action))

	if t.recorder != nil {
		if err := t.recorder.AddActivity(ctx, string(action), now.Format(time.RFC3339)); err != nil {
			t.logger.Warn("record activity", "error", err)
		}
	}
	if err := t.Refresh(ctx); err != nil {
		t.logger.Warn("reconcile attendance", "action", string(action), "error", err)
	}
	return nil
}

// handleFailure drops local state once the backend rejects the credential.
func (t *Tracker) handleFailure(err error) {
	if !errors.Is(err, session.ErrUnauthorized) {
		return
	}
	t.life.Reset()
	t.mu.Lock()
	t.records = nil
	t.last = nil
	t.generation++
	t.mu.Unlock()
}
