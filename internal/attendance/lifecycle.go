package attendance

import (
	"errors"
	"sync"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type Action string

const (
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
	ActionLeave    Action = "leave"
)

type Phase int

const (
	Idle Phase = iota
	Pending
	Settled
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	default:
		return "idle"
	}
}

var (
	ErrRequestPending = errors.New("an attendance request is already in flight")
	ErrAlreadySettled = errors.New("action already completed today")
)

// Lifecycle gates attendance requests: at most one request is Pending, and an
// action that succeeded stays Settled until the calendar day changes.
type Lifecycle struct {
	mu      sync.Mutex
	day     model.DateStamp
	pending Action
	settled map[Action]bool
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{settled: make(map[Action]bool)}
}

func (l *Lifecycle) Begin(action Action, today model.DateStamp) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover(today)

	if l.pending != "" {
		return ErrRequestPending
	}
	if l.settled[action] {
		return ErrAlreadySettled
	}
	l.pending = action
	return nil
}

// Settle ends the pending request. A failed request returns the action to
// Idle so it can be retried.
func (l *Lifecycle) Settle(action Action, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == action {
		l.pending = ""
	}
	if ok {
		l.settled[action] = true
	}
}

func (l *Lifecycle) Phase(action Action, today model.DateStamp) Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover(today)
	switch {
	case l.pending == action:
		return Pending
	case l.settled[action]:
		return Settled
	default:
		return Idle
	}
}

func (l *Lifecycle) Guard(today model.DateStamp) Guard {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover(today)
	return Guard{
		InFlight:     l.pending != "",
		CheckInLock:  l.settled[ActionCheckIn],
		CheckOutLock: l.settled[ActionCheckOut],
	}
}

func (l *Lifecycle) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = ""
	l.settled = make(map[Action]bool)
}

func (l *Lifecycle) rollover(today model.DateStamp) {
	if l.day == today {
		return
	}
	l.day = today
	l.settled = make(map[Action]bool)
}
