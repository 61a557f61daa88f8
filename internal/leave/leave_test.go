package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

type fakeBackend struct {
	leaves   []model.Leave
	applied  []model.LeaveRequest
	applyErr error
	setCalls int
}

func (f *fakeBackend) ApplyLeave(_ context.Context, req model.LeaveRequest) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, req)
	return nil
}

func (f *fakeBackend) MyLeaves(context.Context) ([]model.Leave, error) {
	return f.leaves, nil
}

func (f *fakeBackend) LeaveApplications(context.Context) ([]model.Leave, error) {
	out := make([]model.Leave, len(f.leaves))
	copy(out, f.leaves)
	return out, nil
}

func (f *fakeBackend) SetLeaveStatus(_ context.Context, id int64, status model.LeaveStatus) error {
	f.setCalls++
	for i := range f.leaves {
		if f.leaves[i].ID == id {
			f.leaves[i].Status = status
		}
	}
	return nil
}

type fakeGate struct {
	err     error
	settled []error
}

func (g *fakeGate) BeginLeave() (func(error), error) {
	if g.err != nil {
		return nil, g.err
	}
	return func(err error) { g.settled = append(g.settled, err) }, nil
}

type kinds []string

func (k *kinds) AddActivity(_ context.Context, kind, _ string) error {
	*k = append(*k, kind)
	return nil
}

func request() model.LeaveRequest {
	return model.LeaveRequest{
		StartDate: model.NewDate(2025, time.October, 1),
		EndDate:   model.NewDate(2025, time.October, 3),
		Reason:    "Travel",
	}
}

func TestApplyGoesThroughGate(t *testing.T) {
	backend := &fakeBackend{}
	gate := &fakeGate{}
	history := &kinds{}
	svc := NewService(backend, gate, history, nil)

	require.NoError(t, svc.Apply(context.Background(), request()))
	assert.Len(t, backend.applied, 1)
	assert.Equal(t, []error{nil}, gate.settled)
	assert.Equal(t, kinds{"leave"}, *history)
}

func TestApplyBlockedByGate(t *testing.T) {
	backend := &fakeBackend{}
	blocked := errors.New("checked in today")
	svc := NewService(backend, &fakeGate{err: blocked}, nil, nil)

	err := svc.Apply(context.Background(), request())
	assert.ErrorIs(t, err, blocked)
	assert.Empty(t, backend.applied)
}

func TestApplySettlesGateOnFailure(t *testing.T) {
	failure := errors.New("upload failed")
	gate := &fakeGate{}
	svc := NewService(&fakeBackend{applyErr: failure}, gate, nil, nil)

	err := svc.Apply(context.Background(), request())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []error{failure}, gate.settled)
}

func TestValidate(t *testing.T) {
	req := request()
	req.Reason = " "
	assert.ErrorIs(t, Validate(req), ErrInvalidRequest)

	req = request()
	req.EndDate = model.NewDate(2025, time.September, 30)
	assert.ErrorIs(t, Validate(req), ErrInvalidRequest)

	req = request()
	req.StartDate = model.Date{}
	assert.ErrorIs(t, Validate(req), ErrInvalidRequest)

	req = request()
	req.EndDate = req.StartDate
	assert.NoError(t, Validate(req))
}

func TestDecideOnlyPending(t *testing.T) {
	backend := &fakeBackend{leaves: []model.Leave{
		{ID: 1, EmployeeName: "Tara", Status: model.LeavePending},
		{ID: 2, EmployeeName: "Alice", Status: model.LeaveApproved},
	}}
	history := &kinds{}
	svc := NewService(backend, nil, history, nil)

	refreshed, err := svc.Decide(context.Background(), 1, model.LeaveRejected)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveRejected, refreshed[0].Status)
	assert.Equal(t, kinds{"leave-rejected"}, *history)

	_, err = svc.Decide(context.Background(), 2, model.LeaveRejected)
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	_, err = svc.Decide(context.Background(), 9, model.LeaveApproved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Decide(context.Background(), 1, model.LeavePending)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 1, backend.setCalls)
}

func TestApplicationsPendingFilter(t *testing.T) {
	backend := &fakeBackend{leaves: []model.Leave{
		{ID: 1, Status: model.LeavePending},
		{ID: 2, Status: model.LeaveApproved},
	}}
	svc := NewService(backend, nil, nil, nil)

	all, err := svc.Applications(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.Applications(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
}

func TestLabelAndDecision(t *testing.T) {
	assert.Equal(t, "Pending", Label(model.LeavePending))
	assert.Equal(t, "Approved", Label(model.LeaveApproved))
	assert.Equal(t, "Unknown", Label(""))

	status, err := ParseDecision("Approve")
	require.NoError(t, err)
	assert.Equal(t, model.LeaveApproved, status)

	_, err = ParseDecision("maybe")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
