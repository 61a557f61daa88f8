package api

import (
	"context"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

// Bound pins a session to the client for consumers that take narrow
// interfaces, such as the attendance tracker and the project board.
type Bound struct {
	client *Client
	sess   *session.Session
}

func (c *Client) As(sess *session.Session) *Bound {
	return &Bound{client: c, sess: sess}
}

func (b *Bound) Session() *session.Session {
	return b.sess
}

func (b *Bound) MyAttendance(ctx context.Context, from, to model.Date) ([]model.AttendanceRecord, error) {
	return b.client.MyAttendance(ctx, b.sess, from, to)
}

func (b *Bound) CheckIn(ctx context.Context) error {
	return b.client.CheckIn(ctx, b.sess)
}

func (b *Bound) CheckOut(ctx context.Context) error {
	return b.client.CheckOut(ctx, b.sess)
}

func (b *Bound) Projects(ctx context.Context) ([]model.Project, error) {
	return b.client.Projects(ctx, b.sess)
}

func (b *Bound) Project(ctx context.Context, id int64) (model.Project, error) {
	return b.client.Project(ctx, b.sess, id)
}

func (b *Bound) AssignableUsers(ctx context.Context) ([]model.Member, error) {
	return b.client.AssignableUsers(ctx, b.sess)
}

func (b *Bound) AddTask(ctx context.Context, projectID int64, draft model.TaskDraft) error {
	return b.client.AddTask(ctx, b.sess, projectID, draft)
}

func (b *Bound) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	return b.client.DeleteTask(ctx, b.sess, projectID, taskID)
}

func (b *Bound) ApplyLeave(ctx context.Context, req model.LeaveRequest) error {
	return b.client.ApplyLeave(ctx, b.sess, req)
}

func (b *Bound) MyLeaves(ctx context.Context) ([]model.Leave, error) {
	return b.client.MyLeaves(ctx, b.sess)
}

func (b *Bound) LeaveApplications(ctx context.Context) ([]model.Leave, error) {
	return b.client.LeaveApplications(ctx, b.sess)
}

func (b *Bound) SetLeaveStatus(ctx context.Context, id int64, status model.LeaveStatus) error {
	return b.client.SetLeaveStatus(ctx, b.sess, id, status)
}
