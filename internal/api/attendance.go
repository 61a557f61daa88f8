package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

func rangeQuery(from, to model.Date) url.Values {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.String())
	}
	if !to.IsZero() {
		query.Set("to", to.String())
	}
	return query
}

func (c *Client) MyAttendance(ctx context.Context, sess *session.Session, from, to model.Date) ([]model.AttendanceRecord, error) {
	records := []model.AttendanceRecord{}
	if err := c.getJSON(ctx, sess, "/api/attendance/me", rangeQuery(from, to), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CheckIn(ctx context.Context, sess *session.Session) error {
	return c.sendJSON(ctx, sess, http.MethodPost, "/api/attendance/check-in", nil, nil)
}

func (c *Client) CheckOut(ctx context.Context, sess *session.Session) error {
	return c.sendJSON(ctx, sess, http.MethodPost, "/api/attendance/check-out", nil, nil)
}

// MonthlyAttendance returns the per-employee rollup admins see.
func (c *Client) MonthlyAttendance(ctx context.Context, sess *session.Session, from, to model.Date) ([]model.MonthlyAttendance, error) {
	rows := []model.MonthlyAttendance{}
	if err := c.getJSON(ctx, sess, "/api/admin/attendance", rangeQuery(from, to), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
