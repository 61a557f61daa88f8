package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joseda-hg/hrdesk/internal/api"
	"github.com/Joseda-hg/hrdesk/internal/attendance"
	"github.com/Joseda-hg/hrdesk/internal/fakehr"
	"github.com/Joseda-hg/hrdesk/internal/logger"
	"github.com/Joseda-hg/hrdesk/internal/metrics"
	"github.com/Joseda-hg/hrdesk/internal/model"
	"github.com/Joseda-hg/hrdesk/internal/projects"
	"github.com/Joseda-hg/hrdesk/internal/session"
)

var fixedNow = time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)

type stubActivity struct{}

func (stubActivity) ListActivity(context.Context, int) ([]model.Activity, error) {
	return []model.Activity{{ID: 1, Kind: "check-in", Details: "ok", CreatedAt: fixedNow}}, nil
}

type dashboard struct {
	backend *fakehr.Server
	sess    *session.Session
	server  *httptest.Server
	metrics *metrics.Metrics
}

func newDashboard(t *testing.T, employeeID string) *dashboard {
	t.Helper()
	backend := fakehr.New()
	backend.SetClock(func() time.Time { return fixedNow })
	upstream := backend.Serve()
	t.Cleanup(upstream.Close)

	m := metrics.New()
	client := api.New(api.Options{BaseURL: upstream.URL, Timeout: 5 * time.Second, Logger: logger.Discard(), Metrics: m})
	result, err := client.Login(context.Background(), employeeID, fakehr.Password)
	require.NoError(t, err)
	sess := session.New(result.Token, result.Role, false, fixedNow)

	bound := client.As(sess)
	clock := func() time.Time { return fixedNow }
	tracker := attendance.NewTracker(bound, attendance.WithClock(clock), attendance.WithLogger(logger.Discard()), attendance.WithObserver(m))
	board := projects.NewBoard(bound, sess.Role(), sess.Name(), logger.Discard())
	board.SetClock(clock)

	srv := NewServer(Options{
		Session:  sess,
		Tracker:  tracker,
		Board:    board,
		Activity: stubActivity{},
		Metrics:  m,
		Logger:   logger.Discard(),
		Now:      clock,
	})
	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)
	return &dashboard{backend: backend, sess: sess, server: server, metrics: m}
}

func (d *dashboard) do(t *testing.T, method, path string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, d.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestCheckInThroughDashboard(t *testing.T) {
	d := newDashboard(t, fakehr.EmployeeID)

	resp, body := d.do(t, http.MethodGet, "/api/attendance/status?refresh=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var before statusPayload
	require.NoError(t, json.Unmarshal(body, &before))
	assert.Equal(t, model.DateStamp("2025-09-10"), before.Today)
	assert.True(t, before.Actions.CheckIn)
	assert.False(t, before.Actions.CheckOut)

	resp, body = d.do(t, http.MethodPost, "/api/attendance/check-in")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var after statusPayload
	require.NoError(t, json.Unmarshal(body, &after))
	assert.True(t, after.Status.HasCheckedIn)
	assert.False(t, after.Actions.CheckIn)
	assert.True(t, after.Actions.CheckOut)
	assert.False(t, after.Actions.Leave)
	require.NotNil(t, after.Last)
	assert.Equal(t, "check-in", after.Last.Action)
	assert.Len(t, d.backend.Attendance(fakehr.EmployeeUser), 1)

	resp, body = d.do(t, http.MethodPost, "/api/attendance/check-in")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "error")
}

func TestUnauthorizedEndsDashboardSession(t *testing.T) {
	d := newDashboard(t, fakehr.EmployeeID)
	d.backend.Revoke(d.sess.Token())

	resp, _ := d.do(t, http.MethodPost, "/api/attendance/check-in")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, d.sess.Valid())
}

func TestProjectMetricsEndpoint(t *testing.T) {
	d := newDashboard(t, fakehr.AdminID)

	resp, body := d.do(t, http.MethodGet, "/api/projects")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.Project
	require.NoError(t, json.Unmarshal(body, &list))
	require.NotEmpty(t, list)

	resp, body = d.do(t, http.MethodGet, "/api/projects/1/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var payload struct {
		Project model.Project `json:"project"`
		Metrics struct {
			Workload map[string]int `json:"workload"`
			Overdue  []struct {
				DaysOverdue int `json:"days_overdue"`
			} `json:"overdue"`
		} `json:"metrics"`
		Remaining float64 `json:"budget_remaining"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Apollo", payload.Project.Name)
	assert.Equal(t, 1, payload.Metrics.Workload["Alice"])
	require.Len(t, payload.Metrics.Overdue, 1)
	assert.Equal(t, 9, payload.Metrics.Overdue[0].DaysOverdue)
	assert.Equal(t, 58000.0, payload.Remaining)

	resp, _ = d.do(t, http.MethodGet, "/api/projects/999/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = d.do(t, http.MethodGet, "/api/projects/abc/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndexAndMetricsPages(t *testing.T) {
	d := newDashboard(t, fakehr.AdminID)

	resp, body := d.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := string(body)
	assert.Contains(t, page, "Root")
	assert.Contains(t, page, "Apollo")
	assert.Contains(t, page, "₹1,00,000")
	assert.Contains(t, page, "check-in")

	resp, body = d.do(t, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.True(t, strings.Contains(text, `hrdesk_dashboard_requests_total{method="GET",route="/",status="200"} 1`), text)
	assert.Contains(t, text, "hrdesk_api_requests_total")
}
