package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObserveAPI(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/projects/:id", 200, 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/projects/:id", 200, 30*time.Millisecond)
	m.ObserveAPI("POST", "/api/attendance/check-in", 0, time.Second)

	body := scrape(t, m)
	assert.Contains(t, body, `hrdesk_api_requests_total{method="GET",route="/api/projects/:id",status="200"} 2`)
	assert.Contains(t, body, `hrdesk_api_requests_total{method="POST",route="/api/attendance/check-in",status="error"} 1`)
	assert.Contains(t, body, `hrdesk_api_request_duration_seconds_count{method="GET",route="/api/projects/:id"} 2`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", 200, 0)
	m.ObserveAttendance("check-in", true)
	m.ObserveDashboard("GET", "/", 200)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveAttendance("check-in", false)

	assert.Contains(t, scrape(t, m), `hrdesk_attendance_actions_total{action="check-in",result="failed"} 1`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	return rec.Body.String()
}
