// Package metrics holds the Prometheus collectors for API traffic, attendance
// actions and the local dashboard. Each Metrics owns its registry so tests
// and multiple clients never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// apiRequests counts backend calls.
	// Labels: method, route (ids replaced by :id), status ("error" for transport failures)
	apiRequests *prometheus.CounterVec
	apiDuration *prometheus.HistogramVec

	// attendanceActions counts check-in/check-out outcomes.
	// Labels: action, result ("ok" or "failed")
	attendanceActions *prometheus.CounterVec

	dashboardRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrdesk_api_requests_total",
				Help: "Total number of requests sent to the HR backend",
			},
			[]string{"method", "route", "status"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hrdesk_api_request_duration_seconds",
				Help:    "Duration of requests sent to the HR backend",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		attendanceActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrdesk_attendance_actions_total",
				Help: "Attendance actions attempted from this client",
			},
			[]string{"action", "result"},
		),
		dashboardRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrdesk_dashboard_requests_total",
				Help: "Requests served by the local dashboard",
			},
			[]string{"method", "route", "status"},
		),
	}
	m.registry.MustRegister(
		m.apiRequests,
		m.apiDuration,
		m.attendanceActions,
		m.dashboardRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveAPI records one backend call. A status of 0 means the request never
// got a response.
func (m *Metrics) ObserveAPI(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.apiRequests.WithLabelValues(method, route, label).Inc()
	m.apiDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAttendance(action string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.attendanceActions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveDashboard(method, route string, status int) {
	if m == nil {
		return
	}
	m.dashboardRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
