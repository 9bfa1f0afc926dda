package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics wraps the prometheus collectors exported on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorTotal      *prometheus.CounterVec
	transitionTotal *prometheus.CounterVec
	requestsCreated prometheus.Counter
	commentsAdded   prometheus.Counter
	loginFailures   prometheus.Counter
}

// NewMetrics registers collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Error responses by domain error code",
		}, []string{"method", "path", "code"}),
		transitionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "request_status_transitions_total",
			Help: "Applied request status transitions",
		}, []string{"from", "to", "role"}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "requests_created_total",
			Help: "Service requests submitted",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comments_added_total",
			Help: "Comments posted on service requests",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Rejected login attempts",
		}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.errorTotal,
		m.transitionTotal,
		m.requestsCreated,
		m.commentsAdded,
		m.loginFailures,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(method, path, code).Inc()
}

// RecordTransition counts an applied status change.
func (m *Metrics) RecordTransition(from, to, role string) {
	if m == nil {
		return
	}
	m.transitionTotal.WithLabelValues(from, to, role).Inc()
}

// RecordRequestCreated counts a new service request.
func (m *Metrics) RecordRequestCreated() {
	if m == nil {
		return
	}
	m.requestsCreated.Inc()
}

// RecordCommentAdded counts a new comment.
func (m *Metrics) RecordCommentAdded() {
	if m == nil {
		return
	}
	m.commentsAdded.Inc()
}

// RecordLoginFailure counts a rejected login.
func (m *Metrics) RecordLoginFailure() {
	if m == nil {
		return
	}
	m.loginFailures.Inc()
}
