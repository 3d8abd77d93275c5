package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface the rest of the application records
// against; the noop implementation backs it when metrics are disabled.
type Recorder interface {
	RecordLogin(result string)
	RecordLogout()
	RecordOAuthCallback(success bool)
	RecordDefinitionWrite(operation string, success bool)
	RecordHTTPRequest(method, path, status string, duration time.Duration)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	AuthLoginTotal         *prometheus.CounterVec
	AuthLogoutTotal        prometheus.Counter
	AuthOAuthCallbackTotal *prometheus.CounterVec

	DefinitionWritesTotal *prometheus.CounterVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on the enabled flag. When disabled it
// returns NoopMetrics. Uses sync.Once so Prometheus metrics are only
// registered once.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		AuthLoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"}, // success, failure, blocked, bypass
		),
		AuthLogoutTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_logout_total",
				Help: "Total number of logouts",
			},
		),
		AuthOAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_callback_total",
				Help: "Total number of OAuth callback attempts",
			},
			[]string{"result"}, // success, error
		),
		DefinitionWritesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "glossary_definition_writes_total",
				Help: "Total number of definition create/update/delete operations",
			},
			[]string{"operation", "result"}, // create, update, delete
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of in-flight HTTP requests",
			},
		),
	}
}

const (
	resultSuccess = "success"
	resultError   = "error"
)

// RecordLogin records a login attempt outcome.
func (m *Metrics) RecordLogin(result string) {
	m.AuthLoginTotal.WithLabelValues(result).Inc()
}

// RecordLogout records a logout.
func (m *Metrics) RecordLogout() {
	m.AuthLogoutTotal.Inc()
}

// RecordOAuthCallback records an OAuth callback outcome.
func (m *Metrics) RecordOAuthCallback(success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.AuthOAuthCallbackTotal.WithLabelValues(result).Inc()
}

// RecordDefinitionWrite records a definition write outcome.
func (m *Metrics) RecordDefinitionWrite(operation string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.DefinitionWritesTotal.WithLabelValues(operation, result).Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
