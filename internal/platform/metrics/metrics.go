// Package metrics exposes the Prometheus collectors of the ledger service.
// A nil *Metrics is valid and records nothing, so services can run without a registry.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Metrics groups the ledger and HTTP collectors.
type Metrics struct {
	entriesPosted        *prometheus.CounterVec
	postRejections       *prometheus.CounterVec
	postRetries          prometheus.Counter
	reconciliationRuns   *prometheus.CounterVec
	reconciliationAlerts *prometheus.CounterVec
	reconciliationTime   prometheus.Histogram
	httpInFlight         prometheus.Gauge
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		entriesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_posted_total",
			Help:      "Journal entries posted, by kind (entry or reversal).",
		}, []string{"kind"}),
		postRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_rejections_total",
			Help:      "Rejected post and reverse attempts, by reason.",
		}, []string{"reason"}),
		postRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "post_number_retries_total",
			Help:      "Posts retried after an entry number collision.",
		}),
		reconciliationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_runs_total",
			Help:      "Reconciliation runs, by status.",
		}, []string{"status"}),
		reconciliationAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliation_alerts_total",
			Help:      "Reconciliation alerts raised, by check type and severity.",
		}, []string{"check_type", "severity"}),
		reconciliationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconciliation_duration_seconds",
			Help:      "Duration of reconciliation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.entriesPosted,
			m.postRejections,
			m.postRetries,
			m.reconciliationRuns,
			m.reconciliationAlerts,
			m.reconciliationTime,
			m.httpInFlight,
			m.httpRequestsTotal,
			m.httpRequestDuration,
		)
	}
	return m
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// EntryPosted counts a successful post. kind is "entry" or "reversal".
func (m *Metrics) EntryPosted(kind string) {
	if m == nil {
		return
	}
	m.entriesPosted.WithLabelValues(kind).Inc()
}

// PostRejected counts a failed post or reverse by error category.
func (m *Metrics) PostRejected(err error) {
	if m == nil || err == nil {
		return
	}
	m.postRejections.WithLabelValues(RejectionReason(err)).Inc()
}

// PostRetried counts an internal retry after an entry number collision.
func (m *Metrics) PostRetried() {
	if m == nil {
		return
	}
	m.postRetries.Inc()
}

// ReconciliationCompleted records a finished run and its alerts.
func (m *Metrics) ReconciliationCompleted(status string, duration time.Duration, alerts map[string]string) {
	if m == nil {
		return
	}
	m.reconciliationRuns.WithLabelValues(status).Inc()
	m.reconciliationTime.Observe(duration.Seconds())
	for checkType, severity := range alerts {
		m.reconciliationAlerts.WithLabelValues(checkType, severity).Inc()
	}
}

// HTTPStarted marks a request in flight.
func (m *Metrics) HTTPStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// HTTPFinished records a completed request. path should be the route template.
func (m *Metrics) HTTPFinished(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RejectionReason maps an error to a low-cardinality label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrAlreadyPosted):
		return "already_posted"
	case errors.Is(err, apperrors.ErrNotPosted):
		return "not_posted"
	case errors.Is(err, apperrors.ErrAlreadyReversed):
		return "already_reversed"
	case errors.Is(err, apperrors.ErrEmptyEntry):
		return "empty"
	case errors.Is(err, apperrors.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, apperrors.ErrPeriodLocked):
		return "period_locked"
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
