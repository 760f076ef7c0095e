package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
//
// All metrics live in a caller-supplied registry so tests get isolated
// collectors and multiple engines never fight over registration.
type PrometheusMetrics struct {
	// decisionsTotal tracks rate limit decisions.
	// Labels:
	//   - tier: subscription tier of the subject
	//   - source: "tier" or "override", whichever budget applied
	//   - status: "allowed" or "denied"
	decisionsTotal *prometheus.CounterVec

	// checkDuration tracks the duration of decision checks.
	//
	// Buckets are tuned for a hot path dominated by one Redis round trip:
	// sub-millisecond locally, tens of milliseconds cross-zone.
	checkDuration prometheus.Histogram

	// storeErrorsTotal tracks counter-store failures by operation.
	storeErrorsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates Prometheus-backed engine metrics registered
// against the given registerer. Pass prometheus.DefaultRegisterer for the
// process-wide registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_decisions_total",
				Help: "Total rate limit decisions by tier, budget source, and status",
			},
			[]string{"tier", "source", "status"},
		),
		checkDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_limit_check_duration_seconds",
				Help:    "Duration of rate limit decision checks",
				Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
		),
		storeErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_store_errors_total",
				Help: "Total counter store failures by operation",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.decisionsTotal, m.checkDuration, m.storeErrorsTotal)
	return m
}

// RecordAllowed records an allowed decision.
func (m *PrometheusMetrics) RecordAllowed(tier, source string) {
	m.decisionsTotal.WithLabelValues(tier, source, "allowed").Inc()
}

// RecordDenied records a rate-limited decision.
func (m *PrometheusMetrics) RecordDenied(tier, source string) {
	m.decisionsTotal.WithLabelValues(tier, source, "denied").Inc()
}

// RecordCheckDuration records the duration of one decision check.
func (m *PrometheusMetrics) RecordCheckDuration(d time.Duration) {
	m.checkDuration.Observe(d.Seconds())
}

// RecordStoreError records a counter-store failure.
func (m *PrometheusMetrics) RecordStoreError(op string) {
	m.storeErrorsTotal.WithLabelValues(op).Inc()
}
