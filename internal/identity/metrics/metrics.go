// Package metrics provides Prometheus metrics for identity verification.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes.
const (
	OutcomeVerified  = "verified"
	OutcomeReused    = "reused"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "customer_not_found"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	VerificationsTotal  *prometheus.CounterVec
	StepDurationSeconds *prometheus.HistogramVec
	PipelineFailures    *prometheus.CounterVec
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
}

// New registers the identity metrics with reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		VerificationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_identity_verifications_total",
			Help: "Customer identity verifications by outcome",
		}, []string{"outcome"}),

		StepDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycgate_pipeline_step_duration_seconds",
			Help:    "Duration of each provider call in the verification pipeline",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"step"}),

		PipelineFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycgate_pipeline_failures_total",
			Help: "Pipeline runs that ended in FAILED, by the state they failed from and failure category",
		}, []string{"state", "category"}),

		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_provider_cache_hits_total",
			Help: "Provider lookup cache hits",
		}),

		CacheMissesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "kycgate_provider_cache_misses_total",
			Help: "Provider lookup cache misses",
		}),
	}
}

func (m *Metrics) RecordVerification(outcome string) {
	if m == nil {
		return
	}
	m.VerificationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveStep(step string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.StepDurationSeconds.WithLabelValues(step).Observe(durationSeconds)
}

func (m *Metrics) RecordPipelineFailure(state, category string) {
	if m == nil {
		return
	}
	m.PipelineFailures.WithLabelValues(state, category).Inc()
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}
