package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus instruments for submissions.
type Metrics struct {
	SubmissionsTotal  *prometheus.CounterVec
	SubmissionLatency *prometheus.HistogramVec
}

// NewMetrics creates and registers salehook instruments on reg.
// Pass prometheus.DefaultRegisterer for process-wide metrics or a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salehook_submissions_total",
			Help: "Submission attempts by target and outcome.",
		}, []string{"target", "outcome"}),
		SubmissionLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salehook_submission_latency_seconds",
			Help:    "Latency of the webhook HTTP exchange.",
			Buckets: prometheus.DefBuckets,
		}, []string{"target"}),
	}
}

// RecordSubmission records one submission with its outcome. outcome is
// "success" or the failure kind. A negative latency means no request was
// sent and is not observed.
func (m *Metrics) RecordSubmission(target, outcome string, latencySeconds float64) {
	m.SubmissionsTotal.WithLabelValues(target, outcome).Inc()
	if latencySeconds >= 0 {
		m.SubmissionLatency.WithLabelValues(target).Observe(latencySeconds)
	}
}
