package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes recorded in resume_matcher_submissions_total.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeNetworkError    = "network_error"
	OutcomeStatusError     = "status_error"
	OutcomeBodyError       = "body_error"
	OutcomePayloadError    = "payload_error"
	OutcomeRejected        = "rejected"
)

// Metrics holds the submission collectors. A nil *Metrics records nothing.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Duration    prometheus.Histogram
	InFlight    prometheus.Gauge
}

// NewMetrics registers the submission collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_matcher_submissions_total",
				Help: "Total number of submissions by outcome",
			},
			[]string{"outcome"},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "resume_matcher_submission_duration_seconds",
				Help:    "Time from dispatch to response arrival in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "resume_matcher_submission_in_flight",
				Help: "Number of submissions waiting for a response",
			},
		),
	}
}

// RecordOutcome counts one finished or refused submission.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveDuration records the dispatch-to-arrival time of a response.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.Observe(d.Seconds())
}

// SetInFlight marks whether a submission is waiting for a response.
func (m *Metrics) SetInFlight(inFlight bool) {
	if m == nil {
		return
	}
	if inFlight {
		m.InFlight.Set(1)
		return
	}
	m.InFlight.Set(0)
}
