package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	InterviewStageSubmissionsTotal *prometheus.CounterVec
	InterviewReviewDegradedTotal   prometheus.Counter
	InterviewUpsertDurationSeconds prometheus.Histogram
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		InterviewStageSubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_interview_stage_submissions_total",
			Help: "Stage submissions by stage and outcome (ok, unavailable, error)",
		}, []string{"stage", "outcome"}),
		InterviewReviewDegradedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "leetcoach_interview_review_degraded_total",
			Help: "Reviews answered with the default payload because the model output was not parseable",
		}),
		InterviewUpsertDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leetcoach_interview_upsert_duration_seconds",
			Help:    "Duration of session upserts in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
}

func (m *Metrics) RecordSubmission(stage, outcome string) {
	if m == nil {
		return
	}
	m.InterviewStageSubmissionsTotal.WithLabelValues(stage, outcome).Inc()
}

func (m *Metrics) IncrementReviewDegraded() {
	if m == nil {
		return
	}
	m.InterviewReviewDegradedTotal.Inc()
}

func (m *Metrics) ObserveUpsertDuration(seconds float64) {
	if m == nil {
		return
	}
	m.InterviewUpsertDurationSeconds.Observe(seconds)
}
