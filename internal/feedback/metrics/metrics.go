package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeTimeout   = "timeout"
	OutcomeUpstream  = "upstream_error"
	OutcomeRejected  = "breaker_open"
	OutcomeCancelled = "cancelled"
)

type Metrics struct {
	FeedbackRequestsTotal  *prometheus.CounterVec
	FeedbackLatencySeconds *prometheus.HistogramVec
	FeedbackBreakerOpen    prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeedbackRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_feedback_requests_total",
			Help: "Feedback generation calls by prompt kind and outcome",
		}, []string{"kind", "outcome"}),
		FeedbackLatencySeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leetcoach_feedback_latency_seconds",
			Help:    "Latency of feedback generation calls by prompt kind",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind"}),
		FeedbackBreakerOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "leetcoach_feedback_breaker_open",
			Help: "1 while the feedback upstream circuit breaker is open",
		}),
	}
}

func (m *Metrics) RecordRequest(kind, outcome string) {
	if m == nil {
		return
	}
	m.FeedbackRequestsTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveLatency(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.FeedbackLatencySeconds.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.FeedbackBreakerOpen.Set(1)
		return
	}
	m.FeedbackBreakerOpen.Set(0)
}
