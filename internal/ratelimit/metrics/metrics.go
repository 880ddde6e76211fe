package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RateLimitDecisionsTotal         *prometheus.CounterVec
	RateLimitAuthFailures           *prometheus.CounterVec
	RateLimitGlobalThrottledTotal   prometheus.Counter
	RateLimitCleanupRemovedTotal    *prometheus.CounterVec
	RateLimitCleanupRunsTotal       *prometheus.CounterVec
	RateLimitCleanupDurationSeconds prometheus.Histogram
}

// New registers the rate limit collectors with the default registry.
// Call once per process.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so constructors can run more than once.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateLimitDecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_ratelimit_decisions_total",
			Help: "Admission decisions by endpoint class and outcome (admitted, rate_limited, locked_out)",
		}, []string{"class", "outcome"}),
		RateLimitAuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_ratelimit_auth_failures_recorded_total",
			Help: "Total number of auth failures recorded for lockout escalation",
		}, []string{"class"}),
		RateLimitGlobalThrottledTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "leetcoach_ratelimit_global_throttled_total",
			Help: "Requests rejected by the process-wide throttle",
		}),
		RateLimitCleanupRemovedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_ratelimit_cleanup_removed_total",
			Help: "Entries removed by the cleanup worker by kind (buckets, failures, challenges)",
		}, []string{"kind"}),
		RateLimitCleanupRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_ratelimit_cleanup_runs_total",
			Help: "Total number of cleanup runs",
		}, []string{"status"}),
		RateLimitCleanupDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "leetcoach_ratelimit_cleanup_duration_seconds",
			Help: "Duration of cleanup runs in seconds",
		}),
	}
}

func (m *Metrics) RecordDecision(class, outcome string) {
	if m == nil {
		return
	}
	m.RateLimitDecisionsTotal.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) IncrementAuthFailures(class string) {
	if m == nil {
		return
	}
	m.RateLimitAuthFailures.WithLabelValues(class).Inc()
}

func (m *Metrics) IncrementGlobalThrottled() {
	if m == nil {
		return
	}
	m.RateLimitGlobalThrottledTotal.Inc()
}

func (m *Metrics) AddCleanupRemoved(kind string, count int) {
	if m == nil {
		return
	}
	m.RateLimitCleanupRemovedTotal.WithLabelValues(kind).Add(float64(count))
}

func (m *Metrics) IncrementCleanupRuns(status string) {
	if m == nil {
		return
	}
	m.RateLimitCleanupRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveCleanupDuration(durationSeconds float64) {
	if m == nil {
		return
	}
	m.RateLimitCleanupDurationSeconds.Observe(durationSeconds)
}
