package security

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the events counter.
const (
	outcomeFlushed           = "flushed"
	outcomeDropped           = "dropped"
	outcomeDroppedAfterRetry = "dropped_after_retry"
	outcomeRetried           = "retried"
)

// Metrics holds Prometheus metrics for security event publishing.
type Metrics struct {
	QueueDepth    prometheus.Gauge
	Events        *prometheus.CounterVec
	FlushDuration prometheus.Histogram
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics returns the singleton Metrics instance.
// Safe to call multiple times; metrics are only registered once.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "leetcoach_security_events_queue_depth",
				Help: "Current number of security events waiting to be flushed",
			}),
			Events: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "leetcoach_security_events_total",
				Help: "Security events by publishing outcome",
			}, []string{"outcome"}),
			FlushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "leetcoach_security_events_flush_duration_seconds",
				Help:    "Time taken to write a batch of security events to the sink",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			}),
		}
	})
	return metricsInstance
}

func (m *Metrics) setQueueDepth(depth int) {
	if m != nil {
		m.QueueDepth.Set(float64(depth))
	}
}

func (m *Metrics) add(outcome string, n int) {
	if m != nil && n > 0 {
		m.Events.WithLabelValues(outcome).Add(float64(n))
	}
}

func (m *Metrics) observeFlush(seconds float64) {
	if m != nil {
		m.FlushDuration.Observe(seconds)
	}
}
