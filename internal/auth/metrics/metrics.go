package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for account operations.
type Metrics struct {
	UsersCreated        prometheus.Counter
	LoginAttempts       *prometheus.CounterVec
	PasswordHashSeconds prometheus.Histogram
}

// New registers and returns auth metrics collectors.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "leetcoach_users_created_total",
			Help: "Total number of users created",
		}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_login_attempts_total",
			Help: "Login attempts by outcome (success, invalid_captcha, invalid_credentials)",
		}, []string{"outcome"}),
		PasswordHashSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leetcoach_password_hash_duration_seconds",
			Help:    "Time spent hashing or comparing passwords",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementLoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObservePasswordHash(seconds float64) {
	if m == nil {
		return
	}
	m.PasswordHashSeconds.Observe(seconds)
}
