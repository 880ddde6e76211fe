package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ChallengesIssued prometheus.Counter
	Verifications    *prometheus.CounterVec
	ChallengesSwept  prometheus.Counter
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChallengesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "leetcoach_captcha_issued_total",
			Help: "Total number of CAPTCHA challenges issued",
		}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leetcoach_captcha_verifications_total",
			Help: "CAPTCHA verifications by outcome (solved, unknown, expired, wrong_answer)",
		}, []string{"outcome"}),
		ChallengesSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "leetcoach_captcha_swept_total",
			Help: "Expired challenges removed before redemption",
		}),
	}
}

func (m *Metrics) IncrementIssued() {
	if m == nil {
		return
	}
	m.ChallengesIssued.Inc()
}

func (m *Metrics) IncrementVerification(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddSwept(n int) {
	if m == nil {
		return
	}
	m.ChallengesSwept.Add(float64(n))
}
