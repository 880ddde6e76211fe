package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leetcoach/internal/ratelimit/models"
)

func TestDelayForStepFunction(t *testing.T) {
	lockout := DefaultConfig().Lockout

	cases := []struct {
		failures int
		want     time.Duration
	}{
		{0, 0},
		{1, 30 * time.Second},
		{2, 30 * time.Second},
		{3, 60 * time.Second},
		{4, 60 * time.Second},
		{5, 120 * time.Second},
		{9, 120 * time.Second},
		{10, 300 * time.Second},
		{250, 300 * time.Second},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, lockout.DelayFor(tc.failures), "failures=%d", tc.failures)
	}
}

func TestDelayForIsMonotonic(t *testing.T) {
	lockout := DefaultConfig().Lockout
	prev := lockout.DelayFor(0)
	for f := 1; f <= 20; f++ {
		cur := lockout.DelayFor(f)
		assert.GreaterOrEqual(t, cur, prev, "failures=%d", f)
		prev = cur
	}
}

func TestGetLimit(t *testing.T) {
	cfg := DefaultConfig()

	login, ok := cfg.GetLimit(models.ClassLogin)
	assert.True(t, ok)
	assert.Equal(t, Limit{RequestsPerWindow: 5, Window: time.Minute}, login)

	unknown, ok := cfg.GetLimit(models.EndpointClass("other"))
	assert.True(t, ok)
	assert.Equal(t, 60, unknown.RequestsPerWindow)

	empty := &Config{}
	_, ok = empty.GetLimit(models.ClassLogin)
	assert.False(t, ok)
}

func TestMaxWindow(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Minute, cfg.MaxWindow())

	cfg.Limits[models.ClassLogin] = Limit{RequestsPerWindow: 1, Window: time.Hour}
	assert.Equal(t, time.Hour, cfg.MaxWindow())
}
