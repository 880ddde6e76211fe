package config

import (
	"time"

	"leetcoach/internal/ratelimit/models"
)

// Config holds rate limiting configuration.
type Config struct {
	// Per-client limits by endpoint class
	Limits map[models.EndpointClass]Limit

	// Auth failure escalation
	Lockout LockoutConfig

	// Process-wide throttle in front of per-client evaluation
	Global GlobalLimit
}

// Limit defines rate limit parameters for an endpoint class.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// LockoutStep maps a minimum failure count to the delay imposed from that count on.
type LockoutStep struct {
	MinFailures int
	Delay       time.Duration
}

// LockoutConfig defines authentication failure escalation.
type LockoutConfig struct {
	WindowDuration time.Duration // 15 minutes
	Steps          []LockoutStep // ascending by MinFailures
}

// GlobalLimit defines the optional process-wide token bucket.
type GlobalLimit struct {
	PerSecond float64 // 0 disables
	Burst     int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: map[models.EndpointClass]Limit{
			models.ClassLogin:    {RequestsPerWindow: 5, Window: time.Minute},
			models.ClassRegister: {RequestsPerWindow: 3, Window: time.Minute},
			models.ClassCaptcha:  {RequestsPerWindow: 10, Window: time.Minute},
			models.ClassDefault:  {RequestsPerWindow: 60, Window: time.Minute},
		},
		Lockout: LockoutConfig{
			WindowDuration: 15 * time.Minute,
			Steps: []LockoutStep{
				{MinFailures: 1, Delay: 30 * time.Second},
				{MinFailures: 3, Delay: 60 * time.Second},
				{MinFailures: 5, Delay: 120 * time.Second},
				{MinFailures: 10, Delay: 300 * time.Second},
			},
		},
	}
}

// GetLimit returns the limit for class, falling back to the default class.
// ok is false only if neither is configured.
func (c *Config) GetLimit(class models.EndpointClass) (Limit, bool) {
	if l, ok := c.Limits[class]; ok {
		return l, true
	}
	l, ok := c.Limits[models.ClassDefault]
	return l, ok
}

// MaxWindow is the longest configured bucket window. The cleanup worker
// prunes against it so that no live timestamp is dropped early.
func (c *Config) MaxWindow() time.Duration {
	var longest time.Duration
	for _, l := range c.Limits {
		longest = max(longest, l.Window)
	}
	return longest
}

// DelayFor returns the lockout delay for a failure count within the window.
func (l LockoutConfig) DelayFor(failures int) time.Duration {
	var delay time.Duration
	for _, step := range l.Steps {
		if failures < step.MinFailures {
			break
		}
		delay = step.Delay
	}
	return delay
}
