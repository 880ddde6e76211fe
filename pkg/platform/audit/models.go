package audit

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Action names a security-relevant occurrence.
type Action string

const (
	ActionRateLimitExceeded   Action = "rate_limit_exceeded"
	ActionLockoutActive       Action = "lockout_active"
	ActionAuthFailureRecorded Action = "auth_failure_recorded"
	ActionCaptchaFailed       Action = "captcha_failed"
	ActionLoginFailed         Action = "login_failed"
	ActionLoginSucceeded      Action = "login_succeeded"
	ActionUserRegistered      Action = "user_registered"
)

// IsRejection reports whether the action denied a request.
func (a Action) IsRejection() bool {
	switch a {
	case ActionRateLimitExceeded, ActionLockoutActive, ActionCaptchaFailed, ActionLoginFailed:
		return true
	default:
		return false
	}
}

// SecurityEvent is emitted for admission decisions and credential outcomes.
// It is transport-agnostic so sinks can fan out.
type SecurityEvent struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Action     Action        `json:"action"`
	ClientID   string        `json:"client_id,omitempty"`
	Endpoint   string        `json:"endpoint,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	RetryAfter time.Duration `json:"retry_after_ns,omitempty"`
	Username   string        `json:"username,omitempty"`
	UserAgent  string        `json:"user_agent,omitempty"`
	Device     string        `json:"device,omitempty"`
	RequestID  string        `json:"request_id,omitempty"`
}

// Sink persists or forwards a batch of events. Implementations must be safe
// for use by a single flushing goroutine.
type Sink interface {
	Write(ctx context.Context, events []SecurityEvent) error
}

var (
	idOnce    sync.Once
	idMu      sync.Mutex
	idEntropy *ulid.MonotonicEntropy
)

// NewEventID returns a lexicographically sortable ULID for t. IDs generated
// within the same millisecond stay ordered.
func NewEventID(t time.Time) string {
	idOnce.Do(func() {
		idEntropy = ulid.Monotonic(rand.Reader, 0)
	})
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idEntropy).String()
}
