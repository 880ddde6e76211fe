package models

import (
	"strings"
	"time"
)

// EndpointClass names a group of request paths sharing one rate limit.
type EndpointClass string

const (
	// ClassLogin: credential checks (5 req/min) - /api/login
	ClassLogin EndpointClass = "login"
	// ClassRegister: account creation (3 req/min) - /api/register
	ClassRegister EndpointClass = "register"
	// ClassCaptcha: challenge issuance and testing (10 req/min) - /api/captcha
	ClassCaptcha EndpointClass = "captcha"
	// ClassDefault: everything else (60 req/min)
	ClassDefault EndpointClass = "default"
)

func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassLogin, ClassRegister, ClassCaptcha, ClassDefault:
		return true
	}
	return false
}

// IsAuth reports whether failures on this class feed the lockout tracker.
func (c EndpointClass) IsAuth() bool {
	return c == ClassLogin || c == ClassRegister
}

func (c EndpointClass) String() string {
	return string(c)
}

// classPrefixes is checked in order; the first matching prefix wins.
var classPrefixes = []struct {
	prefix string
	class  EndpointClass
}{
	{"/api/login", ClassLogin},
	{"/api/register", ClassRegister},
	{"/api/captcha", ClassCaptcha},
}

// ClassifyPath maps a request path to its endpoint class.
func ClassifyPath(path string) EndpointClass {
	for _, p := range classPrefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.class
		}
	}
	return ClassDefault
}

// RateLimitResult is the outcome of one admission attempt against a bucket.
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	ResetAt    time.Time     `json:"reset_at"`
	RetryAfter time.Duration `json:"retry_after,omitempty"` // only set when not allowed
}

// RejectReason explains why the gateway turned a request away.
type RejectReason string

const (
	RejectLockout   RejectReason = "lockout_active"
	RejectRateLimit RejectReason = "rate_limit_exceeded"
)

// Decision is the gateway's verdict for one request.
type Decision struct {
	Admitted   bool
	Class      EndpointClass
	Reason     RejectReason  // empty when admitted
	RetryAfter time.Duration // zero when admitted

	// Populated for admitted requests and for rate-limit rejections.
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Message returns the human readable text shown to rejected callers.
func (d *Decision) Message() string {
	switch d.Reason {
	case RejectLockout:
		return "Too many failed attempts. Please wait before trying again."
	case RejectRateLimit:
		return "Too many requests. Please try again later."
	default:
		return ""
	}
}
