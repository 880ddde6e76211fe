package models

import "time"

// Challenge is a single-use arithmetic CAPTCHA token.
type Challenge struct {
	ID        string
	Question  string
	Answer    string
	ExpiresAt time.Time
}

// IsExpired reports whether the challenge can no longer be redeemed at now.
// A challenge is still valid at exactly ExpiresAt.
func (c *Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// VerifyOutcome describes why a verification succeeded or failed. Only used
// for logs and metrics; callers see a bool.
type VerifyOutcome string

const (
	OutcomeSolved      VerifyOutcome = "solved"
	OutcomeUnknown     VerifyOutcome = "unknown"
	OutcomeExpired     VerifyOutcome = "expired"
	OutcomeWrongAnswer VerifyOutcome = "wrong_answer"
)
