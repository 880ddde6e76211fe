package models

import (
	"fmt"
	"time"

	id "leetcoach/pkg/domain"
)

// Key identifies a session: one per user and question.
type Key struct {
	UserID     id.UserID
	QuestionID id.QuestionID
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.UserID, int(k.QuestionID))
}

// State is derived from which stage fields are present; stages are not gated.
type State string

const (
	StateStarted     State = "started"
	StateClarified   State = "clarified"
	StateBruteForced State = "brute_forced"
	StateOptimized   State = "optimized"
	StateReviewed    State = "reviewed"
)

// Session accumulates a candidate's answers for one question. Empty strings
// mean the stage has not been submitted.
type Session struct {
	UserID                    id.UserID
	QuestionID                id.QuestionID
	Clarification             string
	BruteForce                string
	BruteForceTimeComplexity  string
	BruteForceSpaceComplexity string
	Optimize                  string
	OptimizeTimeComplexity    string
	OptimizeSpaceComplexity   string
	Code                      string
	Language                  string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// State reports the furthest stage reached.
func (s *Session) State() State {
	switch {
	case s.Code != "":
		return StateReviewed
	case s.Optimize != "":
		return StateOptimized
	case s.BruteForce != "":
		return StateBruteForced
	case s.Clarification != "":
		return StateClarified
	default:
		return StateStarted
	}
}

// Patch holds the fields one stage writes. Nil fields are left untouched.
type Patch struct {
	Clarification             *string
	BruteForce                *string
	BruteForceTimeComplexity  *string
	BruteForceSpaceComplexity *string
	Optimize                  *string
	OptimizeTimeComplexity    *string
	OptimizeSpaceComplexity   *string
	Code                      *string
	Language                  *string
}

// Apply writes the non-nil patch fields onto s.
func (p Patch) Apply(s *Session) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.Clarification, p.Clarification)
	set(&s.BruteForce, p.BruteForce)
	set(&s.BruteForceTimeComplexity, p.BruteForceTimeComplexity)
	set(&s.BruteForceSpaceComplexity, p.BruteForceSpaceComplexity)
	set(&s.Optimize, p.Optimize)
	set(&s.OptimizeTimeComplexity, p.OptimizeTimeComplexity)
	set(&s.OptimizeSpaceComplexity, p.OptimizeSpaceComplexity)
	set(&s.Code, p.Code)
	set(&s.Language, p.Language)
}

// NewSession returns an empty session for key created at now.
func NewSession(key Key, now time.Time) *Session {
	return &Session{
		UserID:     key.UserID,
		QuestionID: key.QuestionID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
