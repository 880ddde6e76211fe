package models

import (
	"time"

	id "leetcoach/pkg/domain"
)

// Agent labels returned with stage feedback.
const (
	AgentClarification = "ClarificationAgent"
	AgentBruteForce    = "BruteForceAgent"
	AgentOptimize      = "OptimizeAgent"
	AgentCodeReview    = "CodeReviewAgent"
)

type StageResponse struct {
	Agent    string `json:"agent"`
	Response string `json:"response"`
}

type Criterion struct {
	Grade    float64 `json:"grade"`
	Feedback string  `json:"feedback"`
}

type CodingCriterion struct {
	Grade      float64 `json:"grade"`
	Feedback   string  `json:"feedback"`
	LineByLine []any   `json:"line_by_line"`
}

// Review is the structured grade a reviewer returns for a session.
type Review struct {
	Clarification Criterion       `json:"clarification"`
	BruteForce    Criterion       `json:"brute_force"`
	Coding        CodingCriterion `json:"coding"`
	Total         float64         `json:"total"`
	KeyPointers   string          `json:"key_pointers"`
}

const (
	noFeedback       = "No feedback available."
	unparsableReview = "Could not parse review. Please try again."
)

// DefaultReview is returned when the model output cannot be parsed.
func DefaultReview() *Review {
	return &Review{
		Clarification: Criterion{Feedback: noFeedback},
		BruteForce:    Criterion{Feedback: noFeedback},
		Coding:        CodingCriterion{Feedback: noFeedback, LineByLine: []any{}},
		KeyPointers:   unparsableReview,
	}
}

type ReviewResponse struct {
	Agent          string  `json:"agent"`
	Review         *Review `json:"review"`
	ActualSolution string  `json:"actual_solution"`
}

type FunctionDefinitionResponse struct {
	FunctionDefinition string `json:"function_definition"`
}

type SessionResponse struct {
	QuestionID                id.QuestionID `json:"question_id"`
	State                     State         `json:"state"`
	Clarification             string        `json:"clarification,omitempty"`
	BruteForce                string        `json:"brute_force,omitempty"`
	BruteForceTimeComplexity  string        `json:"brute_force_time_complexity,omitempty"`
	BruteForceSpaceComplexity string        `json:"brute_force_space_complexity,omitempty"`
	Optimize                  string        `json:"optimize,omitempty"`
	OptimizeTimeComplexity    string        `json:"optimize_time_complexity,omitempty"`
	OptimizeSpaceComplexity   string        `json:"optimize_space_complexity,omitempty"`
	Code                      string        `json:"code,omitempty"`
	Language                  string        `json:"language,omitempty"`
	CreatedAt                 time.Time     `json:"created_at"`
	UpdatedAt                 time.Time     `json:"updated_at"`
}

func NewSessionResponse(s *Session) *SessionResponse {
	return &SessionResponse{
		QuestionID:                s.QuestionID,
		State:                     s.State(),
		Clarification:             s.Clarification,
		BruteForce:                s.BruteForce,
		BruteForceTimeComplexity:  s.BruteForceTimeComplexity,
		BruteForceSpaceComplexity: s.BruteForceSpaceComplexity,
		Optimize:                  s.Optimize,
		OptimizeTimeComplexity:    s.OptimizeTimeComplexity,
		OptimizeSpaceComplexity:   s.OptimizeSpaceComplexity,
		Code:                      s.Code,
		Language:                  s.Language,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
	}
}
