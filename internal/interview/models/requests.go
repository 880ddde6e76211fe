package models

import (
	"strings"

	s "leetcoach/pkg/string"
	"leetcoach/pkg/validation"
)

type ClarifyRequest struct {
	QuestionID int    `json:"question_id" validate:"gt=0"`
	UserInput  string `json:"user_input" validate:"notblank,max=1000"`
}

func (r *ClarifyRequest) Sanitize() {
	s.TrimStrings(&r.UserInput)
}

func (r *ClarifyRequest) Validate() error {
	return validation.Validate(r)
}

// StageRequest is the body of the brute-force and optimize stages.
type StageRequest struct {
	QuestionID      int     `json:"question_id" validate:"gt=0"`
	UserIdea        string  `json:"user_idea" validate:"notblank,max=2000"`
	TimeComplexity  *string `json:"time_complexity,omitempty" validate:"omitempty,max=100"`
	SpaceComplexity *string `json:"space_complexity,omitempty" validate:"omitempty,max=100"`
}

func (r *StageRequest) Sanitize() {
	s.TrimStrings(&r.UserIdea)
	s.TrimOptional(&r.TimeComplexity, &r.SpaceComplexity)
}

func (r *StageRequest) Validate() error {
	return validation.Validate(r)
}

// CodeReviewRequest carries the code plus optional earlier-stage answers.
// Stored session values win over the optional fields.
type CodeReviewRequest struct {
	QuestionID                int     `json:"question_id" validate:"gt=0"`
	Code                      string  `json:"code" validate:"notblank,max=10000"`
	Language                  string  `json:"language" validate:"required,language"`
	Clarification             *string `json:"clarification,omitempty" validate:"omitempty,max=1000"`
	BruteForce                *string `json:"brute_force,omitempty" validate:"omitempty,max=2000"`
	BruteForceTimeComplexity  *string `json:"brute_force_time_complexity,omitempty" validate:"omitempty,max=100"`
	BruteForceSpaceComplexity *string `json:"brute_force_space_complexity,omitempty" validate:"omitempty,max=100"`
	Optimize                  *string `json:"optimize,omitempty" validate:"omitempty,max=2000"`
	OptimizeTimeComplexity    *string `json:"optimize_time_complexity,omitempty" validate:"omitempty,max=100"`
	OptimizeSpaceComplexity   *string `json:"optimize_space_complexity,omitempty" validate:"omitempty,max=100"`
}

func (r *CodeReviewRequest) Sanitize() {
	s.TrimStrings(&r.Code, &r.Language)
	s.TrimOptional(
		&r.Clarification,
		&r.BruteForce, &r.BruteForceTimeComplexity, &r.BruteForceSpaceComplexity,
		&r.Optimize, &r.OptimizeTimeComplexity, &r.OptimizeSpaceComplexity,
	)
}

func (r *CodeReviewRequest) Normalize() {
	r.Language = strings.ToLower(r.Language)
}

func (r *CodeReviewRequest) Validate() error {
	return validation.Validate(r)
}

// FunctionDefinitionRequest asks for a starter stub. A zero question id
// selects the first question.
type FunctionDefinitionRequest struct {
	QuestionID int    `json:"question_id" validate:"gte=0"`
	Language   string `json:"language" validate:"required,language"`
}

func (r *FunctionDefinitionRequest) Sanitize() {
	s.TrimStrings(&r.Language)
}

func (r *FunctionDefinitionRequest) Normalize() {
	r.Language = strings.ToLower(r.Language)
}

func (r *FunctionDefinitionRequest) Validate() error {
	return validation.Validate(r)
}
