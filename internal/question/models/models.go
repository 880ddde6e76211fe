package models

import id "leetcoach/pkg/domain"

type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Question is a practice problem from the bank.
type Question struct {
	ID          id.QuestionID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Examples    []Example     `json:"examples"`
	Constraints []string      `json:"constraints"`
}

// Summary is the list view of a question.
type Summary struct {
	ID    id.QuestionID `json:"id"`
	Title string        `json:"title"`
}

// StartSessionRequest selects a question. A missing or zero id means the
// first question in the bank.
type StartSessionRequest struct {
	QuestionID int `json:"question_id" validate:"gte=0"`
}

type StartSessionResponse struct {
	Question *Question `json:"question"`
}
