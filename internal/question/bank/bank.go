// Package bank serves the static question catalog.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"leetcoach/internal/question/models"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
)

//go:embed questions.json
var defaultQuestions []byte

// Bank is an immutable, ordered set of questions. Safe for concurrent use.
type Bank struct {
	ordered []*models.Question
	byID    map[id.QuestionID]*models.Question
}

// Default loads the embedded catalog.
func Default() (*Bank, error) {
	return Load(defaultQuestions)
}

// Load parses a JSON array of questions. IDs must be positive and unique.
func Load(raw []byte) (*Bank, error) {
	var questions []*models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}

	b := &Bank{
		ordered: questions,
		byID:    make(map[id.QuestionID]*models.Question, len(questions)),
	}
	for _, q := range questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("question %q has non-positive id %d", q.Title, q.ID)
		}
		if _, dup := b.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		b.byID[q.ID] = q
	}
	return b, nil
}

// List returns id and title for every question in catalog order.
func (b *Bank) List() []models.Summary {
	out := make([]models.Summary, 0, len(b.ordered))
	for _, q := range b.ordered {
		out = append(out, models.Summary{ID: q.ID, Title: q.Title})
	}
	return out
}

// Get returns the question with the given id, or sentinel.ErrNotFound.
func (b *Bank) Get(questionID id.QuestionID) (*models.Question, error) {
	q, ok := b.byID[questionID]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", questionID, sentinel.ErrNotFound)
	}
	return q, nil
}

// Resolve is Get, except that a zero id selects the first question.
func (b *Bank) Resolve(questionID id.QuestionID) (*models.Question, error) {
	if questionID == 0 {
		return b.ordered[0], nil
	}
	return b.Get(questionID)
}
