// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "leetcoach/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing UserID where ChallengeID is expected.
type (
	UserID      uuid.UUID
	ChallengeID uuid.UUID
)

// QuestionID identifies an item in the question bank.
type QuestionID int

// ClientKey identifies a caller for abuse accounting (normally its network address).
type ClientKey string

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseChallengeID(s string) (ChallengeID, error) {
	id, err := parseUUID(s, "captcha ID")
	return ChallengeID(id), err
}

// ParseQuestionID accepts the decimal form used in URLs.
func ParseQuestionID(s string) (QuestionID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, "question ID cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "question ID must be a positive integer")
	}
	return QuestionID(n), nil
}

func NewUserID() UserID           { return UserID(uuid.New()) }
func NewChallengeID() ChallengeID { return ChallengeID(uuid.New()) }

// String methods - for logging and debugging.

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id ChallengeID) String() string { return uuid.UUID(id).String() }
func (id QuestionID) String() string  { return strconv.Itoa(int(id)) }
func (k ClientKey) String() string    { return string(k) }

// IsNil checks - used for service-layer validation.

func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ChallengeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+label+" format")
	}
	return id, nil
}
