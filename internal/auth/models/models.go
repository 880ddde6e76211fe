package models

import (
	"time"

	id "leetcoach/pkg/domain"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the service.
type User struct {
	ID           id.UserID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user with a fresh ID.
func NewUser(username, email, passwordHash string, now time.Time) *User {
	return &User{
		ID:           id.NewUserID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
}
