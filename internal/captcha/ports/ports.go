package ports

import (
	"context"
	"time"

	"leetcoach/internal/captcha/models"
)

// ChallengeStore persists issued challenges until they are redeemed or expire.
//
// Take must be atomic: of any number of concurrent calls for one id, at most
// one returns the challenge. It returns sentinel.ErrNotFound when the id is
// unknown or already taken.
type ChallengeStore interface {
	Save(ctx context.Context, challenge *models.Challenge) error
	Take(ctx context.Context, id string) (*models.Challenge, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
