package challenge

import (
	"context"
	"fmt"
	"time"

	"leetcoach/internal/captcha/models"
	"leetcoach/internal/sentinel"
	platformsync "leetcoach/pkg/platform/sync"
)

// InMemoryChallengeStore keeps challenges in a sharded map. Take removes under
// the shard lock, so a token can be redeemed once.
type InMemoryChallengeStore struct {
	challenges *platformsync.ShardedMap[models.Challenge]
}

func New() *InMemoryChallengeStore {
	return &InMemoryChallengeStore{
		challenges: platformsync.NewShardedMap[models.Challenge](),
	}
}

func (s *InMemoryChallengeStore) Save(_ context.Context, challenge *models.Challenge) error {
	if challenge == nil {
		return fmt.Errorf("challenge is required")
	}
	s.challenges.Store(challenge.ID, *challenge)
	return nil
}

func (s *InMemoryChallengeStore) Take(_ context.Context, id string) (*models.Challenge, error) {
	c, ok := s.challenges.Take(id)
	if !ok {
		return nil, fmt.Errorf("challenge not found: %w", sentinel.ErrNotFound)
	}
	return &c, nil
}

func (s *InMemoryChallengeStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	return s.challenges.Sweep(func(_ string, c models.Challenge) (models.Challenge, bool) {
		return c, !c.ExpiresAt.Before(now)
	}), nil
}

func (s *InMemoryChallengeStore) Len() int {
	return s.challenges.Len()
}
