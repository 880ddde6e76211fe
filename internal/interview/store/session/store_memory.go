package session

import (
	"context"
	"fmt"
	"time"

	"leetcoach/internal/interview/models"
	"leetcoach/internal/sentinel"
	platformsync "leetcoach/pkg/platform/sync"
)

// InMemorySessionStore applies patches under the key's shard lock, so
// concurrent upserts of one session never interleave.
type InMemorySessionStore struct {
	sessions *platformsync.ShardedMap[models.Session]
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: platformsync.NewShardedMap[models.Session](),
	}
}

func (s *InMemorySessionStore) Upsert(ctx context.Context, key models.Key, patch models.Patch, now time.Time) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}
	var out models.Session
	s.sessions.Update(key.String(), func(current models.Session, found bool) (models.Session, bool) {
		if !found {
			current = *models.NewSession(key, now)
		}
		patch.Apply(&current)
		current.UpdatedAt = now
		out = current
		return current, true
	})
	return &out, nil
}

func (s *InMemorySessionStore) Get(_ context.Context, key models.Key) (*models.Session, error) {
	session, ok := s.sessions.Load(key.String())
	if !ok {
		return nil, fmt.Errorf("session %s: %w", key, sentinel.ErrNotFound)
	}
	return &session, nil
}
