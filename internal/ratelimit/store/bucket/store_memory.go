package bucket

import (
	"context"
	"time"

	"leetcoach/internal/ratelimit/models"
	psync "leetcoach/pkg/platform/sync"
)

// InMemoryBucketStore implements BucketStore using in-memory sliding windows.
// Buckets live in a sharded map so unrelated clients never share a lock.
// For multi-instance deployments, use RedisStore instead.
type InMemoryBucketStore struct {
	buckets *psync.ShardedMap[*slidingWindow]
}

// slidingWindow holds the admitted request timestamps of one bucket, oldest first.
type slidingWindow struct {
	timestamps []time.Time
}

// tryConsume prunes expired timestamps and records now if the bucket has room.
func (sw *slidingWindow) tryConsume(limit int, window time.Duration, now time.Time) *models.RateLimitResult {
	sw.cleanupExpired(now, window)

	count := len(sw.timestamps)
	if count >= limit {
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    now.Add(window),
			RetryAfter: window,
		}
	}

	sw.timestamps = append(sw.timestamps, now)
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   now.Add(window),
	}
}

func (sw *slidingWindow) cleanupExpired(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// New creates a new in-memory bucket store.
func New() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: psync.NewShardedMap[*slidingWindow](),
	}
}

// Allow checks if a request is allowed and records it if so.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error) {
	var result *models.RateLimitResult
	s.buckets.Update(key, func(sw *slidingWindow, found bool) (*slidingWindow, bool) {
		if !found {
			sw = &slidingWindow{}
		}
		result = sw.tryConsume(limit, window, now)
		return sw, len(sw.timestamps) > 0
	})
	return result, nil
}

// Sweep drops buckets that have no timestamp left inside window.
func (s *InMemoryBucketStore) Sweep(_ context.Context, window time.Duration, now time.Time) (int, error) {
	removed := s.buckets.Sweep(func(_ string, sw *slidingWindow) (*slidingWindow, bool) {
		sw.cleanupExpired(now, window)
		return sw, len(sw.timestamps) > 0
	})
	return removed, nil
}

// Len returns the number of live buckets.
func (s *InMemoryBucketStore) Len() int {
	return s.buckets.Len()
}
