package bucket

import (
	"context"
	"log/slog"
	"time"

	"leetcoach/internal/ratelimit/models"
	"leetcoach/internal/ratelimit/ports"
	"leetcoach/pkg/platform/circuit"
)

// FailoverStore keeps rate limiting alive when the shared store is down.
// Consecutive primary errors open the breaker; while open, checks go to the
// local fallback. After the cooldown the primary is retried.
type FailoverStore struct {
	primary  ports.BucketStore
	fallback ports.BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

// NewFailover wraps primary with fallback behind breaker.
func NewFailover(primary, fallback ports.BucketStore, breaker *circuit.Breaker, logger *slog.Logger) *FailoverStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
	}
}

func (s *FailoverStore) Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error) {
	if ok, _ := s.breaker.Allow(now); !ok {
		return s.fallback.Allow(ctx, key, limit, window, now)
	}

	result, err := s.primary.Allow(ctx, key, limit, window, now)
	if err != nil {
		if change := s.breaker.RecordFailure(now); change.Opened {
			s.logger.WarnContext(ctx, "rate limit store degraded, using local fallback",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		return s.fallback.Allow(ctx, key, limit, window, now)
	}

	if change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "rate limit store recovered", "breaker", s.breaker.Name())
	}
	return result, nil
}

// Sweep sweeps both stores; the fallback may hold buckets from a past outage.
func (s *FailoverStore) Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error) {
	removed, err := s.fallback.Sweep(ctx, window, now)
	if err != nil {
		return removed, err
	}
	n, err := s.primary.Sweep(ctx, window, now)
	return removed + n, err
}
