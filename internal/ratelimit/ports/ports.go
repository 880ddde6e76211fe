// Package ports defines shared interfaces for the ratelimit module.
// Interfaces are placed here when consumed by multiple services to avoid duplication.
package ports

import (
	"context"
	"time"

	"leetcoach/internal/ratelimit/models"
)

// BucketStore manages sliding window request counters.
type BucketStore interface {
	// Allow prunes timestamps older than now-window, then admits and records
	// now if fewer than limit remain. Atomic per key.
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error)

	// Sweep drops buckets whose newest timestamp is older than now-window.
	Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error)
}

// FailureStore tracks authentication failure timestamps per client.
type FailureStore interface {
	// RecordFailure appends now and returns the pruned count including it.
	RecordFailure(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)

	// Count prunes timestamps older than now-window and returns how many remain.
	Count(ctx context.Context, key string, window time.Duration, now time.Time) (int, error)

	// Sweep drops records with no timestamp inside the window.
	Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error)
}
