package bucket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetcoach/internal/ratelimit/models"
	"leetcoach/pkg/platform/circuit"
)

type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) Allow(_ context.Context, _ string, limit int, window time.Duration, now time.Time) (*models.RateLimitResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.RateLimitResult{Allowed: true, Limit: limit, Remaining: limit, ResetAt: now.Add(window)}, nil
}

func (f *flakyStore) Sweep(context.Context, time.Duration, time.Time) (int, error) {
	return 0, nil
}

func TestFailoverStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("primary errors fall through to fallback", func(t *testing.T) {
		primary := &flakyStore{err: errors.New("connection refused")}
		fallback := New()
		store := NewFailover(primary, fallback, circuit.New("test", circuit.WithFailureThreshold(2)), logger)

		result, err := store.Allow(ctx, "k", 1, time.Minute, t0)
		require.NoError(t, err)
		assert.True(t, result.Allowed)

		result, err = store.Allow(ctx, "k", 1, time.Minute, t0.Add(time.Second))
		require.NoError(t, err)
		assert.False(t, result.Allowed, "fallback enforces the limit")
		assert.Equal(t, 2, primary.calls)
	})

	t.Run("open breaker skips primary until cooldown", func(t *testing.T) {
		primary := &flakyStore{err: errors.New("timeout")}
		breaker := circuit.New("test", circuit.WithFailureThreshold(1), circuit.WithCooldown(10*time.Second))
		store := NewFailover(primary, New(), breaker, logger)

		_, err := store.Allow(ctx, "k", 5, time.Minute, t0)
		require.NoError(t, err)
		require.Equal(t, circuit.StateOpen, breaker.State())

		_, err = store.Allow(ctx, "k", 5, time.Minute, t0.Add(time.Second))
		require.NoError(t, err)
		assert.Equal(t, 1, primary.calls)

		primary.err = nil
		_, err = store.Allow(ctx, "k", 5, time.Minute, t0.Add(11*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 2, primary.calls)
		assert.Equal(t, circuit.StateHalfOpen, breaker.State())
	})
}
