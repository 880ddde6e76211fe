package bucket

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestInMemoryBucketStore_Allow(t *testing.T) {
	store := New()
	ctx := context.Background()
	const key = "client:10.0.0.1:login"

	t.Run("first request allowed with full remaining", func(t *testing.T) {
		result, err := store.Allow(ctx, key, 5, time.Minute, t0)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 5, result.Remaining, "remaining counts requests seen before this one")
		assert.Equal(t, t0.Add(time.Minute), result.ResetAt)
		assert.Zero(t, result.RetryAfter)
	})

	t.Run("requests up to limit allowed", func(t *testing.T) {
		for i := 1; i < 5; i++ {
			result, err := store.Allow(ctx, key, 5, time.Minute, t0.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d", i+1)
			assert.Equal(t, 5-i, result.Remaining)
		}
	})

	t.Run("request over limit denied with window as retry", func(t *testing.T) {
		now := t0.Add(10 * time.Second)
		result, err := store.Allow(ctx, key, 5, time.Minute, now)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Equal(t, time.Minute, result.RetryAfter)
		assert.Equal(t, now.Add(time.Minute), result.ResetAt)
	})

	t.Run("other keys are independent", func(t *testing.T) {
		result, err := store.Allow(ctx, "client:10.0.0.2:login", 5, time.Minute, t0.Add(10*time.Second))
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})
}

func TestInMemoryBucketStore_SlidingWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("oldest timestamp aging out frees exactly one slot", func(t *testing.T) {
		store := New()
		for i := range 3 {
			result, err := store.Allow(ctx, "k", 3, time.Minute, t0.Add(time.Duration(i)*10*time.Second))
			require.NoError(t, err)
			require.True(t, result.Allowed)
		}

		// t0 is exactly one window old: it no longer counts.
		result, err := store.Allow(ctx, "k", 3, time.Minute, t0.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, result.Allowed)

		// The request at t0+10s is still inside the window.
		result, err = store.Allow(ctx, "k", 3, time.Minute, t0.Add(time.Minute+5*time.Second))
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	})

	t.Run("boundary attack prevented", func(t *testing.T) {
		store := New()
		edge := t0.Add(59 * time.Second)
		for range 3 {
			result, err := store.Allow(ctx, "k", 3, time.Minute, edge)
			require.NoError(t, err)
			require.True(t, result.Allowed)
		}

		// A fixed window would reset at t0+60s; the sliding window does not.
		result, err := store.Allow(ctx, "k", 3, time.Minute, t0.Add(61*time.Second))
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	})

	t.Run("denied requests are not recorded", func(t *testing.T) {
		store := New()
		_, err := store.Allow(ctx, "k", 1, time.Minute, t0)
		require.NoError(t, err)
		for i := 1; i <= 10; i++ {
			result, err := store.Allow(ctx, "k", 1, time.Minute, t0.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
			require.False(t, result.Allowed)
		}

		result, err := store.Allow(ctx, "k", 1, time.Minute, t0.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})
}

func TestInMemoryBucketStore_Sweep(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Allow(ctx, "old", 5, time.Minute, t0)
	require.NoError(t, err)
	_, err = store.Allow(ctx, "fresh", 5, time.Minute, t0.Add(50*time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	removed, err := store.Sweep(ctx, time.Minute, t0.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	result, err := store.Allow(ctx, "fresh", 2, time.Minute, t0.Add(91*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Remaining, "sweep must keep in-window timestamps")
}

func TestInMemoryBucketStore_Concurrent(t *testing.T) {
	store := New()
	ctx := context.Background()

	const limit = 25
	var allowed atomic.Int32
	var wg sync.WaitGroup
	for range 200 {
		wg.Go(func() {
			result, err := store.Allow(ctx, "client:shared:default", limit, time.Minute, t0)
			if err == nil && result.Allowed {
				allowed.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(limit), allowed.Load(), "total allowed must not exceed limit under concurrency")
}
