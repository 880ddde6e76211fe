package authlockout

import (
	"context"
	"slices"
	"sort"
	"time"

	psync "leetcoach/pkg/platform/sync"
)

// InMemoryAuthLockoutStore keeps auth failure timestamps per client key.
// Each key is pruned under its shard lock on every access.
type InMemoryAuthLockoutStore struct {
	records *psync.ShardedMap[[]time.Time]
}

func New() *InMemoryAuthLockoutStore {
	return &InMemoryAuthLockoutStore{
		records: psync.NewShardedMap[[]time.Time](),
	}
}

// RecordFailure inserts now in time order and returns the in-window failure
// count. Concurrent callers may arrive with now slightly out of order.
func (s *InMemoryAuthLockoutStore) RecordFailure(_ context.Context, key string, window time.Duration, now time.Time) (int, error) {
	var count int
	s.records.Update(key, func(failures []time.Time, _ bool) ([]time.Time, bool) {
		failures = prune(failures, now, window)
		at := sort.Search(len(failures), func(i int) bool { return failures[i].After(now) })
		failures = slices.Insert(failures, at, now)
		count = len(failures)
		return failures, true
	})
	return count, nil
}

// Count returns the in-window failure count, dropping expired entries.
func (s *InMemoryAuthLockoutStore) Count(_ context.Context, key string, window time.Duration, now time.Time) (int, error) {
	var count int
	s.records.Update(key, func(failures []time.Time, found bool) ([]time.Time, bool) {
		if !found {
			return nil, false
		}
		failures = prune(failures, now, window)
		count = len(failures)
		return failures, count > 0
	})
	return count, nil
}

// Sweep drops records whose failures have all left the window.
func (s *InMemoryAuthLockoutStore) Sweep(_ context.Context, window time.Duration, now time.Time) (int, error) {
	removed := s.records.Sweep(func(_ string, failures []time.Time) ([]time.Time, bool) {
		failures = prune(failures, now, window)
		return failures, len(failures) > 0
	})
	return removed, nil
}

// Len returns the number of tracked clients.
func (s *InMemoryAuthLockoutStore) Len() int {
	return s.records.Len()
}

// prune drops timestamps at or before now-window. failures is ordered oldest first.
func prune(failures []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := 0
	for ; i < len(failures); i++ {
		if failures[i].After(cutoff) {
			break
		}
	}
	return failures[i:]
}
