package sync

import (
	"sync"
)

const shardCount = 32

// ShardedMap is a string-keyed map split across independently locked shards.
// Operations on one key are linearized by its shard lock; keys in other shards
// never wait on each other. There is no map-wide lock.
type ShardedMap[V any] struct {
	shards [shardCount]mapShard[V]
}

type mapShard[V any] struct {
	mu    sync.Mutex
	items map[string]V
}

// NewShardedMap creates an empty ShardedMap.
func NewShardedMap[V any]() *ShardedMap[V] {
	m := &ShardedMap[V]{}
	for i := range m.shards {
		m.shards[i].items = make(map[string]V)
	}
	return m
}

// Update runs fn while holding the key's shard lock. fn receives the current
// value (zero if absent) and returns the value to store; returning keep=false
// deletes the key. This is the read-modify-write primitive every store builds on.
func (m *ShardedMap[V]) Update(key string, fn func(current V, found bool) (next V, keep bool)) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.items[key]
	next, keep := fn(current, found)
	if !keep {
		delete(s.items, key)
		return
	}
	s.items[key] = next
}

// Load returns the value for key.
func (m *ShardedMap[V]) Load(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok
}

// Store sets the value for key.
func (m *ShardedMap[V]) Store(key string, v V) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = v
}

// Take removes key and returns its previous value. At most one of any number
// of concurrent Take calls on the same key observes found=true.
func (m *ShardedMap[V]) Take(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return v, ok
}

// Sweep visits every entry, one shard lock at a time. visit returns the value
// to keep (possibly rewritten) or keep=false to remove it. Returns the number
// of removed entries.
func (m *ShardedMap[V]) Sweep(visit func(key string, v V) (next V, keep bool)) int {
	removed := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for key, v := range s.items {
			next, keep := visit(key, v)
			if !keep {
				delete(s.items, key)
				removed++
				continue
			}
			s.items[key] = next
		}
		s.mu.Unlock()
	}
	return removed
}

// Len returns the number of entries. The result is a snapshot per shard.
func (m *ShardedMap[V]) Len() int {
	n := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		n += len(s.items)
		s.mu.Unlock()
	}
	return n
}

// shardFor returns the shard for the given key. Empty keys map to shard 0.
func (m *ShardedMap[V]) shardFor(key string) *mapShard[V] {
	return &m.shards[shardIndex(key)]
}

func shardIndex(key string) int {
	if key == "" {
		return 0
	}
	return int(hashString(key) % shardCount)
}

// hashString provides a simple hash for shard selection.
// Uses djb2-style hashing for good distribution.
func hashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
