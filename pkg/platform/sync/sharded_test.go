package sync

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedMap_UpdateCreatesAndDeletes(t *testing.T) {
	m := NewShardedMap[int]()

	m.Update("a", func(cur int, found bool) (int, bool) {
		assert.False(t, found)
		return cur + 1, true
	})
	v, ok := m.Load("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m.Update("a", func(cur int, found bool) (int, bool) {
		assert.True(t, found)
		return 0, false
	})
	_, ok = m.Load("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestShardedMap_SameKeySerializes(t *testing.T) {
	m := NewShardedMap[int]()
	var wg sync.WaitGroup

	for range 100 {
		wg.Go(func() {
			m.Update("same-key", func(cur int, _ bool) (int, bool) {
				return cur + 1, true
			})
		})
	}
	wg.Wait()

	v, _ := m.Load("same-key")
	assert.Equal(t, 100, v)
}

func TestShardedMap_TakeIsSingleWinner(t *testing.T) {
	m := NewShardedMap[string]()
	m.Store("token", "42")

	var winners atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			if _, ok := m.Take("token"); ok {
				winners.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestShardedMap_SweepRemovesRejected(t *testing.T) {
	m := NewShardedMap[int]()
	for i, key := range []string{"k1", "k2", "k3", "k4"} {
		m.Store(key, i)
	}

	removed := m.Sweep(func(_ string, v int) (int, bool) {
		return v, v%2 == 0
	})

	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Load("k2")
	assert.False(t, ok)
}

func TestShardIndex_Distribution(t *testing.T) {
	shards := make(map[int]bool)
	keys := []string{"203.0.113.1:login", "203.0.113.2:login", "198.51.100.9:default", "captcha:abc", "captcha:xyz", "u1:q7"}

	for _, key := range keys {
		shards[shardIndex(key)] = true
	}

	assert.GreaterOrEqual(t, len(shards), 3, "expected keys to distribute across multiple shards")
	assert.Equal(t, 0, shardIndex(""))
}

func TestHashString(t *testing.T) {
	assert.Equal(t, hashString("test"), hashString("test"))
	assert.NotEqual(t, hashString("test1"), hashString("test2"))
	assert.Equal(t, uint32(0), hashString(""))
}
