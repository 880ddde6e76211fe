package security

import (
	"sync"

	audit "leetcoach/pkg/platform/audit"
)

// RingBuffer is a bounded FIFO that overwrites the oldest event when full.
type RingBuffer struct {
	mu      sync.Mutex
	items   []audit.SecurityEvent
	head    int
	size    int
	dropped int64
}

// NewRingBuffer creates a buffer holding up to capacity events (minimum 1).
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{items: make([]audit.SecurityEvent, capacity)}
}

// Enqueue appends an event, dropping the oldest one on overflow.
// Returns true if an event was dropped.
func (b *RingBuffer) Enqueue(event audit.SecurityEvent) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.items)
	if b.size == capacity {
		b.items[b.head] = event
		b.head = (b.head + 1) % capacity
		b.dropped++
		return true
	}
	b.items[(b.head+b.size)%capacity] = event
	b.size++
	return false
}

// DequeueBatch removes and returns up to n events in FIFO order.
func (b *RingBuffer) DequeueBatch(n int) []audit.SecurityEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]audit.SecurityEvent, n)
	capacity := len(b.items)
	for i := range n {
		idx := (b.head + i) % capacity
		out[i] = b.items[idx]
		b.items[idx] = audit.SecurityEvent{}
	}
	b.head = (b.head + n) % capacity
	b.size -= n
	return out
}

func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Dropped reports how many events were overwritten since creation.
func (b *RingBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
