// Package security provides an async-buffered publisher for security events.
//
// Events are buffered in memory and written to a sink in batches by a
// background goroutine, so the request path never blocks on the sink. Failed
// batches are retried with exponential backoff. If the buffer is full, the
// oldest events are dropped.
package security

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	audit "leetcoach/pkg/platform/audit"
)

// Publisher emits security events asynchronously with buffering and retry.
type Publisher struct {
	sink    audit.Sink
	buffer  *RingBuffer
	logger  *slog.Logger
	metrics *Metrics

	maxRetries   int
	retryBackoff time.Duration

	flushInterval time.Duration
	batchSize     int

	// flushMu serializes batch writes between the loop, Flush and Close.
	flushMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	flushed           atomic.Int64
	retries           atomic.Int64
	droppedAfterRetry atomic.Int64
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithBufferSize sets the buffer capacity.
func WithBufferSize(size int) Option {
	return func(p *Publisher) {
		p.buffer = NewRingBuffer(size)
	}
}

// WithMaxRetries sets the maximum retry attempts per batch.
func WithMaxRetries(n int) Option {
	return func(p *Publisher) {
		p.maxRetries = n
	}
}

// WithRetryBackoff sets the base retry backoff duration.
func WithRetryBackoff(d time.Duration) Option {
	return func(p *Publisher) {
		p.retryBackoff = d
	}
}

// WithFlushInterval sets the flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(p *Publisher) {
		p.flushInterval = d
	}
}

// WithBatchSize sets the batch size for flushing.
func WithBatchSize(n int) Option {
	return func(p *Publisher) {
		p.batchSize = n
	}
}

// New creates a security publisher with background flushing.
func New(sink audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{
		sink:          sink,
		buffer:        NewRingBuffer(10000),
		maxRetries:    3,
		retryBackoff:  100 * time.Millisecond,
		flushInterval: 50 * time.Millisecond,
		batchSize:     100,
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(p)
	}

	p.wg.Go(p.flushLoop)
	return p
}

// Emit queues a security event. It never blocks and never fails.
func (p *Publisher) Emit(_ context.Context, event audit.SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = audit.NewEventID(event.Timestamp)
	}
	if p.buffer.Enqueue(event) {
		p.metrics.add(outcomeDropped, 1)
	}
	p.metrics.setQueueDepth(p.buffer.Len())
}

// Flush writes every buffered event now. Used by tests and shutdown.
func (p *Publisher) Flush(ctx context.Context) {
	for p.buffer.Len() > 0 && ctx.Err() == nil {
		p.flushBatch(ctx)
	}
}

// Close stops the background loop and drains the buffer.
func (p *Publisher) Close() error {
	p.cancel()
	p.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.Flush(ctx)

	if n := p.buffer.Len(); n > 0 && p.logger != nil {
		p.logger.Warn("security events left unflushed on shutdown", "count", n)
	}
	return nil
}

// BufferStats holds buffer statistics.
type BufferStats struct {
	Queued            int64 // Events currently in buffer
	Flushed           int64 // Events successfully written
	Dropped           int64 // Events dropped due to buffer overflow
	DroppedAfterRetry int64 // Events dropped after exhausting retries
	Retries           int64 // Total retry attempts
}

// Stats returns buffer statistics for monitoring.
func (p *Publisher) Stats() BufferStats {
	return BufferStats{
		Queued:            int64(p.buffer.Len()),
		Flushed:           p.flushed.Load(),
		Dropped:           p.buffer.Dropped(),
		DroppedAfterRetry: p.droppedAfterRetry.Load(),
		Retries:           p.retries.Load(),
	}
}

func (p *Publisher) flushLoop() {
	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.flushBatch(p.ctx)
		}
	}
}

func (p *Publisher) flushBatch(ctx context.Context) {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	events := p.buffer.DequeueBatch(p.batchSize)
	if len(events) == 0 {
		return
	}

	start := time.Now()
	p.writeWithRetry(ctx, events)
	p.metrics.observeFlush(time.Since(start).Seconds())
	p.metrics.setQueueDepth(p.buffer.Len())
}

func (p *Publisher) writeWithRetry(ctx context.Context, events []audit.SecurityEvent) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			p.retries.Add(1)
			p.metrics.add(outcomeRetried, 1)

			backoff := p.retryBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				p.drop(ctx, events, ctx.Err())
				return
			case <-time.After(backoff):
			}
		}

		if lastErr = p.sink.Write(ctx, events); lastErr == nil {
			p.flushed.Add(int64(len(events)))
			p.metrics.add(outcomeFlushed, len(events))
			return
		}
	}
	p.drop(ctx, events, lastErr)
}

func (p *Publisher) drop(ctx context.Context, events []audit.SecurityEvent, err error) {
	p.droppedAfterRetry.Add(int64(len(events)))
	p.metrics.add(outcomeDroppedAfterRetry, len(events))
	if p.logger != nil {
		p.logger.WarnContext(ctx, "security events dropped after retries",
			"count", len(events),
			"first_action", string(events[0].Action),
			"error", err,
		)
	}
}
