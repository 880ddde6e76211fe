// Package resilient decorates a feedback.Generator with a circuit breaker,
// tracing and metrics.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"leetcoach/internal/feedback"
	"leetcoach/internal/feedback/metrics"
	"leetcoach/internal/feedback/tracer"
	"leetcoach/pkg/platform/circuit"
)

const (
	defaultFailureThreshold = 5
	defaultCooldown         = 30 * time.Second
)

// Generator fails fast with feedback.ErrUpstream while the upstream breaker
// is open. Caller cancellations are not counted as upstream failures.
type Generator struct {
	next    feedback.Generator
	breaker *circuit.Breaker
	tracer  tracer.Tracer
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Generator)

func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Generator) {
		g.breaker = b
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(g *Generator) {
		g.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock overrides time.Now for breaker bookkeeping and latency.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(next feedback.Generator, opts ...Option) *Generator {
	g := &Generator{
		next:   next,
		tracer: tracer.NewNoop(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.breaker == nil {
		g.breaker = circuit.New("feedback",
			circuit.WithFailureThreshold(defaultFailureThreshold),
			circuit.WithCooldown(defaultCooldown),
		)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, prompt feedback.Prompt) (out string, err error) {
	kind := prompt.Kind.String()
	ctx, span := g.tracer.Start(ctx, tracer.SpanGenerate,
		tracer.String(tracer.AttrKind, kind),
		tracer.Int64(tracer.AttrPromptChars, int64(len(prompt.Text))),
	)
	defer func() { span.End(err) }()

	start := g.now()
	if ok, _ := g.breaker.Allow(start); !ok {
		span.AddEvent(tracer.EventBreakerRejected)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeRejected))
		g.metrics.RecordRequest(kind, metrics.OutcomeRejected)
		return "", fmt.Errorf("%w: circuit %s open", feedback.ErrUpstream, g.breaker.Name())
	}

	out, err = g.next.Generate(ctx, prompt)
	elapsed := g.now().Sub(start)
	g.metrics.ObserveLatency(kind, elapsed.Seconds())
	span.SetAttributes(tracer.Duration("feedback.latency_ms", elapsed))

	if err != nil {
		outcome := classify(ctx, err)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, outcome))
		g.metrics.RecordRequest(kind, outcome)
		if outcome == metrics.OutcomeCancelled {
			return "", err
		}

		if change := g.breaker.RecordFailure(g.now()); change.Opened {
			span.AddEvent(tracer.EventBreakerOpened)
			g.metrics.SetBreakerOpen(true)
			g.logger.WarnContext(ctx, "feedback upstream degraded, failing fast",
				"breaker", g.breaker.Name(),
				"kind", kind,
				"error", err,
			)
		}
		if outcome == metrics.OutcomeTimeout {
			return "", ensureTyped(err, feedback.ErrTimeout)
		}
		return "", ensureTyped(err, feedback.ErrUpstream)
	}

	if change := g.breaker.RecordSuccess(); change.Closed {
		span.AddEvent(tracer.EventBreakerClosed)
		g.metrics.SetBreakerOpen(false)
		g.logger.InfoContext(ctx, "feedback upstream recovered", "breaker", g.breaker.Name())
	}
	span.SetAttributes(
		tracer.String(tracer.AttrOutcome, metrics.OutcomeSuccess),
		tracer.Int64(tracer.AttrResponseChars, int64(len(out))),
	)
	g.metrics.RecordRequest(kind, metrics.OutcomeSuccess)
	return out, nil
}

func classify(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, feedback.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return metrics.OutcomeCancelled
	default:
		return metrics.OutcomeUpstream
	}
}

func ensureTyped(err, typed error) error {
	if errors.Is(err, typed) {
		return err
	}
	return fmt.Errorf("%w: %w", typed, err)
}

var _ feedback.Generator = (*Generator)(nil)
