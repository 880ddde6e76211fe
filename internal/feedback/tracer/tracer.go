// Package tracer is a thin tracing abstraction for feedback generation so the
// generator decorators do not depend on OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and local runs
//   - OTelTracer: OpenTelemetry adapter
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span; a non-nil err marks it failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start opens a span and returns a context carrying it.
	//
	//   ctx, span := tr.Start(ctx, tracer.SpanGenerate,
	//       tracer.String(tracer.AttrKind, "review"),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanGenerate     = "feedback.generate"
	SpanUpstreamCall = "feedback.upstream.call"
)

// Attribute keys.
const (
	AttrKind          = "feedback.kind"
	AttrModel         = "feedback.model"
	AttrPromptChars   = "feedback.prompt_chars"
	AttrResponseChars = "feedback.response_chars"
	AttrBreakerState  = "feedback.breaker_state"
	AttrOutcome       = "feedback.outcome"
	AttrStatusCode    = "http.status_code"
)

// Event names.
const (
	EventBreakerRejected = "breaker.rejected"
	EventBreakerOpened   = "breaker.opened"
	EventBreakerClosed   = "breaker.closed"
)
