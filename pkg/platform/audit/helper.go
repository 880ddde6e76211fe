package audit

import (
	"context"
	"log/slog"

	"leetcoach/pkg/requestcontext"
)

// Emitter is the interface for security event emission.
// Satisfied by security.Publisher.
type Emitter interface {
	Emit(ctx context.Context, event SecurityEvent)
}

// Logger provides structured security logging with optional event emission.
// Use this in services to standardize audit logging patterns.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger.
// textLogger is used for structured logging; emitter is optional.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Log records a security event. Missing request metadata (time, request id,
// user agent) is filled from the context before the event is written to the
// text log and handed to the emitter.
//
// Usage:
//
//	logger.Log(ctx, audit.SecurityEvent{Action: audit.ActionRateLimitExceeded, ClientID: ip})
func (l *Logger) Log(ctx context.Context, event SecurityEvent) {
	if l == nil {
		return
	}
	event = enrich(ctx, event)
	l.logToText(ctx, event)
	if l.emitter != nil {
		l.emitter.Emit(ctx, event)
	}
}

func enrich(ctx context.Context, event SecurityEvent) SecurityEvent {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.ID == "" {
		event.ID = NewEventID(event.Timestamp)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	return event
}

func (l *Logger) logToText(ctx context.Context, event SecurityEvent) {
	if l.textLogger == nil {
		return
	}
	args := []any{
		"event", string(event.Action),
		"log_type", "audit",
		"event_id", event.ID,
	}
	if event.ClientID != "" {
		args = append(args, "client_id", event.ClientID)
	}
	if event.Endpoint != "" {
		args = append(args, "endpoint", event.Endpoint)
	}
	if event.Reason != "" {
		args = append(args, "reason", event.Reason)
	}
	if event.RetryAfter > 0 {
		args = append(args, "retry_after_seconds", int(event.RetryAfter.Seconds()))
	}
	if event.Username != "" {
		args = append(args, "username", event.Username)
	}
	if event.Device != "" {
		args = append(args, "device", event.Device)
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}

	level := slog.LevelInfo
	if event.Action.IsRejection() {
		level = slog.LevelWarn
	}
	l.textLogger.Log(ctx, level, string(event.Action), args...)
}
