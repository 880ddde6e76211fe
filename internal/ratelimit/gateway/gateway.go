// Package gateway composes the failure tracker and the request limiter into
// one admission decision per request.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"leetcoach/internal/ratelimit/metrics"
	"leetcoach/internal/ratelimit/models"
	"leetcoach/pkg/platform/audit"
)

// RequestLimiter admits requests against per-(client, class) sliding windows.
type RequestLimiter interface {
	Admit(ctx context.Context, clientID string, class models.EndpointClass, now time.Time) (*models.RateLimitResult, error)
}

// FailureTracker records auth failures and derives the current lockout delay.
type FailureTracker interface {
	RecordFailure(ctx context.Context, clientID string, now time.Time) (int, error)
	CurrentDelay(ctx context.Context, clientID string, now time.Time) (time.Duration, error)
}

// Gateway decides whether a request may reach its handler. The only state it
// touches is held by the limiter and the failure tracker.
type Gateway struct {
	limiter  RequestLimiter
	failures FailureTracker
	auditor  *audit.Logger
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Gateway)

func WithAuditLogger(auditor *audit.Logger) Option {
	return func(g *Gateway) {
		g.auditor = auditor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func New(limiter RequestLimiter, failures FailureTracker, opts ...Option) (*Gateway, error) {
	if limiter == nil {
		return nil, errors.New("request limiter is required")
	}
	if failures == nil {
		return nil, errors.New("failure tracker is required")
	}
	g := &Gateway{
		limiter:  limiter,
		failures: failures,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Evaluate returns the admission decision for one request. First match wins:
//  1. auth class with an active lockout delay: reject for that delay
//  2. rate limit bucket full: reject for the window length
//  3. admit, carrying quota metadata for response headers
func (g *Gateway) Evaluate(ctx context.Context, clientID string, class models.EndpointClass, now time.Time) (*models.Decision, error) {
	if class.IsAuth() {
		delay, err := g.failures.CurrentDelay(ctx, clientID, now)
		if err != nil {
			return nil, err
		}
		if delay > 0 {
			g.metrics.RecordDecision(class.String(), "locked_out")
			d := &models.Decision{
				Class:      class,
				Reason:     models.RejectLockout,
				RetryAfter: delay,
			}
			g.auditReject(ctx, clientID, d)
			return d, nil
		}
	}

	result, err := g.limiter.Admit(ctx, clientID, class, now)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		g.metrics.RecordDecision(class.String(), "rate_limited")
		d := &models.Decision{
			Class:      class,
			Reason:     models.RejectRateLimit,
			RetryAfter: result.RetryAfter,
			Limit:      result.Limit,
			Remaining:  0,
			ResetAt:    result.ResetAt,
		}
		g.auditReject(ctx, clientID, d)
		return d, nil
	}

	g.metrics.RecordDecision(class.String(), "admitted")
	return &models.Decision{
		Admitted:  true,
		Class:     class,
		Limit:     result.Limit,
		Remaining: result.Remaining,
		ResetAt:   result.ResetAt,
	}, nil
}

// Observe feeds a completed request's status back into the failure tracker.
// Only credential and validation failures on auth endpoints count; requests
// the gateway itself rejected never reach here.
func (g *Gateway) Observe(ctx context.Context, clientID string, class models.EndpointClass, status int, now time.Time) error {
	if !class.IsAuth() || !IsCredentialFailure(status) {
		return nil
	}
	count, err := g.failures.RecordFailure(ctx, clientID, now)
	if err != nil {
		return err
	}
	g.metrics.IncrementAuthFailures(class.String())
	g.auditor.Log(ctx, audit.SecurityEvent{
		Action:   audit.ActionAuthFailureRecorded,
		ClientID: clientID,
		Endpoint: class.String(),
		Reason:   http.StatusText(status),
	})
	g.logger.DebugContext(ctx, "auth failure recorded", "endpoint_class", class, "failures_in_window", count)
	return nil
}

// IsCredentialFailure reports whether status is a client error in the
// credential/validation class.
func IsCredentialFailure(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	default:
		return false
	}
}

func (g *Gateway) auditReject(ctx context.Context, clientID string, d *models.Decision) {
	action := audit.ActionRateLimitExceeded
	if d.Reason == models.RejectLockout {
		action = audit.ActionLockoutActive
	}
	g.auditor.Log(ctx, audit.SecurityEvent{
		Action:     action,
		ClientID:   clientID,
		Endpoint:   d.Class.String(),
		Reason:     string(d.Reason),
		RetryAfter: d.RetryAfter,
	})
}
