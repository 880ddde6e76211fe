// Package requestlimit provides per-client, per-endpoint-class rate limiting.
//
// This is the sliding window limiter consulted by the abuse gateway on every
// request. Limits come from config.Config and are applied to the bucket keyed
// by (client, endpoint class).
//
// Usage:
//
//	svc, _ := requestlimit.New(bucketStore)
//	result, _ := svc.Admit(ctx, clientIP, models.ClassLogin, now)
//	if !result.Allowed {
//	    // Return 429 Too Many Requests
//	}
package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leetcoach/internal/ratelimit/config"
	"leetcoach/internal/ratelimit/models"
	"leetcoach/internal/ratelimit/ports"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/privacy"
)

// Service enforces per-client rate limits using sliding window counters.
// Thread-safe for concurrent use by HTTP middleware.
type Service struct {
	buckets ports.BucketStore
	logger  *slog.Logger
	config  *config.Config
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger sets the structured logger for debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConfig overrides the default rate limit configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a rate limiting service with the given store and options.
// Returns an error if the store is nil.
func New(buckets ports.BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		logger:  slog.New(slog.DiscardHandler),
		config:  config.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Admit records one request from clientID against the bucket for class at now.
// The returned result carries Remaining and ResetAt for response headers, or
// RetryAfter (the window length) when the quota is exhausted.
func (s *Service) Admit(ctx context.Context, clientID string, class models.EndpointClass, now time.Time) (*models.RateLimitResult, error) {
	limit, ok := s.config.GetLimit(class)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "no rate limit configured for "+class.String())
	}

	key := models.NewRateLimitKey(clientID, class)
	result, err := s.buckets.Allow(ctx, key.String(), limit.RequestsPerWindow, limit.Window, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	if !result.Allowed {
		s.logger.DebugContext(ctx, "rate limit bucket full",
			"client", privacy.AnonymizeIP(clientID),
			"endpoint_class", class,
			"limit", limit.RequestsPerWindow,
			"window_seconds", int(limit.Window.Seconds()),
		)
	}
	return result, nil
}

// Window returns the configured window for class.
func (s *Service) Window(class models.EndpointClass) time.Duration {
	limit, _ := s.config.GetLimit(class)
	return limit.Window
}
