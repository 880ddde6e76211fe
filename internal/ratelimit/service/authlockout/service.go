// Package authlockout escalates a delay for clients that keep failing
// authentication. Failures are counted over a rolling window and mapped to a
// delay by a step table; only the passage of time lowers the count.
package authlockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leetcoach/internal/ratelimit/config"
	"leetcoach/internal/ratelimit/models"
	"leetcoach/internal/ratelimit/ports"
	dErrors "leetcoach/pkg/domain-errors"
)

type Service struct {
	store  ports.FailureStore
	logger *slog.Logger
	config *config.LockoutConfig
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *config.LockoutConfig) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(store ports.FailureStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth lockout store is required")
	}

	defaultCfg := config.DefaultConfig().Lockout
	svc := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		config: &defaultCfg,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// RecordFailure notes one failed authentication attempt by clientID at now.
// It returns the in-window failure count including this one.
func (s *Service) RecordFailure(ctx context.Context, clientID string, now time.Time) (int, error) {
	key := models.NewFailureKey(clientID)
	count, err := s.store.RecordFailure(ctx, key.String(), s.config.WindowDuration, now)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record auth failure")
	}
	return count, nil
}

// CurrentDelay returns how long clientID must wait before its next
// authentication attempt. Zero means no lockout.
func (s *Service) CurrentDelay(ctx context.Context, clientID string, now time.Time) (time.Duration, error) {
	key := models.NewFailureKey(clientID)
	count, err := s.store.Count(ctx, key.String(), s.config.WindowDuration, now)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read auth failures")
	}
	return s.DelayFor(count), nil
}

// DelayFor maps an in-window failure count to its delay.
func (s *Service) DelayFor(failures int) time.Duration {
	return s.config.DelayFor(failures)
}

// Window returns the rolling window failures are counted over.
func (s *Service) Window() time.Duration {
	return s.config.WindowDuration
}
