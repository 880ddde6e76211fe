package cleanup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leetcoach/internal/ratelimit/metrics"
)

// CleanupResult contains the results of a cleanup run.
type CleanupResult struct {
	BucketsRemoved    int           // Rate limit buckets with no in-window timestamps
	FailuresRemoved   int           // Failure records that aged out of the lockout window
	ChallengesRemoved int           // Expired challenge tokens
	Duration          time.Duration // Time taken for cleanup run
}

// WindowSweeper drops entries with nothing left inside window.
type WindowSweeper interface {
	Sweep(ctx context.Context, window time.Duration, now time.Time) (int, error)
}

// ChallengeSweeper drops challenge tokens past their expiry.
type ChallengeSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source; tests use it to sweep at fixed instants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service periodically reclaims memory held by expired abuse-tracking state.
// Every store already prunes lazily on access, so a sweep never changes an
// admission decision.
type Service struct {
	buckets      WindowSweeper
	bucketWindow time.Duration
	failures     WindowSweeper
	lockWindow   time.Duration
	challenges   ChallengeSweeper

	logger   *slog.Logger
	interval time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New builds the worker. bucketWindow must be the longest configured rate
// limit window and lockWindow the failure window.
func New(buckets WindowSweeper, bucketWindow time.Duration, failures WindowSweeper, lockWindow time.Duration, challenges ChallengeSweeper, opts ...Option) *Service {
	service := &Service{
		buckets:      buckets,
		bucketWindow: bucketWindow,
		failures:     failures,
		lockWindow:   lockWindow,
		challenges:   challenges,
		logger:       slog.Default(),
		interval:     time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			startTime := time.Now()
			res, err := s.RunOnce(ctx)
			duration := time.Since(startTime)
			s.metrics.ObserveCleanupDuration(duration.Seconds())

			if err != nil {
				s.logger.Error("abuse_state_cleanup_failed",
					"error", err,
					"duration_ms", duration.Milliseconds(),
				)
				s.metrics.IncrementCleanupRuns("error")
				continue
			}

			res.Duration = duration
			s.logger.Debug("abuse_state_cleanup_completed",
				"buckets_removed", res.BucketsRemoved,
				"failures_removed", res.FailuresRemoved,
				"challenges_removed", res.ChallengesRemoved,
				"duration_ms", duration.Milliseconds(),
			)
			s.metrics.AddCleanupRemoved("buckets", res.BucketsRemoved)
			s.metrics.AddCleanupRemoved("failures", res.FailuresRemoved)
			s.metrics.AddCleanupRemoved("challenges", res.ChallengesRemoved)
			s.metrics.IncrementCleanupRuns("success")

		case <-ctx.Done():
			s.logger.Info("abuse state cleanup worker stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// RunOnce executes a single cleanup run. Every sweeper runs even if an earlier
// one fails; the errors are joined. Logging is handled by the caller (Start).
func (s *Service) RunOnce(ctx context.Context) (*CleanupResult, error) {
	now := s.now()
	res := &CleanupResult{}
	var errs []error

	if s.buckets != nil {
		n, err := s.buckets.Sweep(ctx, s.bucketWindow, now)
		res.BucketsRemoved = n
		errs = append(errs, err)
	}
	if s.failures != nil {
		n, err := s.failures.Sweep(ctx, s.lockWindow, now)
		res.FailuresRemoved = n
		errs = append(errs, err)
	}
	if s.challenges != nil {
		n, err := s.challenges.SweepExpired(ctx, now)
		res.ChallengesRemoved = n
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return res, nil
}
