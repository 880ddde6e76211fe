// Package service issues and redeems single-use arithmetic challenges.
//
// A challenge is consumed by the first Verify that names it, whether or not
// the answer is right, so a token can never be replayed.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"leetcoach/internal/captcha/metrics"
	"leetcoach/internal/captcha/models"
	"leetcoach/internal/captcha/ports"
	"leetcoach/internal/sentinel"
	domain "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/audit"
	"leetcoach/pkg/requestcontext"
)

const (
	// DefaultTTL is how long an issued challenge stays redeemable.
	DefaultTTL = 5 * time.Minute

	minOperand = 1
	maxOperand = 12
)

type Service struct {
	store   ports.ChallengeStore
	ttl     time.Duration
	logger  *slog.Logger
	auditor *audit.Logger
	metrics *metrics.Metrics

	randMu sync.Mutex
	rand   *rand.Rand
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithAuditLogger(auditor *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRandSource makes question generation deterministic.
func WithRandSource(src rand.Source) Option {
	return func(s *Service) {
		s.rand = rand.New(src)
	}
}

func New(store ports.ChallengeStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("challenge store is required")
	}
	s := &Service{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates and stores a new challenge expiring ttl after now.
func (s *Service) Issue(ctx context.Context, now time.Time) (*models.Challenge, error) {
	question, answer := s.nextQuestion()
	challenge := &models.Challenge{
		ID:        domain.NewChallengeID().String(),
		Question:  question,
		Answer:    answer,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, challenge); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue captcha")
	}
	s.metrics.IncrementIssued()
	return challenge, nil
}

// Verify redeems the challenge id with answer. Unknown, expired and wrong
// answers all return false; only store failures return an error.
func (s *Service) Verify(ctx context.Context, id, answer string, now time.Time) (bool, error) {
	if id == "" {
		s.recordOutcome(ctx, models.OutcomeUnknown)
		return false, nil
	}

	challenge, err := s.store.Take(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordOutcome(ctx, models.OutcomeUnknown)
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify captcha")
	}

	if challenge.IsExpired(now) {
		s.recordOutcome(ctx, models.OutcomeExpired)
		return false, nil
	}
	if NormalizeAnswer(answer) != strings.ToLower(challenge.Answer) {
		s.recordOutcome(ctx, models.OutcomeWrongAnswer)
		return false, nil
	}

	s.recordOutcome(ctx, models.OutcomeSolved)
	return true, nil
}

// SweepExpired deletes challenges whose expiry is before now.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := s.store.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired challenges: %w", err)
	}
	s.metrics.AddSwept(n)
	return n, nil
}

// NormalizeAnswer trims and lowercases a submitted answer.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// Arithmetic renders the question and answer for a op b. Subtraction always
// puts the larger operand first so answers are never negative.
func Arithmetic(a, b int, op byte) (question, answer string) {
	if op == '-' {
		if a < b {
			a, b = b, a
		}
		return fmt.Sprintf("What is %d - %d?", a, b), strconv.Itoa(a - b)
	}
	return fmt.Sprintf("What is %d + %d?", a, b), strconv.Itoa(a + b)
}

func (s *Service) nextQuestion() (string, string) {
	s.randMu.Lock()
	a := minOperand + s.rand.IntN(maxOperand-minOperand+1)
	b := minOperand + s.rand.IntN(maxOperand-minOperand+1)
	op := byte('+')
	if s.rand.IntN(2) == 1 {
		op = '-'
	}
	s.randMu.Unlock()
	return Arithmetic(a, b, op)
}

func (s *Service) recordOutcome(ctx context.Context, outcome models.VerifyOutcome) {
	s.metrics.IncrementVerification(string(outcome))
	if outcome == models.OutcomeSolved {
		return
	}
	s.logger.DebugContext(ctx, "captcha verification failed", "outcome", string(outcome))
	s.auditor.Log(ctx, audit.SecurityEvent{
		Action:   audit.ActionCaptchaFailed,
		ClientID: requestcontext.ClientIP(ctx),
		Reason:   string(outcome),
	})
}
