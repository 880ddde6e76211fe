// Package service runs the interview workflow: each stage saves the
// candidate's answer to the session, then asks the feedback generator to
// respond with the accumulated session as context.
//
// Stages are not gated. A candidate may submit any stage at any time; the
// session state is derived from which answers are present.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SessionStore,QuestionCatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"leetcoach/internal/feedback"
	"leetcoach/internal/interview/metrics"
	"leetcoach/internal/interview/models"
	qmodels "leetcoach/internal/question/models"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/requestcontext"
)

const (
	// DefaultFeedbackTimeout bounds every generator call.
	DefaultFeedbackTimeout = 30 * time.Second
	// UnavailableRetryAfter is the hint sent when the generator fails.
	UnavailableRetryAfter = 30 * time.Second
)

// Stage labels for metrics and logs.
const (
	StageClarify            = "clarify"
	StageBruteForce         = "brute_force"
	StageOptimize           = "optimize"
	StageReview             = "review"
	StageFunctionDefinition = "function_definition"
)

type SessionStore interface {
	Upsert(ctx context.Context, key models.Key, patch models.Patch, now time.Time) (*models.Session, error)
	Get(ctx context.Context, key models.Key) (*models.Session, error)
}

type QuestionCatalog interface {
	Get(questionID id.QuestionID) (*qmodels.Question, error)
	Resolve(questionID id.QuestionID) (*qmodels.Question, error)
}

type Service struct {
	sessions  SessionStore
	questions QuestionCatalog
	generator feedback.Generator
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(sessions SessionStore, questions QuestionCatalog, generator feedback.Generator, opts ...Option) *Service {
	s := &Service{
		sessions:  sessions,
		questions: questions,
		generator: generator,
		timeout:   DefaultFeedbackTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSession returns the caller's session for a question.
func (s *Service) GetSession(ctx context.Context, userID id.UserID, questionID id.QuestionID) (*models.SessionResponse, error) {
	session, err := s.sessions.Get(ctx, models.Key{UserID: userID, QuestionID: questionID})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("No session for question %d", int(questionID)))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	return models.NewSessionResponse(session), nil
}

// question looks up a stage's question; stages never fall back to a default.
func (s *Service) question(questionID int) (*qmodels.Question, error) {
	q, err := s.questions.Get(id.QuestionID(questionID))
	if err != nil {
		return nil, s.questionError(questionID, err)
	}
	return q, nil
}

func (s *Service) questionError(questionID int, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Question with ID %d not found", questionID))
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load question")
}

// save applies a stage's patch. The write stands even if feedback
// generation later fails.
func (s *Service) save(ctx context.Context, userID id.UserID, questionID int, patch models.Patch) (*models.Session, error) {
	start := time.Now()
	session, err := s.sessions.Upsert(ctx, models.Key{UserID: userID, QuestionID: id.QuestionID(questionID)}, patch, requestcontext.Now(ctx))
	s.metrics.ObserveUpsertDuration(time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
	return session, nil
}

// generate runs one bounded generator call.
func (s *Service) generate(ctx context.Context, prompt feedback.Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.generator.Generate(ctx, prompt)
}

// unavailable converts any generator failure into the retryable 503 the
// client sees, logging the cause.
func (s *Service) unavailable(ctx context.Context, stage string, err error) error {
	s.metrics.RecordSubmission(stage, "unavailable")
	s.logger.WarnContext(ctx, "feedback generation failed",
		"stage", stage,
		"error", err,
		"timeout", errors.Is(err, feedback.ErrTimeout) || errors.Is(err, context.DeadlineExceeded),
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.NewRetryable(dErrors.CodeUnavailable,
		"Feedback service is temporarily unavailable, please retry", UnavailableRetryAfter, err)
}

func (s *Service) failed(stage string, err error) error {
	s.metrics.RecordSubmission(stage, "error")
	return err
}
