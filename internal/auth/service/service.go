// Package service implements account registration and password login.
//
// Both operations redeem a captcha before anything else is looked at, so a
// request with a bad captcha learns nothing about which usernames exist.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"leetcoach/internal/auth/device"
	"leetcoach/internal/auth/metrics"
	"leetcoach/internal/auth/models"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/audit"
	"leetcoach/pkg/requestcontext"
)

const (
	msgInvalidCaptcha     = "Invalid CAPTCHA answer"
	msgInvalidCredentials = "Invalid credentials"
	msgAlreadyRegistered  = "Username or email already registered"

	TokenTypeBearer = "bearer"
)

// UserStore defines the persistence interface for accounts.
// Error Contract: Find methods return sentinel.ErrNotFound when the user doesn't
// exist; Create returns sentinel.ErrAlreadyExists on a username or email clash.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// CaptchaVerifier redeems a challenge. The token is consumed either way.
type CaptchaVerifier interface {
	Verify(ctx context.Context, id, answer string, now time.Time) (bool, error)
}

type TokenGenerator interface {
	GenerateAccessToken(ctx context.Context, userID id.UserID, username string) (string, error)
}

type Service struct {
	users      UserStore
	captcha    CaptchaVerifier
	tokens     TokenGenerator
	logger     *slog.Logger
	auditor    *audit.Logger
	metrics    *metrics.Metrics
	bcryptCost int
	dummyHash  []byte
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
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

// WithBcryptCost overrides bcrypt.DefaultCost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func New(users UserStore, captcha CaptchaVerifier, tokens TokenGenerator, opts ...Option) (*Service, error) {
	if users == nil || captcha == nil || tokens == nil {
		return nil, errors.New("users, captcha and tokens are required")
	}
	s := &Service{
		users:      users,
		captcha:    captcha,
		tokens:     tokens,
		logger:     slog.Default(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Unknown usernames are compared against this hash so both failure paths
	// spend the same bcrypt time.
	dummy, err := bcrypt.GenerateFromPassword([]byte("leetcoach-unknown-user"), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare password hasher: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// Register creates an account after the captcha is redeemed and the fields validate.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) error {
	now := requestcontext.Now(ctx)
	if err := s.verifyCaptcha(ctx, req.CaptchaProof, now); err != nil {
		return err
	}
	if err := req.ValidateAccount(); err != nil {
		return err
	}

	email := strings.ToLower(req.Email)
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, email)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed")
	}
	if exists {
		return dErrors.New(dErrors.CodeBadRequest, msgAlreadyRegistered)
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	s.metrics.ObservePasswordHash(time.Since(start).Seconds())
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed")
	}

	user := models.NewUser(req.Username, email, string(hash), now)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return dErrors.New(dErrors.CodeBadRequest, msgAlreadyRegistered)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Registration failed")
	}

	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.audit(ctx, audit.ActionUserRegistered, user.Username, "")
	return nil
}

// Login checks the captcha, then the credentials, and returns a bearer token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	now := requestcontext.Now(ctx)
	if err := s.verifyCaptcha(ctx, req.CaptchaProof, now); err != nil {
		s.metrics.IncrementLoginAttempt("invalid_captcha")
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Login failed")
	}

	hash := s.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	start := time.Now()
	mismatch := bcrypt.CompareHashAndPassword(hash, []byte(req.Password))
	s.metrics.ObservePasswordHash(time.Since(start).Seconds())

	if user == nil || mismatch != nil {
		reason := "wrong_password"
		if user == nil {
			reason = "unknown_user"
		}
		s.metrics.IncrementLoginAttempt("invalid_credentials")
		s.audit(ctx, audit.ActionLoginFailed, req.Username, reason)
		return nil, dErrors.New(dErrors.CodeUnauthorized, msgInvalidCredentials)
	}

	token, err := s.tokens.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Login failed")
	}

	s.metrics.IncrementLoginAttempt("success")
	s.audit(ctx, audit.ActionLoginSucceeded, user.Username, "")
	return &models.TokenResponse{AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// UserExists satisfies the bearer middleware's account check.
func (s *Service) UserExists(ctx context.Context, userID id.UserID) (bool, error) {
	_, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) verifyCaptcha(ctx context.Context, proof models.CaptchaProof, now time.Time) error {
	ok, err := s.captcha.Verify(ctx, proof.CaptchaID, proof.CaptchaAnswer, now)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, msgInvalidCaptcha)
	}
	return nil
}

func (s *Service) audit(ctx context.Context, action audit.Action, username, reason string) {
	userAgent := requestcontext.UserAgent(ctx)
	s.auditor.Log(ctx, audit.SecurityEvent{
		Action:    action,
		ClientID:  requestcontext.ClientIP(ctx),
		Username:  username,
		Reason:    reason,
		UserAgent: userAgent,
		Device:    device.Label(userAgent),
	})
}
