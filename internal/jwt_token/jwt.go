package jwttoken

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/requestcontext"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the JWT claims for bearer tokens.
// Subject carries the username so clients can display it without a lookup.
type AccessTokenClaims struct {
	UserID string `json:"uid"`
	Env    string `json:"env,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
	env        string
	clock      func() time.Time
}

type Option func(*JWTService)

// WithClock overrides the clock used for expiry validation.
func WithClock(clock func() time.Time) Option {
	return func(s *JWTService) {
		s.clock = clock
	}
}

func WithEnv(env string) Option {
	return func(s *JWTService) {
		s.env = env
	}
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration, opts ...Option) *JWTService {
	s := &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL reports the configured token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.tokenTTL
}

// GenerateAccessToken mints an HS256 token for the user. The issue time is
// taken from the request context so handlers and tests share one clock.
func (s *JWTService) GenerateAccessToken(ctx context.Context, userID id.UserID, username string) (string, error) {
	return s.GenerateAccessTokenWithTTL(ctx, userID, username, s.tokenTTL)
}

func (s *JWTService) GenerateAccessTokenWithTTL(ctx context.Context, userID id.UserID, username string, ttl time.Duration) (string, error) {
	if username == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "username cannot be empty")
	}
	if ttl <= 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "token ttl must be positive")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	now := requestcontext.Now(ctx)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessTokenClaims{
		UserID: userID.String(),
		Env:    s.env,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        hex.EncodeToString(b),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*AccessTokenClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*AccessTokenClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}
