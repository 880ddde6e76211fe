package jwttoken

import (
	"context"
	"testing"
	"time"

	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/requestcontext"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userID   = id.NewUserID()
	issuedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tokenTTL = time.Hour
)

func newTestService(now *time.Time) *JWTService {
	return NewJWTService("test-signing-key-with-32-bytes!!", "leetcoach", tokenTTL,
		WithClock(func() time.Time { return *now }),
	)
}

func Test_GenerateAccessToken(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)
	ctx := requestcontext.WithTime(context.Background(), issuedAt)

	token, err := svc.GenerateAccessToken(ctx, userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "leetcoach", claims.Issuer)
	assert.Equal(t, issuedAt.Add(tokenTTL), claims.ExpiresAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func Test_GenerateAccessToken_RejectsEmptyUsername(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)

	_, err := svc.GenerateAccessToken(context.Background(), userID, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func Test_GenerateAccessTokenWithTTL_RejectsNonPositiveTTL(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)

	_, err := svc.GenerateAccessTokenWithTTL(context.Background(), userID, "alice", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl must be positive")
}

func Test_ValidateToken_Expired(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)
	ctx := requestcontext.WithTime(context.Background(), issuedAt)

	token, err := svc.GenerateAccessToken(ctx, userID, "alice")
	require.NoError(t, err)

	now = issuedAt.Add(tokenTTL + time.Second)
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "token expired")
}

func Test_ValidateToken_Invalid(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)

	_, err := svc.ValidateToken("invalid-token-string")
	require.ErrorContains(t, err, "invalid token")

	_, err = svc.ValidateToken("")
	require.ErrorContains(t, err, "empty token")
}

func Test_ValidateToken_RejectsWrongKeyAndIssuer(t *testing.T) {
	now := issuedAt
	ctx := requestcontext.WithTime(context.Background(), issuedAt)
	svc := newTestService(&now)

	other := NewJWTService("another-signing-key-with-32-byte", "leetcoach", tokenTTL,
		WithClock(func() time.Time { return now }))
	token, err := other.GenerateAccessToken(ctx, userID, "alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	foreign := NewJWTService("test-signing-key-with-32-bytes!!", "someone-else", tokenTTL,
		WithClock(func() time.Time { return now }))
	token, err = foreign.GenerateAccessToken(ctx, userID, "alice")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_RejectsAlgorithmConfusion(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)
	claims := AccessTokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    "leetcoach",
		},
	}

	cases := []struct {
		name       string
		signMethod jwt.SigningMethod
		signKey    any
	}{
		{
			name:       "hs512 header rejected",
			signMethod: jwt.SigningMethodHS512,
			signKey:    []byte("test-signing-key-with-32-bytes!!"),
		},
		{
			name:       "alg none rejected",
			signMethod: jwt.SigningMethodNone,
			signKey:    jwt.UnsafeAllowNoneSignatureType,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			token := jwt.NewWithClaims(tt.signMethod, claims)
			tokenString, err := token.SignedString(tt.signKey)
			require.NoError(t, err)

			_, err = svc.ValidateToken(tokenString)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func Test_JWTServiceAdapter(t *testing.T) {
	now := issuedAt
	svc := newTestService(&now)
	ctx := requestcontext.WithTime(context.Background(), issuedAt)
	token, err := svc.GenerateAccessToken(ctx, userID, "alice")
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(svc).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}
