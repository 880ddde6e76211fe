package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/httputil"
	"leetcoach/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// UserChecker confirms that the token's subject still has an account.
type UserChecker interface {
	UserExists(ctx context.Context, userID id.UserID) (bool, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	UserID   string
	Username string
}

// principalResult represents the outcome of an account existence check.
type principalResult int

const (
	principalOK      principalResult = iota // Account exists
	principalMissing                        // Account was deleted or never existed
	principalError                          // Lookup failed
)

func checkPrincipal(ctx context.Context, checker UserChecker, userID id.UserID, logger *slog.Logger) principalResult {
	if checker == nil {
		return principalOK
	}

	exists, err := checker.UserExists(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to look up token subject",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return principalError
	}
	if !exists {
		logger.WarnContext(ctx, "unauthorized access - unknown user",
			"user_id", userID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return principalMissing
	}
	return principalOK
}

func parseClaims(claims *JWTClaims) (id.UserID, error) {
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return id.UserID{}, fmt.Errorf("invalid user_id: %w", err)
	}
	if claims.Username == "" {
		return id.UserID{}, fmt.Errorf("missing subject")
	}
	return userID, nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, msg))
}

// RequireAuth returns middleware that validates bearer tokens and stores the
// authenticated user in the request context. checker may be nil.
func RequireAuth(validator JWTValidator, checker UserChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := parseClaims(claims)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - malformed token claims",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			switch checkPrincipal(ctx, checker, userID, logger) {
			case principalMissing:
				unauthorized(w, "User not found")
				return
			case principalError:
				httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "Failed to validate token"))
				return
			}

			ctx = requestcontext.WithUser(ctx, userID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
