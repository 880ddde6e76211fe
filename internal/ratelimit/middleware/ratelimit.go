package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"leetcoach/internal/ratelimit/models"
	"leetcoach/pkg/platform/httputil"
	request "leetcoach/pkg/platform/middleware/request"
	"leetcoach/pkg/platform/privacy"
	"leetcoach/pkg/requestcontext"
)

// Gateway is the admission decision the middleware enforces.
type Gateway interface {
	Evaluate(ctx context.Context, clientID string, class models.EndpointClass, now time.Time) (*models.Decision, error)
	Observe(ctx context.Context, clientID string, class models.EndpointClass, status int, now time.Time) error
}

type Middleware struct {
	gateway Gateway
	logger  *slog.Logger
}

func New(gateway Gateway, logger *slog.Logger) *Middleware {
	return &Middleware{
		gateway: gateway,
		logger:  logger,
	}
}

// RateLimit classifies each request by path, consults the gateway, and either
// rejects with 429 or runs the handler and reports its status back.
// Requires the metadata and request time middleware upstream.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		class := models.ClassifyPath(r.URL.Path)

		decision, err := m.gateway.Evaluate(ctx, ip, class, requestcontext.Now(ctx))
		if err != nil {
			// Store errors admit the request.
			m.logger.ErrorContext(ctx, "failed to evaluate rate limit", "error", err, "ip_prefix", privacy.AnonymizeIP(ip))
			next.ServeHTTP(w, r)
			return
		}

		if !decision.Admitted {
			writeRejected(w, decision)
			return
		}

		addRateLimitHeaders(w, decision)
		rec := request.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		if err := m.gateway.Observe(ctx, ip, class, rec.Status(), requestcontext.Now(ctx)); err != nil {
			m.logger.ErrorContext(ctx, "failed to record request outcome", "error", err, "ip_prefix", privacy.AnonymizeIP(ip))
		}
	})
}

// addRateLimitHeaders adds X-RateLimit-* headers to the response.
func addRateLimitHeaders(w http.ResponseWriter, d *models.Decision) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
}

func writeRejected(w http.ResponseWriter, d *models.Decision) {
	retryAfter := httputil.RetryAfterSeconds(d.RetryAfter)
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      string(d.Reason),
		Message:    d.Message(),
		RetryAfter: retryAfter,
	})
}
