package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"leetcoach/internal/ratelimit/metrics"
	"leetcoach/internal/ratelimit/models"
	"leetcoach/pkg/platform/httputil"
)

const overloadRetrySeconds = 1

// GlobalThrottle caps process-wide admissions with a token bucket before any
// per-client evaluation runs. perSecond <= 0 disables it.
func GlobalThrottle(perSecond float64, burst int, m *metrics.Metrics) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = max(1, int(perSecond))
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				m.IncrementGlobalThrottled()
				writeServiceOverloaded(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeServiceOverloaded(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	httputil.WriteJSON(w, http.StatusServiceUnavailable, &models.ServiceOverloadedResponse{
		Error:      "service_unavailable",
		Message:    "Service is temporarily overloaded. Please try again later.",
		RetryAfter: overloadRetrySeconds,
	})
}
