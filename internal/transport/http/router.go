package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leetcoach/pkg/platform/middleware/metadata"
	request "leetcoach/pkg/platform/middleware/request"
	"leetcoach/pkg/platform/middleware/requesttime"
	"leetcoach/pkg/platform/validation"
)

// DefaultRequestTimeout leaves headroom over the feedback timeout so a slow
// upstream surfaces as a typed 503 from the service, not a generic timeout.
const DefaultRequestTimeout = 45 * time.Second

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Handlers groups the module handlers the router mounts.
type Handlers struct {
	Health    Registrar
	Captcha   Registrar
	Auth      Registrar
	Questions Registrar
	// Public interview routes (function definition) are mounted without auth.
	InterviewPublic Registrar
	// Interview stage routes need an authenticated user.
	Interview Registrar
}

// Config carries the cross-cutting HTTP settings.
type Config struct {
	AllowedOrigins []string
	Metadata       *metadata.Middleware
	RequestTimeout time.Duration
	Metrics        *request.Metrics
	// Throttle runs first inside the API group; nil disables it.
	Throttle func(http.Handler) http.Handler
	// RateLimit applies the abuse gateway; nil disables it.
	RateLimit func(http.Handler) http.Handler
	// RequireAuth guards the interview stage routes.
	RequireAuth func(http.Handler) http.Handler
	// Clock overrides the request time, for tests.
	Clock func() time.Time
}

// NewRouter wires all endpoints with middleware.
//
// Health probes and /metrics bypass the throttle and the abuse gateway so
// that orchestration keeps working while clients are being limited.
func NewRouter(h Handlers, cfg Config, logger *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Metadata == nil {
		cfg.Metadata = metadata.NewMiddleware(metadata.Config{})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(requesttime.MiddlewareWithClock(clock))
	r.Use(cfg.Metadata.Handler)
	r.Use(request.SecurityHeaders)
	r.Use(request.CORS(cfg.AllowedOrigins))
	r.Use(request.Logger(logger))
	r.Use(request.LatencyMiddleware(cfg.Metrics))

	if h.Health != nil {
		h.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(request.BodyLimit(validation.MaxBodySize))
		api.Use(request.ContentTypeJSON)
		if cfg.Throttle != nil {
			api.Use(cfg.Throttle)
		}
		if cfg.RateLimit != nil {
			api.Use(cfg.RateLimit)
		}
		api.Use(request.Timeout(cfg.RequestTimeout))

		for _, reg := range []Registrar{h.Captcha, h.Auth, h.Questions, h.InterviewPublic} {
			if reg != nil {
				reg.Register(api)
			}
		}

		if h.Interview != nil {
			api.Group(func(protected chi.Router) {
				if cfg.RequireAuth != nil {
					protected.Use(cfg.RequireAuth)
				}
				h.Interview.Register(protected)
			})
		}
	})

	return r
}

// registrarFunc adapts a plain function to Registrar.
type registrarFunc func(r chi.Router)

func (f registrarFunc) Register(r chi.Router) { f(r) }

// RegisterWith adapts a method value such as h.RegisterPublic to Registrar.
func RegisterWith(fn func(r chi.Router)) Registrar {
	return registrarFunc(fn)
}
