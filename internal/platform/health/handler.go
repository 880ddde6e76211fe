// Package health serves the liveness, readiness and status probes.
package health

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"leetcoach/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// Handler serves /health, /health/live and /health/ready.
//
// Readiness runs every registered check concurrently, each under its own
// deadline, and answers 503 if any of them fails. The status probe also lists
// which backend serves each concern (for example "buckets": "redis") so an
// operator can tell at a glance whether the process fell back to memory.
type Handler struct {
	clock       func() time.Time
	startTime   time.Time
	environment string

	mu       sync.RWMutex
	checks   map[string]CheckFunc
	backends map[string]string
}

func New(environment string) *Handler {
	return NewWithClock(environment, time.Now)
}

func NewWithClock(environment string, clock func() time.Time) *Handler {
	return &Handler{
		clock:       clock,
		startTime:   clock(),
		environment: environment,
		checks:      make(map[string]CheckFunc),
		backends:    make(map[string]string),
	}
}

// RegisterCheck adds a named dependency to the readiness probe.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// SetBackend records the backend kind chosen for a concern.
func (h *Handler) SetBackend(concern, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.backends[concern] = kind
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := maps.Clone(h.checks)
	h.mu.RUnlock()

	results := h.runChecks(r.Context(), checks)

	resp := ReadinessResponse{Status: "ready", Checks: results}
	status := http.StatusOK
	for _, result := range results {
		if result != "up" {
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			break
		}
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) runChecks(ctx context.Context, checks map[string]CheckFunc) map[string]string {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(checks))
	)
	for name, check := range checks {
		wg.Go(func() {
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()

			result := "up"
			if err := check(checkCtx); err != nil {
				result = "down: " + err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
		})
	}
	wg.Wait()
	return results
}

type StatusResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Environment   string            `json:"environment"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Timestamp     string            `json:"timestamp"`
	Backends      map[string]string `json:"backends,omitempty"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	backends := maps.Clone(h.backends)
	h.mu.RUnlock()

	now := h.clock()
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(now.Sub(h.startTime).Seconds()),
		Timestamp:     now.UTC().Format(time.RFC3339),
		Backends:      backends,
	})
}
