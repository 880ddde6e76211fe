package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leetcoach/internal/captcha/models"
	"leetcoach/pkg/platform/httputil"
	"leetcoach/pkg/requestcontext"
)

// Service defines the challenge operations exposed over HTTP.
type Service interface {
	Issue(ctx context.Context, now time.Time) (*models.Challenge, error)
	Verify(ctx context.Context, id, answer string, now time.Time) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type Handler struct {
	captcha Service
	logger  *slog.Logger
}

func New(captcha Service, logger *slog.Logger) *Handler {
	return &Handler{captcha: captcha, logger: logger}
}

// Register registers the captcha routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/captcha", h.HandleIssue)
	r.Post("/api/captcha/test", h.HandleTest)
}

// HandleIssue implements POST /api/captcha.
// Expired challenges are swept before a new one is issued.
//
// Output: { "captcha_id": "...", "question": "What is 7 + 5?", "captcha_image": "" }
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := requestcontext.Now(ctx)

	if _, err := h.captcha.SweepExpired(ctx, now); err != nil {
		h.logger.WarnContext(ctx, "failed to sweep expired captchas",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}

	challenge, err := h.captcha.Issue(ctx, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue captcha",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.IssueResponse{
		CaptchaID:    challenge.ID,
		Question:     challenge.Question,
		CaptchaImage: "",
	})
}

// HandleTest implements POST /api/captcha/test. It redeems the challenge, so
// a tested token cannot be used again.
//
// Input: { "captcha_id": "...", "captcha_answer": "12" }
// Output: { "success": true }
func (h *Handler) HandleTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.TestRequest](w, r, h.logger)
	if !ok {
		return
	}
	if !req.IsComplete() {
		httputil.WriteJSON(w, http.StatusOK, &models.TestResponse{
			Success: false,
			Error:   "Missing captcha_id or answer",
		})
		return
	}

	solved, err := h.captcha.Verify(ctx, req.CaptchaID, *req.CaptchaAnswer, requestcontext.Now(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to verify captcha",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.TestResponse{Success: solved})
}
