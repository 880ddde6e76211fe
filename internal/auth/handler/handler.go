package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leetcoach/internal/auth/models"
	"leetcoach/pkg/platform/httputil"
	"leetcoach/pkg/requestcontext"
)

// Service defines the interface for account operations.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
}

// Handler handles registration and login. Both routes sit behind the abuse
// gateway, which counts their 400/401 responses toward lockout.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register registers the account routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/register", h.HandleRegister)
	r.Post("/api/login", h.HandleLogin)
}

// HandleRegister implements POST /api/register.
//
// Input: { "username": "...", "email": "...", "password": "...", "captcha_id": "...", "captcha_answer": "..." }
// Output: { "msg": "User registered successfully" }
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger)
	if !ok {
		return
	}

	if err := h.auth.Register(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "registration rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.RegisterResponse{Msg: "User registered successfully"})
}

// HandleLogin implements POST /api/login.
//
// Input: { "username": "...", "password": "...", "captcha_id": "...", "captcha_answer": "..." }
// Output: { "access_token": "...", "token_type": "bearer" }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	res, err := h.auth.Login(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "login successful",
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, res)
}
