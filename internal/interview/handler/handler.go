package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leetcoach/internal/interview/models"
	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/httputil"
	"leetcoach/pkg/requestcontext"
)

type Service interface {
	Clarify(ctx context.Context, userID id.UserID, req *models.ClarifyRequest) (*models.StageResponse, error)
	BruteForce(ctx context.Context, userID id.UserID, req *models.StageRequest) (*models.StageResponse, error)
	Optimize(ctx context.Context, userID id.UserID, req *models.StageRequest) (*models.StageResponse, error)
	Review(ctx context.Context, userID id.UserID, req *models.CodeReviewRequest) (*models.ReviewResponse, error)
	FunctionDefinition(ctx context.Context, req *models.FunctionDefinitionRequest) (*models.FunctionDefinitionResponse, error)
	GetSession(ctx context.Context, userID id.UserID, questionID id.QuestionID) (*models.SessionResponse, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the stage routes. They need an authenticated user, so
// mount them behind the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/clarify", h.HandleClarify)
	r.Post("/api/brute-force", h.HandleBruteForce)
	r.Post("/api/optimize", h.HandleOptimize)
	r.Post("/api/code-review", h.HandleCodeReview)
	r.Get("/api/sessions/{questionID}", h.HandleGetSession)
}

// RegisterPublic registers routes that work without a session.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/api/function-definition", h.HandleFunctionDefinition)
}

// HandleClarify implements POST /api/clarify.
//
// Input: { "question_id": 1, "user_input": "Can the array be empty?" }
// Output: { "agent": "ClarificationAgent", "response": "..." }
func (h *Handler) HandleClarify(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ClarifyRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.service.Clarify(r.Context(), userID, req)
	h.respond(w, r, "clarify", res, err)
}

// HandleBruteForce implements POST /api/brute-force.
//
// Input: { "question_id": 1, "user_idea": "...", "time_complexity": "O(n^2)", "space_complexity": "O(1)" }
func (h *Handler) HandleBruteForce(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.StageRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.service.BruteForce(r.Context(), userID, req)
	h.respond(w, r, "brute_force", res, err)
}

// HandleOptimize implements POST /api/optimize. Same body as brute force.
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.StageRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.service.Optimize(r.Context(), userID, req)
	h.respond(w, r, "optimize", res, err)
}

// HandleCodeReview implements POST /api/code-review.
//
// Input: { "question_id": 1, "code": "...", "language": "python", ...optional earlier stages }
// Output: { "agent": "CodeReviewAgent", "review": {...}, "actual_solution": "..." }
func (h *Handler) HandleCodeReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CodeReviewRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.service.Review(r.Context(), userID, req)
	h.respond(w, r, "code_review", res, err)
}

// HandleFunctionDefinition implements POST /api/function-definition.
//
// Input: { "question_id": 1, "language": "go" }
// Output: { "function_definition": "func twoSum(nums []int, target int) []int {}" }
func (h *Handler) HandleFunctionDefinition(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[models.FunctionDefinitionRequest](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.service.FunctionDefinition(r.Context(), req)
	h.respond(w, r, "function_definition", res, err)
}

// HandleGetSession implements GET /api/sessions/{questionID}.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	questionID, err := id.ParseQuestionID(chi.URLParam(r, "questionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := h.service.GetSession(r.Context(), userID, questionID)
	h.respond(w, r, "get_session", res, err)
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	userID, ok := requestcontext.UserID(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Not authenticated"))
		return id.UserID{}, false
	}
	return userID, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, res any, err error) {
	if err != nil {
		var domainErr *dErrors.Error
		if !errors.As(err, &domainErr) || domainErr.Code == dErrors.CodeInternal {
			ctx := r.Context()
			h.logger.ErrorContext(ctx, "interview request failed",
				"op", op,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
