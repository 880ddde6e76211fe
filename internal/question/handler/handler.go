package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leetcoach/internal/question/models"
	"leetcoach/internal/sentinel"
	id "leetcoach/pkg/domain"
	dErrors "leetcoach/pkg/domain-errors"
	"leetcoach/pkg/platform/httputil"
	"leetcoach/pkg/requestcontext"
)

// Catalog is the read side of the question bank.
type Catalog interface {
	List() []models.Summary
	Resolve(questionID id.QuestionID) (*models.Question, error)
}

type Handler struct {
	catalog Catalog
	logger  *slog.Logger
}

func New(catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register registers the public question routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/questions", h.HandleList)
	r.Post("/api/start-session", h.HandleStartSession)
}

// HandleList implements GET /api/questions.
//
// Output: [ { "id": 1, "title": "Two Sum" }, ... ]
func (h *Handler) HandleList(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog.List())
}

// HandleStartSession implements POST /api/start-session.
//
// Input: { "question_id": 1 }   (omitted or 0 selects the first question)
// Output: { "question": { "id", "title", "description", "examples", "constraints" } }
func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.StartSessionRequest](w, r, h.logger)
	if !ok {
		return
	}

	q, err := h.catalog.Resolve(id.QuestionID(req.QuestionID))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Question with ID %d not found", req.QuestionID)))
			return
		}
		h.logger.ErrorContext(ctx, "failed to resolve question",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.StartSessionResponse{Question: q})
}
