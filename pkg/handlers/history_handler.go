package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/auth"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/services"
)

// HistoryResponse for GET /api/history
type HistoryResponse struct {
	Verdicts []*models.Verdict `json:"verdicts"`
	Total    int               `json:"total"`
}

// HistoryHandler serves a user's past verdicts.
type HistoryHandler struct {
	verdictService services.VerdictService
	logger         *zap.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(verdictService services.VerdictService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		verdictService: verdictService,
		logger:         logger,
	}
}

// RegisterRoutes registers the history handler's routes on the given mux.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/history", authMiddleware.RequireAuth(h.List))
}

// List handles GET /api/history. Verdicts are returned most recent
// first for the authenticated caller.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	verdicts, err := h.verdictService.History(r.Context(), userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Error("Failed to list history",
			zap.String("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, status, err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := HistoryResponse{
		Verdicts: verdicts,
		Total:    len(verdicts),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
