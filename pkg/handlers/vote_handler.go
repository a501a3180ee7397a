package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/auth"
	"github.com/fakecheck-ai/verdict-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// VoteRequest for POST /api/checks/{id}/votes
type VoteRequest struct {
	Value   int     `json:"value"`
	Comment *string `json:"comment,omitempty"`
}

// CommentRequest for POST /api/checks/{id}/comments
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ============================================================================
// Handler
// ============================================================================

// VoteHandler handles community feedback on verdicts.
type VoteHandler struct {
	verdictService services.VerdictService
	logger         *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(verdictService services.VerdictService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		verdictService: verdictService,
		logger:         logger,
	}
}

// RegisterRoutes registers the vote handler's routes on the given mux.
// Casting a vote or comment requires an authenticated identity; the
// summary is public.
func (h *VoteHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/checks/{id}/votes", authMiddleware.RequireAuth(h.CastVote))
	mux.HandleFunc("POST /api/checks/{id}/comments", authMiddleware.RequireAuth(h.CastComment))
	mux.HandleFunc("GET /api/checks/{id}/votes", h.Summary)
}

// CastVote handles POST /api/checks/{id}/votes
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	verdictID, ok := h.parseVerdictID(w, r)
	if !ok {
		return
	}

	var req VoteRequest
	if err := DecodeFlexible(r.Body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	voterID := auth.UserIDFromContext(r.Context())

	err := h.verdictService.Vote(r.Context(), verdictID, voterID, req.Value, req.Comment)
	if err != nil {
		h.writeVoteError(w, verdictID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CastComment handles POST /api/checks/{id}/comments
func (h *VoteHandler) CastComment(w http.ResponseWriter, r *http.Request) {
	verdictID, ok := h.parseVerdictID(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := DecodeFlexible(r.Body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	voterID := auth.UserIDFromContext(r.Context())

	err := h.verdictService.Comment(r.Context(), verdictID, voterID, req.Comment)
	if err != nil {
		h.writeVoteError(w, verdictID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/checks/{id}/votes
func (h *VoteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	verdictID, ok := h.parseVerdictID(w, r)
	if !ok {
		return
	}

	summary, err := h.verdictService.Votes(r.Context(), verdictID)
	if err != nil {
		h.writeVoteError(w, verdictID, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, summary); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *VoteHandler) parseVerdictID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	verdictID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid verdict ID")
		return uuid.Nil, false
	}
	return verdictID, true
}

func (h *VoteHandler) writeVoteError(w http.ResponseWriter, verdictID uuid.UUID, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		h.writeError(w, http.StatusUnauthorized, "Please log in to vote.")
	case errors.Is(err, apperrors.ErrInvalidInput):
		h.writeError(w, http.StatusBadRequest, "Vote must be 1 or -1.")
	case errors.Is(err, apperrors.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "Verdict not found.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		h.writeError(w, http.StatusForbidden, "Permission denied.")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		h.writeError(w, http.StatusServiceUnavailable, "Verdict store is unavailable.")
	default:
		h.logger.Error("Vote failed",
			zap.String("verdict_id", verdictID.String()),
			zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *VoteHandler) writeError(w http.ResponseWriter, status int, message string) {
	if err := ErrorResponse(w, status, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
