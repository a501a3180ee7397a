package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/auth"
	"github.com/fakecheck-ai/verdict-engine/pkg/classifier"
	"github.com/fakecheck-ai/verdict-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// CheckRequest for POST /api/check
type CheckRequest struct {
	Text string `json:"text"`
}

// CheckResponse for POST /api/check. Result carries the full raw
// classifier text; Label is the length-bounded stored copy. The
// remaining fields identify the stored verdict so the caller can vote
// on it.
type CheckResponse struct {
	Result     string    `json:"result"`
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// ============================================================================
// Handler
// ============================================================================

// CheckHandler handles claim submission requests.
type CheckHandler struct {
	verdictService services.VerdictService
	logger         *zap.Logger
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(verdictService services.VerdictService, logger *zap.Logger) *CheckHandler {
	return &CheckHandler{
		verdictService: verdictService,
		logger:         logger,
	}
}

// RegisterRoutes registers the check handler's routes on the given mux.
// Submission does not require login; a valid token attributes the
// verdict to the caller, otherwise it is recorded as anonymous.
func (h *CheckHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/check", authMiddleware.OptionalAuth(h.Check))
}

// Check handles POST /api/check
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := DecodeFlexible(r.Body, &req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "No text provided."); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	userID := auth.UserIDFromContext(r.Context())

	verdict, rawText, err := h.verdictService.Submit(r.Context(), req.Text, userID)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	response := CheckResponse{
		Result:     rawText,
		ID:         verdict.ID,
		Label:      verdict.Label,
		Confidence: verdict.Confidence,
		CreatedAt:  verdict.CreatedAt,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeSubmitError maps pipeline errors onto the check endpoint's wire
// contract: 400 for an empty claim, 500 for a missing credential, the
// upstream's own status (500 when unknown) for classification
// failures, and store failures by kind.
func (h *CheckHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var writeErr error
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "No text provided.")
	case errors.Is(err, apperrors.ErrMissingAPIKey):
		writeErr = ErrorResponse(w, http.StatusInternalServerError, "Missing OPENROUTER_API_KEY.")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		writeErr = ErrorResponse(w, http.StatusServiceUnavailable, "Verdict store is unavailable.")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		writeErr = ErrorResponse(w, http.StatusForbidden, "Permission denied.")
	default:
		var upErr *classifier.UpstreamError
		if errors.As(err, &upErr) {
			status := upErr.StatusCode
			if status == 0 {
				status = http.StatusInternalServerError
			}
			message := upErr.Body
			if message == "" {
				message = upErr.Error()
			}
			h.logger.Error("Classification failed",
				zap.Int("upstream_status", upErr.StatusCode),
				zap.Error(err))
			writeErr = ErrorResponse(w, status, message)
			break
		}
		h.logger.Error("Check failed", zap.Error(err))
		writeErr = ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
	if writeErr != nil {
		h.logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}
