package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/testhelpers"
)

func newHistoryServer(t *testing.T, svc *mockVerdictService) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	handler := NewHistoryHandler(svc, zap.NewNop())
	handler.RegisterRoutes(mux, newTestMiddleware(t))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHistoryHandler_ReturnsCallersVerdicts(t *testing.T) {
	now := time.Now().UTC()
	verdicts := []*models.Verdict{
		{ID: uuid.New(), UserID: "user-1", Text: "newer claim", Label: "True.", Confidence: 75, CreatedAt: now},
		{ID: uuid.New(), UserID: "user-1", Text: "older claim", Label: "False.", Confidence: 80, CreatedAt: now.Add(-time.Hour)},
	}

	svc := &mockVerdictService{
		historyFunc: func(ctx context.Context, userID string) ([]*models.Verdict, error) {
			assert.Equal(t, "user-1", userID)
			return verdicts, nil
		},
	}
	server := newHistoryServer(t, svc)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/history",
		testhelpers.GenerateTestJWTWithBearer("user-1", ""), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body HistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Verdicts, 2)
	assert.Equal(t, "newer claim", body.Verdicts[0].Text)
	assert.Equal(t, "older claim", body.Verdicts[1].Text)
}

func TestHistoryHandler_EmptyHistory(t *testing.T) {
	svc := &mockVerdictService{
		historyFunc: func(ctx context.Context, userID string) ([]*models.Verdict, error) {
			return []*models.Verdict{}, nil
		},
	}
	server := newHistoryServer(t, svc)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/history",
		testhelpers.GenerateTestJWTWithBearer("user-1", ""), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body HistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.Total)
	assert.Empty(t, body.Verdicts)
}

func TestHistoryHandler_RequiresAuthentication(t *testing.T) {
	svc := &mockVerdictService{
		historyFunc: func(ctx context.Context, userID string) ([]*models.Verdict, error) {
			t.Fatal("service should not be called without authentication")
			return nil, nil
		},
	}
	server := newHistoryServer(t, svc)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/history", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHistoryHandler_StoreUnavailable(t *testing.T) {
	svc := &mockVerdictService{
		historyFunc: func(ctx context.Context, userID string) ([]*models.Verdict, error) {
			return nil, apperrors.ErrStoreUnavailable
		},
	}
	server := newHistoryServer(t, svc)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/history",
		testhelpers.GenerateTestJWTWithBearer("user-1", ""), "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
