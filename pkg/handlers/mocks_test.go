package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/auth"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/services"
)

// newTestMiddleware builds auth middleware in dev mode (no signature
// verification) so tests can use unsigned tokens from testhelpers.
func newTestMiddleware(t *testing.T) *auth.Middleware {
	t.Helper()

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{EnableVerification: false})
	require.NoError(t, err)

	authService := auth.NewAuthService(jwksClient, zap.NewNop())
	return auth.NewMiddleware(authService, zap.NewNop())
}

// mockVerdictService is a configurable VerdictService for handler tests.
type mockVerdictService struct {
	submitFunc  func(ctx context.Context, claimText, userID string) (*models.Verdict, string, error)
	getFunc     func(ctx context.Context, id uuid.UUID) (*models.Verdict, error)
	historyFunc func(ctx context.Context, userID string) ([]*models.Verdict, error)
	voteFunc    func(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error
	commentFunc func(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error
	votesFunc   func(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error)
}

var _ services.VerdictService = (*mockVerdictService)(nil)

func (m *mockVerdictService) Submit(ctx context.Context, claimText, userID string) (*models.Verdict, string, error) {
	return m.submitFunc(ctx, claimText, userID)
}

func (m *mockVerdictService) Get(ctx context.Context, id uuid.UUID) (*models.Verdict, error) {
	return m.getFunc(ctx, id)
}

func (m *mockVerdictService) History(ctx context.Context, userID string) ([]*models.Verdict, error) {
	return m.historyFunc(ctx, userID)
}

func (m *mockVerdictService) Vote(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error {
	return m.voteFunc(ctx, verdictID, voterID, value, comment)
}

func (m *mockVerdictService) Comment(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error {
	return m.commentFunc(ctx, verdictID, voterID, comment)
}

func (m *mockVerdictService) Votes(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error) {
	return m.votesFunc(ctx, verdictID)
}
