package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
)

// mockVerdictRepo is an in-memory VerdictRepository for service tests.
type mockVerdictRepo struct {
	mu       sync.Mutex
	verdicts map[uuid.UUID]*models.Verdict
	votes    map[uuid.UUID]map[string]*models.Vote

	createErr error
	upsertErr error
	listErr   error

	createCalls int
	upsertCalls int
}

func newMockVerdictRepo() *mockVerdictRepo {
	return &mockVerdictRepo{
		verdicts: make(map[uuid.UUID]*models.Verdict),
		votes:    make(map[uuid.UUID]map[string]*models.Vote),
	}
}

func (m *mockVerdictRepo) Create(ctx context.Context, verdict *models.Verdict) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if verdict.ID == uuid.Nil {
		verdict.ID = uuid.New()
	}
	verdict.CreatedAt = time.Now()
	m.verdicts[verdict.ID] = verdict
	return nil
}

func (m *mockVerdictRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.verdicts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return v, nil
}

func (m *mockVerdictRepo) ListByUser(ctx context.Context, userID string) ([]*models.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Verdict
	for _, v := range m.verdicts {
		if v.UserID == userID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *mockVerdictRepo) UpsertVote(ctx context.Context, vote *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if _, ok := m.verdicts[vote.VerdictID]; !ok {
		return apperrors.ErrNotFound
	}
	if m.votes[vote.VerdictID] == nil {
		m.votes[vote.VerdictID] = make(map[string]*models.Vote)
	}
	vote.UpdatedAt = time.Now()
	m.votes[vote.VerdictID][vote.VoterID] = vote
	return nil
}

func (m *mockVerdictRepo) ListVotes(ctx context.Context, verdictID uuid.UUID) ([]*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*models.Vote
	for _, v := range m.votes[verdictID] {
		result = append(result, v)
	}
	return result, nil
}

func (m *mockVerdictRepo) voteFor(verdictID uuid.UUID, voterID string) *models.Vote {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.votes[verdictID][voterID]
}

func (m *mockVerdictRepo) voteCount(verdictID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.votes[verdictID])
}
