package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/testhelpers"
)

// newTestRepo returns a repository backed by the shared test container.
// Each test uses unique user/voter IDs so tests do not interfere.
func newTestRepo(t *testing.T) VerdictRepository {
	t.Helper()
	testDB := testhelpers.GetTestDB(t)
	return NewVerdictRepository(testDB.DB)
}

func uniqueUserID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func createTestVerdict(t *testing.T, repo VerdictRepository, userID string) *models.Verdict {
	t.Helper()

	verdict := &models.Verdict{
		UserID:     userID,
		Text:       "The Great Wall of China is visible from space",
		Label:      "False. It is not visible to the naked eye from orbit.",
		Confidence: 80,
	}
	require.NoError(t, repo.Create(context.Background(), verdict))
	return verdict
}

func TestVerdictRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	verdict := createTestVerdict(t, repo, uniqueUserID("user"))

	assert.NotEqual(t, uuid.Nil, verdict.ID, "Create should assign an ID")
	assert.False(t, verdict.CreatedAt.IsZero(), "Create should assign a timestamp")

	got, err := repo.GetByID(ctx, verdict.ID)
	require.NoError(t, err)
	assert.Equal(t, verdict.ID, got.ID)
	assert.Equal(t, verdict.UserID, got.UserID)
	assert.Equal(t, verdict.Text, got.Text)
	assert.Equal(t, verdict.Label, got.Label)
	assert.Equal(t, verdict.Confidence, got.Confidence)
}

func TestVerdictRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVerdictRepository_ListByUser_MostRecentFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uniqueUserID("history-user")

	texts := []string{"first claim", "second claim", "third claim"}
	for _, text := range texts {
		verdict := &models.Verdict{
			UserID:     userID,
			Text:       text,
			Label:      "Uncertain.",
			Confidence: 50,
		}
		require.NoError(t, repo.Create(ctx, verdict))
		time.Sleep(10 * time.Millisecond) // distinct created_at for ordering
	}

	verdicts, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, verdicts, 3)
	assert.Equal(t, "third claim", verdicts[0].Text)
	assert.Equal(t, "second claim", verdicts[1].Text)
	assert.Equal(t, "first claim", verdicts[2].Text)
}

func TestVerdictRepository_ListByUser_DoesNotLeakOtherUsers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userA := uniqueUserID("user-a")
	userB := uniqueUserID("user-b")
	createTestVerdict(t, repo, userA)
	createTestVerdict(t, repo, userB)

	verdicts, err := repo.ListByUser(ctx, userA)
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.Equal(t, userA, verdicts[0].UserID)
}

func TestVerdictRepository_ListByUser_Empty(t *testing.T) {
	repo := newTestRepo(t)

	verdicts, err := repo.ListByUser(context.Background(), uniqueUserID("nobody"))
	require.NoError(t, err)
	assert.Empty(t, verdicts)
}

func TestVerdictRepository_UpsertVote_InsertThenReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	verdict := createTestVerdict(t, repo, uniqueUserID("user"))
	voterID := uniqueUserID("voter")

	comment := "Looks right to me"
	require.NoError(t, repo.UpsertVote(ctx, &models.Vote{
		VerdictID: verdict.ID,
		VoterID:   voterID,
		Value:     models.VoteAccurate,
		Comment:   &comment,
	}))

	// Same voter changes their mind; the pair stays unique.
	revised := "Actually the sourcing is weak"
	require.NoError(t, repo.UpsertVote(ctx, &models.Vote{
		VerdictID: verdict.ID,
		VoterID:   voterID,
		Value:     models.VoteInaccurate,
		Comment:   &revised,
	}))

	votes, err := repo.ListVotes(ctx, verdict.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1, "re-voting must replace, not append")
	assert.Equal(t, voterID, votes[0].VoterID)
	assert.Equal(t, models.VoteInaccurate, votes[0].Value)
	require.NotNil(t, votes[0].Comment)
	assert.Equal(t, revised, *votes[0].Comment)
}

func TestVerdictRepository_UpsertVote_NullComment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	verdict := createTestVerdict(t, repo, uniqueUserID("user"))

	require.NoError(t, repo.UpsertVote(ctx, &models.Vote{
		VerdictID: verdict.ID,
		VoterID:   uniqueUserID("voter"),
		Value:     models.VoteAccurate,
	}))

	votes, err := repo.ListVotes(ctx, verdict.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Nil(t, votes[0].Comment)
}

func TestVerdictRepository_UpsertVote_UnknownVerdict(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpsertVote(context.Background(), &models.Vote{
		VerdictID: uuid.New(),
		VoterID:   uniqueUserID("voter"),
		Value:     models.VoteAccurate,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVerdictRepository_ListVotes_UnknownVerdictIsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	// ListVotes does not check verdict existence; callers that need to
	// distinguish "no votes" from "no verdict" resolve the verdict first.
	votes, err := repo.ListVotes(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestVerdictRepository_ListVotes_IndependentVoters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	verdict := createTestVerdict(t, repo, uniqueUserID("user"))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.UpsertVote(ctx, &models.Vote{
			VerdictID: verdict.ID,
			VoterID:   uniqueUserID("voter"),
			Value:     models.VoteAccurate,
		}))
	}

	votes, err := repo.ListVotes(ctx, verdict.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 3)
}
