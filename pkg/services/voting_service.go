package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/repositories"
)

// VotingService records community feedback on verdicts. One vote per
// (verdict, voter) pair; a second cast silently replaces the first.
type VotingService interface {
	// CastVote writes or overwrites the voter's vote on a verdict.
	// The voter must be an authenticated identity; value must be
	// models.VoteAccurate or models.VoteInaccurate. Comment is
	// optional.
	CastVote(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error

	// CastComment records free-text feedback. The vote value defaults
	// to supportive, matching the product's comment-as-confirmation
	// behavior.
	CastComment(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error

	// Summary aggregates the votes on a verdict. An unknown verdict is
	// apperrors.ErrNotFound, not an empty summary.
	Summary(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error)
}

type votingService struct {
	verdictRepo repositories.VerdictRepository
	logger      *zap.Logger
}

// NewVotingService creates a new VotingService.
func NewVotingService(verdictRepo repositories.VerdictRepository, logger *zap.Logger) VotingService {
	return &votingService{
		verdictRepo: verdictRepo,
		logger:      logger.Named("voting"),
	}
}

var _ VotingService = (*votingService)(nil)

func (s *votingService) CastVote(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error {
	if voterID == "" || voterID == models.AnonymousUserID {
		return apperrors.ErrUnauthenticated
	}
	if value != models.VoteAccurate && value != models.VoteInaccurate {
		return apperrors.ErrInvalidInput
	}

	vote := &models.Vote{
		VerdictID: verdictID,
		VoterID:   voterID,
		Value:     value,
		Comment:   comment,
	}
	if err := s.verdictRepo.UpsertVote(ctx, vote); err != nil {
		return err
	}

	s.logger.Info("vote recorded",
		zap.String("verdict_id", verdictID.String()),
		zap.String("voter_id", voterID),
		zap.Int("value", value))

	return nil
}

func (s *votingService) CastComment(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return apperrors.ErrInvalidInput
	}
	return s.CastVote(ctx, verdictID, voterID, models.VoteAccurate, &comment)
}

func (s *votingService) Summary(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error) {
	// ListVotes alone cannot distinguish a verdict with no votes from a
	// verdict that does not exist; resolve the verdict first so unknown
	// IDs surface as ErrNotFound rather than an empty summary.
	if _, err := s.verdictRepo.GetByID(ctx, verdictID); err != nil {
		return nil, err
	}

	votes, err := s.verdictRepo.ListVotes(ctx, verdictID)
	if err != nil {
		return nil, err
	}

	summary := &models.VoteSummary{
		VerdictID: verdictID,
		Votes:     votes,
	}
	for _, v := range votes {
		switch v.Value {
		case models.VoteAccurate:
			summary.Up++
		case models.VoteInaccurate:
			summary.Down++
		}
	}
	summary.Total = len(votes)

	return summary, nil
}
