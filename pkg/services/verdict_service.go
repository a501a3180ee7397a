package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/classifier"
	"github.com/fakecheck-ai/verdict-engine/pkg/interpreter"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
	"github.com/fakecheck-ai/verdict-engine/pkg/repositories"
)

// VerdictService drives the end-to-end check pipeline: accept a claim,
// classify it remotely, derive the confidence score, persist the
// verdict, and expose history and vote entry points.
type VerdictService interface {
	// Submit runs classify -> interpret -> create strictly in sequence.
	// Any stage failure aborts the remaining stages and surfaces that
	// stage's error unmodified; a failed classification never produces
	// a stored verdict. An empty userID records the submitter as
	// anonymous. The returned string is the full raw classifier text;
	// the verdict's Label is the length-bounded copy of it.
	Submit(ctx context.Context, claimText, userID string) (*models.Verdict, string, error)

	// Get returns one verdict by ID.
	Get(ctx context.Context, id uuid.UUID) (*models.Verdict, error)

	// History returns the user's verdicts, most recent first.
	History(ctx context.Context, userID string) ([]*models.Verdict, error)

	// Vote and Comment are thin pass-throughs to the voting service,
	// usable once Submit has produced a verdict.
	Vote(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error
	Comment(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error

	// Votes returns the aggregated community feedback on a verdict.
	Votes(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error)
}

type verdictService struct {
	classifier  classifier.Client
	verdictRepo repositories.VerdictRepository
	votingSvc   VotingService
	logger      *zap.Logger
}

// NewVerdictService creates a new VerdictService.
func NewVerdictService(
	classifierClient classifier.Client,
	verdictRepo repositories.VerdictRepository,
	votingSvc VotingService,
	logger *zap.Logger,
) VerdictService {
	return &verdictService{
		classifier:  classifierClient,
		verdictRepo: verdictRepo,
		votingSvc:   votingSvc,
		logger:      logger.Named("verdicts"),
	}
}

var _ VerdictService = (*verdictService)(nil)

func (s *verdictService) Submit(ctx context.Context, claimText, userID string) (*models.Verdict, string, error) {
	if strings.TrimSpace(claimText) == "" {
		return nil, "", apperrors.ErrInvalidInput
	}
	if userID == "" {
		userID = models.AnonymousUserID
	}

	rawText, err := s.classifier.Classify(ctx, claimText)
	if err != nil {
		return nil, "", err
	}

	result := interpreter.Interpret(rawText)

	verdict := &models.Verdict{
		UserID:     userID,
		Text:       claimText,
		Label:      result.Label,
		Confidence: result.Confidence,
	}
	if err := s.verdictRepo.Create(ctx, verdict); err != nil {
		return nil, "", err
	}

	s.logger.Info("verdict created",
		zap.String("verdict_id", verdict.ID.String()),
		zap.String("user_id", userID),
		zap.Int("confidence", verdict.Confidence))

	return verdict, rawText, nil
}

func (s *verdictService) Get(ctx context.Context, id uuid.UUID) (*models.Verdict, error) {
	return s.verdictRepo.GetByID(ctx, id)
}

func (s *verdictService) History(ctx context.Context, userID string) ([]*models.Verdict, error) {
	return s.verdictRepo.ListByUser(ctx, userID)
}

func (s *verdictService) Vote(ctx context.Context, verdictID uuid.UUID, voterID string, value int, comment *string) error {
	return s.votingSvc.CastVote(ctx, verdictID, voterID, value, comment)
}

func (s *verdictService) Comment(ctx context.Context, verdictID uuid.UUID, voterID, comment string) error {
	return s.votingSvc.CastComment(ctx, verdictID, voterID, comment)
}

func (s *verdictService) Votes(ctx context.Context, verdictID uuid.UUID) (*models.VoteSummary, error) {
	return s.votingSvc.Summary(ctx, verdictID)
}
