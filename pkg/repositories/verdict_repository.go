package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
	"github.com/fakecheck-ai/verdict-engine/pkg/database"
	"github.com/fakecheck-ai/verdict-engine/pkg/models"
)

// VerdictRepository provides data access for verdicts and their votes.
type VerdictRepository interface {
	// Create inserts a new verdict. It assigns the ID (if unset) and
	// the server-side creation timestamp; it never overwrites an
	// existing record.
	Create(ctx context.Context, verdict *models.Verdict) error

	// GetByID retrieves one verdict.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Verdict, error)

	// ListByUser returns all verdicts for a user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]*models.Verdict, error)

	// UpsertVote writes the vote keyed by (verdict_id, voter_id),
	// replacing any prior vote for the pair in a single atomic write.
	UpsertVote(ctx context.Context, vote *models.Vote) error

	// ListVotes returns all votes on a verdict.
	ListVotes(ctx context.Context, verdictID uuid.UUID) ([]*models.Vote, error)
}

// verdictRepository implements VerdictRepository using PostgreSQL.
type verdictRepository struct {
	db *database.DB
}

// NewVerdictRepository creates a new verdict repository.
func NewVerdictRepository(db *database.DB) VerdictRepository {
	return &verdictRepository{db: db}
}

var _ VerdictRepository = (*verdictRepository)(nil)

func (r *verdictRepository) Create(ctx context.Context, verdict *models.Verdict) error {
	if verdict.ID == uuid.Nil {
		verdict.ID = uuid.New()
	}
	verdict.CreatedAt = time.Now()

	query := `
		INSERT INTO verdicts (id, user_id, text, label, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		verdict.ID,
		verdict.UserID,
		verdict.Text,
		verdict.Label,
		verdict.Confidence,
		verdict.CreatedAt,
	)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to create verdict: %w", err))
	}

	return nil
}

func (r *verdictRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Verdict, error) {
	query := `
		SELECT id, user_id, text, label, confidence, created_at
		FROM verdicts
		WHERE id = $1`

	var v models.Verdict
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.UserID, &v.Text, &v.Label, &v.Confidence, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStoreError(fmt.Errorf("failed to get verdict: %w", err))
	}

	return &v, nil
}

func (r *verdictRepository) ListByUser(ctx context.Context, userID string) ([]*models.Verdict, error) {
	query := `
		SELECT id, user_id, text, label, confidence, created_at
		FROM verdicts
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to list verdicts: %w", err))
	}
	defer rows.Close()

	var verdicts []*models.Verdict
	for rows.Next() {
		var v models.Verdict
		if err := rows.Scan(&v.ID, &v.UserID, &v.Text, &v.Label, &v.Confidence, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		verdicts = append(verdicts, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to read verdicts: %w", err))
	}

	return verdicts, nil
}

func (r *verdictRepository) UpsertVote(ctx context.Context, vote *models.Vote) error {
	vote.UpdatedAt = time.Now()

	query := `
		INSERT INTO verdict_votes (verdict_id, voter_id, value, comment, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (verdict_id, voter_id) DO UPDATE
		SET value = EXCLUDED.value,
		    comment = EXCLUDED.comment,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		vote.VerdictID,
		vote.VoterID,
		vote.Value,
		vote.Comment,
		vote.UpdatedAt,
	)
	if err != nil {
		return mapStoreError(fmt.Errorf("failed to upsert vote: %w", err))
	}

	return nil
}

func (r *verdictRepository) ListVotes(ctx context.Context, verdictID uuid.UUID) ([]*models.Vote, error) {
	query := `
		SELECT verdict_id, voter_id, value, comment, updated_at
		FROM verdict_votes
		WHERE verdict_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, verdictID)
	if err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to list votes: %w", err))
	}
	defer rows.Close()

	var votes []*models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.VerdictID, &v.VoterID, &v.Value, &v.Comment, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError(fmt.Errorf("failed to read votes: %w", err))
	}

	return votes, nil
}

// mapStoreError translates PostgreSQL failures into the store error
// taxonomy. A vote against an unknown verdict trips the foreign key and
// surfaces as ErrNotFound.
func mapStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23503": // foreign_key_violation
			return apperrors.ErrNotFound
		case pgErr.Code == "42501" || pgErr.Code == "28000": // insufficient_privilege, invalid_authorization
			return apperrors.ErrPermissionDenied
		case strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
			return apperrors.ErrStoreUnavailable
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperrors.ErrStoreUnavailable
	}

	return err
}
