package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote values. A vote is either supportive or contradicting; there is
// no neutral value.
const (
	VoteAccurate   = 1
	VoteInaccurate = -1
)

// Vote is a single user's feedback on one verdict, keyed by
// (VerdictID, VoterID). Writing a vote for a pair that already exists
// replaces the prior vote in place.
type Vote struct {
	VerdictID uuid.UUID `json:"verdict_id"`
	VoterID   string    `json:"voter_id"`
	Value     int       `json:"value"`
	Comment   *string   `json:"comment,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteSummary aggregates the votes cast on one verdict.
type VoteSummary struct {
	VerdictID uuid.UUID `json:"verdict_id"`
	Up        int       `json:"up"`
	Down      int       `json:"down"`
	Total     int       `json:"total"`
	Votes     []*Vote   `json:"votes"`
}
