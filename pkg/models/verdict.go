package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID is recorded as the submitter when no authenticated
// identity is present on a check request.
const AnonymousUserID = "anonymous"

// MaxLabelLength bounds the stored classifier output.
const MaxLabelLength = 500

// Verdict is the persisted outcome of classifying one claim.
// ID, UserID, Text and CreatedAt are immutable after creation;
// Label and Confidence are set exactly once by the pipeline and are
// never revised by voting.
type Verdict struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	Text       string    `json:"text"`
	Label      string    `json:"label"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
