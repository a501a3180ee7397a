// Package classifier sends claims to a remote text-classification
// service and returns its raw natural-language verdict text.
package classifier

import (
	"context"
)

// SystemPrompt fixes the task framing for every classification request.
const SystemPrompt = "You are a fact-checking assistant. Classify the statement as Likely True, Likely False, or Uncertain and provide a short explanation."

// FallbackResponse is returned when the service responds without a
// usable message, so downstream stages always receive a string.
const FallbackResponse = "No response received."

// Client defines the interface for claim classification.
// Use this interface for dependency injection to enable mocking in tests.
type Client interface {
	// Classify sends one claim to the classification service and
	// returns the raw verdict text. A single attempt is made; failures
	// surface as *UpstreamError and are never retried here.
	Classify(ctx context.Context, claimText string) (string, error)

	// Model returns the configured model name.
	Model() string
}
