package classifier

import (
	"context"
)

// MockClient is a configurable mock for testing pipeline stages that
// depend on classification. Set the function field to control behavior.
type MockClient struct {
	// ClassifyFunc is called when Classify is invoked.
	// If nil, returns FallbackResponse and nil error.
	ClassifyFunc func(ctx context.Context, claimText string) (string, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// ClassifyCalls counts invocations for verification.
	ClassifyCalls int
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

var _ Client = (*MockClient)(nil)

// Classify implements Client.
func (m *MockClient) Classify(ctx context.Context, claimText string) (string, error) {
	m.ClassifyCalls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, claimText)
	}
	return FallbackResponse, nil
}

// Model implements Client.
func (m *MockClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}
