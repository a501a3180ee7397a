package classifier

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
)

// anthropicMaxTokens bounds the verdict explanation length.
const anthropicMaxTokens = 1000

// AnthropicClient classifies claims through the Anthropic Messages API.
type AnthropicClient struct {
	client  *anthropic.Client
	model   string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewAnthropicClient creates a classifier backed by Anthropic. As with
// the OpenRouter client, a missing API key is reported by Classify.
func NewAnthropicClient(cfg *Config, logger *zap.Logger) *AnthropicClient {
	return &AnthropicClient{
		client:  anthropic.NewClient(cfg.APIKey),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		logger:  logger.Named("classifier"),
	}
}

var _ Client = (*AnthropicClient)(nil)

// Classify implements Client.
func (c *AnthropicClient) Classify(ctx context.Context, claimText string) (string, error) {
	if strings.TrimSpace(claimText) == "" {
		return "", apperrors.ErrInvalidInput
	}
	if c.apiKey == "" {
		return "", apperrors.ErrMissingAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    SystemPrompt,
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(claimText),
		},
	})
	if err != nil {
		c.logger.Error("classification request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", anthropicUpstreamError(err)
	}

	c.logger.Info("classification completed",
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)))

	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			return *block.Text, nil
		}
	}
	return FallbackResponse, nil
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.model
}

func anthropicUpstreamError(err error) error {
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{
			StatusCode: reqErr.StatusCode,
			Err:        err,
		}
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			Body: apiErr.Message,
			Err:  err,
		}
	}

	return &UpstreamError{Err: err}
}
