package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/apperrors"
)

// OpenRouterClient classifies claims through an OpenAI-compatible
// chat-completion endpoint (OpenRouter, OpenAI, or any drop-in).
type OpenRouterClient struct {
	client  *openai.Client
	model   string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds configuration for creating a classifier client.
type Config struct {
	BaseURL string        // e.g. "https://openrouter.ai/api/v1"
	Model   string        // e.g. "mistralai/mixtral-8x7b-instruct"
	APIKey  string        // May be empty; Classify then fails before any call
	Referer string        // Sent as HTTP-Referer to identify this deployment
	Title   string        // Sent as X-Title to identify this deployment
	Timeout time.Duration // Per-call bound; expiry is an upstream error
}

// NewOpenRouterClient creates a classifier backed by an OpenAI-compatible
// endpoint. A missing API key is not an error here: it is reported by
// Classify so every request surfaces the configuration failure.
func NewOpenRouterClient(cfg *Config, logger *zap.Logger) (*OpenRouterClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientConfig.HTTPClient = &http.Client{
		Transport: &identifyingTransport{
			referer: cfg.Referer,
			title:   cfg.Title,
			base:    http.DefaultTransport,
		},
	}

	return &OpenRouterClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		logger:  logger.Named("classifier"),
	}, nil
}

var _ Client = (*OpenRouterClient)(nil)

// Classify sends the claim as the user turn under the fixed system
// prompt and returns the first choice's message content. Exactly one
// outbound request is made; there is no retry.
func (c *OpenRouterClient) Classify(ctx context.Context, claimText string) (string, error) {
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

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: claimText},
		},
	})
	if err != nil {
		c.logger.Error("classification request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", upstreamError(err)
	}

	c.logger.Info("classification completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return FallbackResponse, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (c *OpenRouterClient) Model() string {
	return c.model
}

// upstreamError maps go-openai errors to *UpstreamError, preserving the
// upstream status code and body when the service responded.
func upstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{
			StatusCode: reqErr.HTTPStatusCode,
			Body:       string(reqErr.Body),
			Err:        err,
		}
	}

	return &UpstreamError{Err: err}
}

// identifyingTransport adds the deployment-identifying headers expected
// by OpenRouter to every outbound request.
type identifyingTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *identifyingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return t.base.RoundTrip(req)
}
