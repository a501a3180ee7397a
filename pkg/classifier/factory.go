package classifier

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fakecheck-ai/verdict-engine/pkg/config"
)

// New creates a classifier client for the configured provider.
func New(cfg *config.ClassifierConfig, logger *zap.Logger) (Client, error) {
	clientCfg := &Config{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		Referer: cfg.Referer,
		Title:   cfg.Title,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	switch strings.ToLower(cfg.Provider) {
	case "openrouter", "openai":
		return NewOpenRouterClient(clientCfg, logger)
	case "anthropic":
		return NewAnthropicClient(clientCfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: openrouter, openai, anthropic)", cfg.Provider)
	}
}
