// Package logging builds the engine's zap loggers and provides
// redaction helpers for values that may embed credentials.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger creates a zap logger appropriate for the environment.
// "local" gets a human-readable console logger at debug level;
// everything else gets production JSON output.
func NewLogger(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
