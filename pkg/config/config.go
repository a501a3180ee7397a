package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for verdict-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (API
// keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	Auth       AuthConfig       `yaml:"auth"`
	Database   DatabaseConfig   `yaml:"database"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// AuthConfig holds authentication-related configuration. Token issuance
// is delegated to an external identity provider; the engine only
// verifies bearer tokens against the provider's JWKS.
type AuthConfig struct {
	// EnableVerification controls whether JWT signatures are validated.
	// Set to false for local development without an identity provider.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// JWKSURL is the identity provider's JWKS endpoint.
	JWKSURL string `yaml:"jwks_url" env:"AUTH_JWKS_URL" env-default:""`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"verdict"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"verdict_engine"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// URL returns the database connection string.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ClassifierConfig holds the outbound classification endpoint settings.
type ClassifierConfig struct {
	// Provider selects the classifier backend: "openrouter" (any
	// OpenAI-compatible endpoint) or "anthropic".
	Provider string `yaml:"provider" env:"CLASSIFIER_PROVIDER" env-default:"openrouter"`

	// BaseURL is the chat-completion endpoint base, e.g.
	// "https://openrouter.ai/api/v1".
	BaseURL string `yaml:"base_url" env:"CLASSIFIER_BASE_URL" env-default:"https://openrouter.ai/api/v1"`

	// Model is the model name sent with each request.
	Model string `yaml:"model" env:"CLASSIFIER_MODEL" env-default:"mistralai/mixtral-8x7b-instruct"`

	// APIKey authorizes outbound requests. Secret - env only.
	APIKey string `yaml:"-" env:"OPENROUTER_API_KEY"`

	// Referer and Title identify this deployment to the upstream
	// service (sent as HTTP-Referer and X-Title headers).
	Referer string `yaml:"referer" env:"CLASSIFIER_REFERER" env-default:""`
	Title   string `yaml:"title" env:"CLASSIFIER_TITLE" env-default:"FakeCheck AI"`

	// TimeoutSeconds bounds each classification call. Expiry surfaces
	// as an upstream error; the call is never retried.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"CLASSIFIER_TIMEOUT_SECONDS" env-default:"60"`
}

// Load reads configuration from config.yaml (if present) and the
// environment, then validates it.
func Load(version string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Version = version

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks invariants that Load cannot express as tags.
func (c *Config) Validate() error {
	if c.Classifier.TimeoutSeconds <= 0 {
		return fmt.Errorf("classifier timeout must be positive, got %d", c.Classifier.TimeoutSeconds)
	}
	if c.Auth.EnableVerification && c.Auth.JWKSURL == "" {
		return fmt.Errorf("AUTH_JWKS_URL is required when auth verification is enabled")
	}
	switch c.Classifier.Provider {
	case "openrouter", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown classifier provider: %s", c.Classifier.Provider)
	}
	return nil
}
