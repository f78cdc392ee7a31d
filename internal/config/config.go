package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/mycelian/mycelian-memory/apiclient/tokenstore"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Prefix is the environment variable prefix, e.g. APICLIENT_ORIGIN.
const Prefix = "APICLIENT"

// Config holds the configuration for the API client and its CLI.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// Origin is scheme+host of the backend; the client appends /api.
	Origin string `envconfig:"ORIGIN" default:"http://localhost:8080"`

	// Token storage
	TokenStore string `envconfig:"TOKEN_STORE" default:"sqlite"`
	TokenDB    string `envconfig:"TOKEN_DB" default:""`
	TokenKey   string `envconfig:"TOKEN_KEY" default:"authToken"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// ResolveDefaults validates the token store settings and derives TokenDB when
// it is left empty.
func (c *Config) ResolveDefaults() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}

	switch c.TokenStore {
	case tokenstore.KindMemory:
	case tokenstore.KindSQLite:
		if c.TokenDB == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("resolve TOKEN_DB: %w", err)
			}
			c.TokenDB = filepath.Join(dir, "apiclient", "storage.db")
		}
	default:
		return fmt.Errorf("unsupported TOKEN_STORE: %s", c.TokenStore)
	}

	if c.TokenKey == "" {
		c.TokenKey = tokenstore.DefaultKey
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	return nil
}

// New creates a Config from APICLIENT_* environment variables.
// Example: APICLIENT_ORIGIN, APICLIENT_TOKEN_STORE
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("environment", string(cfg.Environment)).
		Str("origin", cfg.Origin).
		Str("token_store", cfg.TokenStore).
		Str("token_db", cfg.TokenDB).
		Str("token_key", cfg.TokenKey).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Msg("Configuration loaded")

	return &cfg, nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
