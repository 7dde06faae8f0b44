// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (HTTP client, credential store)
    via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the FFL client.
type Config struct {

	// APIBaseURL is the FFL backend base path, including the /api prefix.
	APIBaseURL string `env:"FFL_API_URL" envDefault:"http://localhost:8080/api"`

	// RequestTimeout bounds every outbound HTTP call.
	RequestTimeout time.Duration `env:"FFL_TIMEOUT" envDefault:"10s"`

	// CredentialsPath is the file holding the persisted bearer token.
	// Empty means ~/.ffl/credentials.json.
	CredentialsPath string `env:"FFL_CREDENTIALS_PATH"`

	// RedisURL, when set, switches the credential store to the shared
	// Redis backend so multiple processes observe the same session.
	RedisURL string `env:"FFL_REDIS_URL"`

	// Profile namespaces the shared credential key, allowing several
	// accounts side by side.
	Profile string `env:"FFL_PROFILE" envDefault:"default"`

	LogLevel  string `env:"FFL_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"FFL_LOG_FORMAT" envDefault:"text"`
	Debug     bool   `env:"FFL_DEBUG"      envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Resolve the default credentials file lazily so tests can override it.
	if cfg.CredentialsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve home directory: %w", err)
		}
		cfg.CredentialsPath = filepath.Join(home, ".ffl", "credentials.json")
	}

	return cfg, nil
}

// UseSharedStore reports whether the Redis-backed credential store is enabled.
func (c *Config) UseSharedStore() bool {
	return c.RedisURL != ""
}
