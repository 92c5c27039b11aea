// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package config holds all application configuration, loaded via Koanf v2
// with layered sources (highest priority wins):
//
//  1. Environment variables (TMDB_API_KEY -> tmdb.api_key)
//  2. Optional YAML config file (config.yaml)
//  3. Built-in defaults
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Store     StoreConfig     `koanf:"store"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	TasteDive TasteDiveConfig `koanf:"tastedive"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// StoreConfig holds the shared cache/rate-limit store settings.
//
// When Path is empty the store runs fully in memory; with a path set,
// BadgerDB persists cache entries and rate-limit windows across restarts.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// TMDBConfig holds catalog client settings.
//
// Environment variables:
//   - TMDB_API_KEY: Bearer token for the TMDB v3 API (required)
//   - TMDB_REGION: Watch-provider region (default: US)
type TMDBConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"url"`
	APIKey            string        `koanf:"api_key"`
	Region            string        `koanf:"region"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
}

// TasteDiveConfig holds similarity client settings.
//
// HourlyLimit caps orchestration-layer calls per rolling window; the
// TasteDive free tier allows 300 requests per hour.
type TasteDiveConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"url"`
	APIKey      string        `koanf:"api_key"`
	Timeout     time.Duration `koanf:"timeout"`
	HourlyLimit int64         `koanf:"hourly_limit" validate:"min=1"`
	Window      time.Duration `koanf:"window"`
}

// GeminiConfig holds generative client settings.
//
// Cooldown is how long the generative adapter reports itself unavailable
// after the upstream returns HTTP 429.
type GeminiConfig struct {
	BaseURL  string        `koanf:"base_url" validate:"url"`
	APIKey   string        `koanf:"api_key"`
	Model    string        `koanf:"model"`
	Timeout  time.Duration `koanf:"timeout"`
	Cooldown time.Duration `koanf:"cooldown"`
}

// RecommendConfig holds orchestration settings.
type RecommendConfig struct {
	// DefaultLimit is the result count when the caller does not specify one.
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`

	// MaxLimit caps the caller-requested result count.
	MaxLimit int `koanf:"max_limit" validate:"min=1"`

	// CacheTTL is how long validated provider responses stay cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// PrimaryShare is the fraction of the result budget given to the
	// requested media type; the remainder goes to the complementary type.
	PrimaryShare float64 `koanf:"primary_share" validate:"gt=0,lt=1"`

	// EnrichTimeout bounds each per-item catalog lookup during enrichment.
	EnrichTimeout time.Duration `koanf:"enrich_timeout"`
}

// APIConfig holds HTTP API middleware settings.
type APIConfig struct {
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	RateLimitRequests  int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
}

// Validate checks the configuration for invalid values.
// Struct tags cover ranges and formats; cross-field rules are explicit.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("config validation: recommend.default_limit (%d) exceeds recommend.max_limit (%d)",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}

	if c.TMDB.APIKey == "" {
		return fmt.Errorf("config validation: tmdb.api_key is required (set TMDB_API_KEY)")
	}

	return nil
}
