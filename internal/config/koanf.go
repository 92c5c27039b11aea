// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelharbor/config.yaml",
	"/etc/reelharbor/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns a Config with all built-in defaults applied.
// These are overridden by the config file and environment variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8754,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Path:       "", // empty = in-memory store
			GCInterval: 5 * time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Region:            "US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
		},
		TasteDive: TasteDiveConfig{
			BaseURL:     "https://tastedive.com/api",
			Timeout:     10 * time.Second,
			HourlyLimit: 300,
			Window:      time.Hour,
		},
		Gemini: GeminiConfig{
			BaseURL:  "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.0-flash",
			Timeout:  25 * time.Second,
			Cooldown: 5 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultLimit:  10,
			MaxLimit:      25,
			CacheTTL:      6 * time.Hour,
			PrimaryShare:  0.7,
			EnrichTimeout: 5 * time.Second,
		},
		API: APIConfig{
			CORSAllowedOrigins: []string{},
			RateLimitRequests:  60,
			RateLimitWindow:    time.Minute,
		},
	}
}

// Load loads configuration with layered sources: defaults, then an optional
// YAML config file, then environment variables (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Environment variable names map to koanf paths at the first underscore:
	// TMDB_API_KEY -> tmdb.api_key, RECOMMEND_CACHE_TTL -> recommend.cache_ttl.
	envProvider := env.Provider("", ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configSections are the recognized top-level koanf keys. Environment
// variables outside these sections (PATH, HOME, ...) are ignored.
var configSections = map[string]bool{
	"server":    true,
	"logging":   true,
	"store":     true,
	"tmdb":      true,
	"tastedive": true,
	"gemini":    true,
	"recommend": true,
	"api":       true,
}

// envTransform maps environment variable names to koanf paths.
// Returns empty string to skip variables that are not configuration.
func envTransform(s string) string {
	s = strings.ToLower(s)
	section, rest, found := strings.Cut(s, "_")
	if !found || !configSections[section] {
		return ""
	}
	return section + "." + rest
}

// findConfigFile returns the path of the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
