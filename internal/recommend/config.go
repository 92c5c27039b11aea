// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelharbor/internal/config"
)

// Options carries the orchestration tunables. Built from the loaded
// application config in one place so adapters stay constructor-injected
// and testable with literal values.
type Options struct {
	// DefaultLimit is used when a request does not specify a limit.
	DefaultLimit int
	// MaxLimit caps any requested limit.
	MaxLimit int
	// CacheTTL bounds how long a non-empty outcome stays cached.
	CacheTTL time.Duration
	// PrimaryShare is the fraction of a similarity query budget spent on
	// the requested media type; the remainder goes to the complement.
	PrimaryShare float64
	// SimilarityHourlyLimit is the shared fixed-window budget for
	// similarity sub-queries.
	SimilarityHourlyLimit int64
	// SimilarityWindow is the width of the similarity rate window.
	SimilarityWindow time.Duration
	// GenerativeCooldown is how long the generative adapter reports
	// unavailable after an upstream quota rejection.
	GenerativeCooldown time.Duration
	// EnrichTimeout bounds the whole enrichment pass.
	EnrichTimeout time.Duration
}

// OptionsFromConfig maps the loaded application config onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultLimit:          cfg.Recommend.DefaultLimit,
		MaxLimit:              cfg.Recommend.MaxLimit,
		CacheTTL:              cfg.Recommend.CacheTTL,
		PrimaryShare:          cfg.Recommend.PrimaryShare,
		SimilarityHourlyLimit: cfg.TasteDive.HourlyLimit,
		SimilarityWindow:      cfg.TasteDive.Window,
		GenerativeCooldown:    cfg.Gemini.Cooldown,
		EnrichTimeout:         cfg.Recommend.EnrichTimeout,
	}
}

// Validate rejects option combinations that would wedge the engine.
func (o Options) Validate() error {
	if o.DefaultLimit <= 0 || o.MaxLimit <= 0 {
		return fmt.Errorf("limits must be positive (default=%d max=%d)", o.DefaultLimit, o.MaxLimit)
	}
	if o.DefaultLimit > o.MaxLimit {
		return fmt.Errorf("default limit %d exceeds max limit %d", o.DefaultLimit, o.MaxLimit)
	}
	if o.PrimaryShare <= 0 || o.PrimaryShare >= 1 {
		return fmt.Errorf("primary share must be in (0,1), got %f", o.PrimaryShare)
	}
	if o.SimilarityHourlyLimit <= 0 {
		return fmt.Errorf("similarity hourly limit must be positive, got %d", o.SimilarityHourlyLimit)
	}
	if o.SimilarityWindow <= 0 || o.GenerativeCooldown <= 0 {
		return fmt.Errorf("similarity window and generative cooldown must be positive")
	}
	return nil
}

// ClampLimit applies the default and maximum to a caller-supplied limit.
func (o Options) ClampLimit(limit int) int {
	if limit <= 0 {
		return o.DefaultLimit
	}
	if limit > o.MaxLimit {
		return o.MaxLimit
	}
	return limit
}
