// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"

	"github.com/tomtom215/reelharbor/internal/clients/tastedive"
	"github.com/tomtom215/reelharbor/internal/clients/tmdb"
)

// Note: this package defines the interfaces it consumes. The transport
// clients in internal/clients satisfy them without importing this
// package, which keeps the dependency arrow pointing one way.

// CatalogClient is the slice of the catalog API the engine needs.
type CatalogClient interface {
	SearchTitle(ctx context.Context, query, mediaType string) ([]tmdb.SearchResult, error)
	Details(ctx context.Context, id int, mediaType string) (*tmdb.Details, error)
	Discover(ctx context.Context, filter tmdb.DiscoverFilter) ([]tmdb.SearchResult, error)
	WatchProviders(ctx context.Context, id int, mediaType string) ([]tmdb.WatchProvider, error)
}

// SimilarityClient is the slice of the similarity API the engine needs.
type SimilarityClient interface {
	Query(ctx context.Context, q, resultType string, limit int) ([]tastedive.Match, error)
}

// GenerativeClient is the slice of the completion API the engine needs.
type GenerativeClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Adapter is one provider in a fallback chain. Fetch returns normalized
// matches or a sentinel-classified error; it never returns a partially
// valid mix.
type Adapter interface {
	// Name identifies the adapter in outcomes, logs, and metrics.
	Name() string
	// Available reports whether the adapter can serve requests right
	// now. Unavailability is advisory: the orchestrator skips the
	// adapter without counting a failure.
	Available(ctx context.Context) bool
	// Fetch produces matches for the request.
	Fetch(ctx context.Context, req *Request) ([]Match, error)
}

// Chains is the static fallback-chain registry, built once at startup.
type Chains map[Kind][]Adapter

// NewChains wires the three adapters into the per-kind fallback chains.
// Blend has no catalog terminal: the catalog cannot combine multiple
// seeds, so an exhausted blend chain must surface an error instead of
// degrading to unrelated popular titles.
func NewChains(similarity, generative, catalog Adapter) Chains {
	return Chains{
		KindSimilar:  {similarity, catalog},
		KindBlend:    {similarity, generative},
		KindDiscover: {generative, similarity, catalog},
	}
}
