// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package recommend implements the provider orchestration engine that
// turns a free-text prompt or a set of seed titles into a ranked list
// of recommended movies and TV shows.
//
// # Architecture
//
// Three heterogeneous upstream providers sit behind a common Adapter
// interface:
//
//   - Generative: prompts a completion model for structured JSON
//   - Similarity: queries a similarity graph ("people who liked X...")
//   - Catalog-filter: deterministic filtered catalog queries by genre
//
// An Orchestrator drives an ordered fallback chain per use case,
// stopping at the first adapter that yields at least one valid match:
//
//   - similar:  [similarity, catalog]
//   - blend:    [similarity, generative]
//   - discover: [generative, similarity, catalog]
//
// Blend deliberately has no catalog terminal: the catalog cannot
// meaningfully combine multiple seeds, so exhausting the blend chain
// surfaces ErrChainExhausted instead of an empty success.
//
// The winning adapter's matches are then resolved against the catalog,
// deduplicated, stripped of seeds and exclusions, and enriched with
// artwork, ratings, and watch providers by the Enricher.
//
// # Design Principles
//
//   - Adapters normalize provider output at the boundary; the
//     orchestrator only ever sees []Match
//   - Sentinel errors classify every failure; only ErrChainExhausted
//     and ErrInvalidInput escape the orchestrator
//   - Quota state (fixed-window counters, cool-down markers) lives in
//     the shared store, never in package state
//   - Empty or invalid results are never cached
//
// # Thread Safety
//
// Orchestrator, Enricher, and Service are safe for concurrent use.
// Per-request state is stack-local; the only shared mutable state is
// the warned-provider set, which is mutex-guarded.
package recommend
