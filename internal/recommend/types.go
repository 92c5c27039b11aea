// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/reelharbor/internal/titlematch"
)

// Kind selects the fallback chain for a request.
type Kind string

const (
	// KindSimilar recommends content similar to a single seed title.
	KindSimilar Kind = "similar"
	// KindBlend recommends content matching the taste of 2-5 seed titles.
	KindBlend Kind = "blend"
	// KindDiscover recommends content for a free-text prompt.
	KindDiscover Kind = "discover"
)

// MediaType is the catalog's content-type vocabulary.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType validates a media type string from an external caller.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown media type %q", ErrInvalidInput, s)
	}
}

// Complement returns the other media type. Recommendation sets mix a
// minority of the complementary type into every response.
func (m MediaType) Complement() MediaType {
	if m == MediaTypeMovie {
		return MediaTypeTV
	}
	return MediaTypeMovie
}

// SeedRef identifies one seed title. ID is the catalog ID when known
// (similar requests); blend requests arrive with titles only and IDs
// are resolved during enrichment for self-exclusion.
type SeedRef struct {
	ID        int       `json:"id,omitempty"`
	Title     string    `json:"title"`
	MediaType MediaType `json:"media_type"`
}

// Request is a single orchestration request. Exactly one input shape is
// valid per Kind: similar takes one seed, blend takes 2-5 distinct
// seeds, discover takes a non-empty prompt.
type Request struct {
	Kind       Kind
	Prompt     string
	Seeds      []SeedRef
	MediaType  MediaType
	Limit      int
	Year       int
	ExcludeIDs []int
}

// Validate checks the Kind-specific input invariants. All failures wrap
// ErrInvalidInput.
func (r *Request) Validate() error {
	switch r.Kind {
	case KindSimilar:
		if len(r.Seeds) != 1 {
			return fmt.Errorf("%w: similar requires exactly one seed, got %d", ErrInvalidInput, len(r.Seeds))
		}
	case KindBlend:
		if len(r.Seeds) < 2 || len(r.Seeds) > 5 {
			return fmt.Errorf("%w: blend requires 2 to 5 seeds, got %d", ErrInvalidInput, len(r.Seeds))
		}
		seen := make(map[string]struct{}, len(r.Seeds))
		for _, s := range r.Seeds {
			key := titlematch.Normalize(s.Title)
			if key == "" {
				return fmt.Errorf("%w: blend seed title is empty", ErrInvalidInput)
			}
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%w: duplicate blend seed %q", ErrInvalidInput, s.Title)
			}
			seen[key] = struct{}{}
		}
	case KindDiscover:
		if strings.TrimSpace(r.Prompt) == "" {
			return fmt.Errorf("%w: discover requires a non-empty prompt", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, r.Kind)
	}

	if r.MediaType != MediaTypeMovie && r.MediaType != MediaTypeTV {
		return fmt.Errorf("%w: unknown media type %q", ErrInvalidInput, r.MediaType)
	}
	if r.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidInput, r.Limit)
	}
	return nil
}

// SeedTitles returns the seed titles in order.
func (r *Request) SeedTitles() []string {
	titles := make([]string, len(r.Seeds))
	for i, s := range r.Seeds {
		titles[i] = s.Title
	}
	return titles
}

// Match is the provider-neutral recommendation shape every adapter
// normalizes to at its boundary. Description and the reference URLs
// are optional provider extras consumed during enrichment.
type Match struct {
	Name        string    `json:"name"`
	MediaType   MediaType `json:"media_type"`
	Description string    `json:"description,omitempty"`
	YoutubeRef  string    `json:"youtube_ref,omitempty"`
	WikiRef     string    `json:"wiki_ref,omitempty"`
}

// Outcome is the orchestrator's answer: the winning adapter's matches
// plus provenance. IsFallback is true when any earlier adapter in the
// chain was skipped or failed.
type Outcome struct {
	Results    []Match `json:"results"`
	Provider   string  `json:"provider"`
	IsFallback bool    `json:"is_fallback"`
	Cached     bool    `json:"-"`
}

// EnrichedResult is a fully resolved recommendation. It is never
// partially populated: a match that cannot be resolved against the
// catalog is dropped, not emitted half-filled.
type EnrichedResult struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	MediaType    MediaType `json:"media_type"`
	Overview     string    `json:"overview,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	Year         int       `json:"year,omitempty"`
	Reason       string    `json:"reason"`
	ProviderIDs  []int     `json:"provider_ids,omitempty"`
}

// Recommendations is the caller-facing result of a full orchestrate-
// then-enrich pass.
type Recommendations struct {
	Results    []EnrichedResult `json:"results"`
	Provider   string           `json:"provider"`
	IsFallback bool             `json:"is_fallback"`
	Cached     bool             `json:"cached"`
}
