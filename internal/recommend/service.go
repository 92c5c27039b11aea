// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
)

// DiscoverParams are the caller inputs for a free-text discover request.
type DiscoverParams struct {
	Prompt     string
	MediaType  MediaType
	Limit      int
	Year       int
	ExcludeIDs []int
}

// BlendParams are the caller inputs for a multi-title blend request.
type BlendParams struct {
	Titles     []string
	MediaType  MediaType
	Limit      int
	ExcludeIDs []int
}

// Service is the caller-facing facade: it shapes raw inputs into
// orchestration requests, runs the fallback chain, and enriches the
// winning matches. The HTTP layer talks only to this type.
type Service struct {
	orch     *Orchestrator
	enricher *Enricher
	catalog  CatalogClient
	adapters map[string]Adapter
	opts     Options
}

// NewService creates the service facade over an orchestrator and its
// chain registry.
func NewService(orch *Orchestrator, enricher *Enricher, catalog CatalogClient, chains Chains, opts Options) *Service {
	adapters := make(map[string]Adapter)
	for _, chain := range chains {
		for _, a := range chain {
			adapters[a.Name()] = a
		}
	}
	return &Service{
		orch:     orch,
		enricher: enricher,
		catalog:  catalog,
		adapters: adapters,
		opts:     opts,
	}
}

// GetRecommendations serves a free-text discover request.
func (s *Service) GetRecommendations(ctx context.Context, p DiscoverParams) (*Recommendations, error) {
	req := &Request{
		Kind:       KindDiscover,
		Prompt:     p.Prompt,
		MediaType:  defaultMediaType(p.MediaType),
		Limit:      s.opts.ClampLimit(p.Limit),
		Year:       p.Year,
		ExcludeIDs: p.ExcludeIDs,
	}
	return s.run(ctx, req)
}

// GetBlendEnriched serves a multi-title blend request. Seed titles are
// resolved to catalog IDs during enrichment so a blend never recommends
// one of its own seeds.
func (s *Service) GetBlendEnriched(ctx context.Context, p BlendParams) (*Recommendations, error) {
	mt := defaultMediaType(p.MediaType)
	seeds := make([]SeedRef, len(p.Titles))
	for i, t := range p.Titles {
		seeds[i] = SeedRef{Title: t, MediaType: mt}
	}
	req := &Request{
		Kind:       KindBlend,
		Seeds:      seeds,
		MediaType:  mt,
		Limit:      s.opts.ClampLimit(p.Limit),
		ExcludeIDs: p.ExcludeIDs,
	}
	return s.run(ctx, req)
}

// GetSimilar serves a single-title similarity request. The seed ID is
// resolved against the catalog first: the similarity graph speaks
// titles, not IDs.
func (s *Service) GetSimilar(ctx context.Context, id int, mediaType MediaType, limit int) (*Recommendations, error) {
	details, err := s.catalog.Details(ctx, id, string(mediaType))
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: unknown %s id %d", ErrInvalidInput, mediaType, id)
		}
		// Without the catalog there is no seed title and no terminal
		// fallback either; the chain is exhausted before it starts.
		return nil, fmt.Errorf("%w: seed lookup: %v", ErrChainExhausted, err)
	}

	req := &Request{
		Kind:      KindSimilar,
		Seeds:     []SeedRef{{ID: id, Title: details.DisplayTitle(), MediaType: mediaType}},
		MediaType: mediaType,
		Limit:     s.opts.ClampLimit(limit),
	}
	return s.run(ctx, req)
}

// ProviderAvailable reports whether a named provider adapter would
// currently be used by the orchestrator.
func (s *Service) ProviderAvailable(ctx context.Context, name string) (bool, error) {
	adapter, ok := s.adapters[name]
	if !ok {
		return false, fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, name)
	}
	return adapter.Available(ctx), nil
}

func (s *Service) run(ctx context.Context, req *Request) (*Recommendations, error) {
	outcome, err := s.orch.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	results, err := s.enricher.Enrich(ctx, req, outcome)
	if err != nil {
		return nil, fmt.Errorf("enriching %s results: %w", outcome.Provider, err)
	}

	return &Recommendations{
		Results:    results,
		Provider:   outcome.Provider,
		IsFallback: outcome.IsFallback,
		Cached:     outcome.Cached,
	}, nil
}

func defaultMediaType(m MediaType) MediaType {
	if m == "" {
		return MediaTypeMovie
	}
	return m
}
