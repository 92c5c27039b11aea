// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelharbor/internal/clients/tmdb"
	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/metrics"
	"github.com/tomtom215/reelharbor/internal/titlematch"
)

// enrichConcurrency bounds parallel catalog lookups per request.
const enrichConcurrency = 8

// reasonMaxChars is where provider descriptions get cut for the reason
// line. Roughly two lines in a recommendation card.
const reasonMaxChars = 150

// Enricher resolves provider matches against the catalog and assembles
// the final recommendation set: deduplicated, seed-free, artwork and
// watch providers attached, deterministic order.
type Enricher struct {
	catalog CatalogClient
	opts    Options
}

// NewEnricher creates an Enricher.
func NewEnricher(catalog CatalogClient, opts Options) *Enricher {
	return &Enricher{catalog: catalog, opts: opts}
}

// resolvedMatch pairs a provider match with its catalog identity.
type resolvedMatch struct {
	match  Match
	result tmdb.SearchResult
}

// Enrich turns an orchestration outcome into caller-facing results.
//
// Per-item catalog failures are tolerated: an unresolvable match is
// dropped and a failed watch-provider lookup leaves the list empty.
// The whole pass never fails because one title misbehaved; only a
// context-level failure surfaces as an error.
func (e *Enricher) Enrich(ctx context.Context, req *Request, outcome *Outcome) ([]EnrichedResult, error) {
	if e.opts.EnrichTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.EnrichTimeout)
		defer cancel()
	}

	resolved, excluded, err := e.resolve(ctx, req, outcome.Results)
	if err != nil {
		return nil, err
	}

	kept := dedupeAndFilter(resolved, excluded, req.Limit)

	results := make([]EnrichedResult, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, rm := range kept {
		g.Go(func() error {
			providers, perr := e.catalog.WatchProviders(gctx, rm.result.ID, string(rm.match.MediaType))
			if perr != nil {
				metrics.EnrichmentLookupFailures.WithLabelValues("watch_providers").Inc()
				logging.Ctx(gctx).Debug().Err(perr).Int("id", rm.result.ID).
					Msg("watch provider lookup failed, leaving empty")
				providers = nil
			}
			results[i] = e.assemble(req, rm, providers)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolve looks up every match and every unresolved seed in parallel,
// returning resolved matches in input order (nil identity dropped) and
// the full excluded-ID set.
func (e *Enricher) resolve(ctx context.Context, req *Request, matches []Match) ([]resolvedMatch, map[int]struct{}, error) {
	slots := make([]*tmdb.SearchResult, len(matches))
	seedIDs := make([]int, len(req.Seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i, m := range matches {
		g.Go(func() error {
			res := e.searchFirst(gctx, m.Name, m.MediaType)
			if res == nil {
				metrics.EnrichmentLookupFailures.WithLabelValues("resolve").Inc()
				return nil
			}
			slots[i] = res
			return nil
		})
	}

	// Blend seeds arrive as titles only; resolve them here so the
	// recommendations never include a seed itself.
	for i, s := range req.Seeds {
		if s.ID > 0 {
			seedIDs[i] = s.ID
			continue
		}
		g.Go(func() error {
			if res := e.searchFirst(gctx, s.Title, s.MediaType); res != nil {
				seedIDs[i] = res.ID
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	excluded := make(map[int]struct{}, len(seedIDs)+len(req.ExcludeIDs))
	for _, id := range seedIDs {
		if id > 0 {
			excluded[id] = struct{}{}
		}
	}
	for _, id := range req.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	resolved := make([]resolvedMatch, 0, len(matches))
	for i, slot := range slots {
		if slot == nil {
			continue
		}
		resolved = append(resolved, resolvedMatch{match: matches[i], result: *slot})
	}
	return resolved, excluded, nil
}

func (e *Enricher) searchFirst(ctx context.Context, title string, mediaType MediaType) *tmdb.SearchResult {
	query := titlematch.Sanitize(title)
	if query == "" {
		return nil
	}
	results, err := e.catalog.SearchTitle(ctx, query, string(mediaType))
	if err != nil || len(results) == 0 {
		return nil
	}
	return &results[0]
}

// dedupeAndFilter drops excluded IDs, keeps the first occurrence of
// each catalog ID, and truncates to limit. Input order is preserved;
// the winning adapter already concatenated primary-type first.
func dedupeAndFilter(resolved []resolvedMatch, excluded map[int]struct{}, limit int) []resolvedMatch {
	seen := make(map[int]struct{}, len(resolved))
	kept := make([]resolvedMatch, 0, limit)
	for _, rm := range resolved {
		if len(kept) == limit {
			break
		}
		if _, skip := excluded[rm.result.ID]; skip {
			continue
		}
		if _, dup := seen[rm.result.ID]; dup {
			continue
		}
		seen[rm.result.ID] = struct{}{}
		kept = append(kept, rm)
	}
	return kept
}

func (e *Enricher) assemble(req *Request, rm resolvedMatch, providers []tmdb.WatchProvider) EnrichedResult {
	providerIDs := make([]int, 0, len(providers))
	for _, p := range providers {
		providerIDs = append(providerIDs, p.ProviderID)
	}

	return EnrichedResult{
		ID:           rm.result.ID,
		Title:        rm.result.DisplayTitle(),
		MediaType:    rm.match.MediaType,
		Overview:     rm.result.Overview,
		PosterPath:   rm.result.PosterPath,
		BackdropPath: rm.result.BackdropPath,
		VoteAverage:  rm.result.VoteAverage,
		Year:         rm.result.ReleaseYear(),
		Reason:       reasonFor(req, rm.match),
		ProviderIDs:  providerIDs,
	}
}

// reasonFor prefers the provider's own description, truncated; without
// one it falls back to a sentence naming the seeds, so the reason field
// is never empty.
func reasonFor(req *Request, m Match) string {
	if desc := strings.TrimSpace(m.Description); desc != "" {
		return truncateReason(desc)
	}
	titles := req.SeedTitles()
	switch len(titles) {
	case 0:
		return "A strong match for your request."
	case 1:
		return fmt.Sprintf("Recommended because you liked %s.", titles[0])
	default:
		last := titles[len(titles)-1]
		return fmt.Sprintf("Recommended because you liked %s and %s.",
			strings.Join(titles[:len(titles)-1], ", "), last)
	}
}

// truncateReason cuts at the last word boundary under the cap and
// appends an ellipsis. Rune-aware so multibyte text never splits.
func truncateReason(s string) string {
	runes := []rune(s)
	if len(runes) <= reasonMaxChars {
		return s
	}
	cut := string(runes[:reasonMaxChars])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}
