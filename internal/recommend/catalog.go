// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelharbor/internal/clients/tmdb"
	"github.com/tomtom215/reelharbor/internal/logging"
)

const catalogAdapterName = "catalog"

// seedGenreCap limits how many of a seed title's genres go into the
// fallback discover query. Using all of them intersects too narrowly.
const seedGenreCap = 2

// CatalogAdapter is the guaranteed terminal link in every chain that
// carries it. It derives genre constraints from the request and issues
// a deterministic popularity-sorted catalog query. It is always
// available and never consumes the orchestration-layer quota; the
// catalog's transport-level pacing lives in the client.
type CatalogAdapter struct {
	client CatalogClient
}

// NewCatalogAdapter creates the catalog-filter provider adapter.
func NewCatalogAdapter(client CatalogClient) *CatalogAdapter {
	return &CatalogAdapter{client: client}
}

// Name implements Adapter.
func (a *CatalogAdapter) Name() string { return catalogAdapterName }

// Available implements Adapter. Always true: if the catalog itself is
// down, Fetch reports it as a transport failure.
func (a *CatalogAdapter) Available(_ context.Context) bool { return true }

// Fetch implements Adapter.
func (a *CatalogAdapter) Fetch(ctx context.Context, req *Request) ([]Match, error) {
	filter := tmdb.DiscoverFilter{
		MediaType: string(req.MediaType),
		GenreIDs:  a.genresFor(ctx, req),
		Year:      req.Year,
	}

	results, err := a.client.Discover(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog discover: %v", ErrTransport, err)
	}

	matches := make([]Match, 0, req.Limit)
	for _, r := range results {
		if len(matches) == req.Limit {
			break
		}
		title := r.DisplayTitle()
		if title == "" {
			continue
		}
		matches = append(matches, Match{
			Name:        title,
			MediaType:   req.MediaType,
			Description: r.Overview,
		})
	}
	return matches, nil
}

// genresFor derives genre constraints. A similar request with a known
// seed borrows the seed's own genres; everything else maps prompt
// keywords through the taxonomy table. Failures degrade to an
// unconstrained popular query rather than failing the terminal link.
func (a *CatalogAdapter) genresFor(ctx context.Context, req *Request) []int {
	if req.Kind == KindSimilar && len(req.Seeds) == 1 && req.Seeds[0].ID > 0 {
		seed := req.Seeds[0]
		details, err := a.client.Details(ctx, seed.ID, string(seed.MediaType))
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("seed_id", seed.ID).
				Msg("seed details unavailable, using unconstrained discover")
			return nil
		}
		ids := make([]int, 0, seedGenreCap)
		for _, g := range details.Genres {
			if len(ids) == seedGenreCap {
				break
			}
			ids = append(ids, g.ID)
		}
		return ids
	}
	return GenresForPrompt(req.Prompt, req.MediaType)
}
