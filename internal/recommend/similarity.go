// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelharbor/internal/clients/tastedive"
	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/metrics"
	"github.com/tomtom215/reelharbor/internal/store"
	"github.com/tomtom215/reelharbor/internal/titlematch"
)

const similarityAdapterName = "similarity"

// SimilarityAdapter produces recommendations from the similarity graph.
//
// Every fetch issues two parallel sub-queries: the requested media type
// gets the primary share of the limit and the complementary type gets
// the remainder, concatenated primary-first. Each sub-query consumes
// one unit of the shared fixed-window quota, increment-then-check.
//
// The first primary match is validated against the queried title. A
// failed validation triggers exactly one retry with base titles
// (sequel and chapter suffixes stripped). Zero results never trigger
// the retry: an empty answer means the graph does not know the title,
// and the base title would be a different work.
type SimilarityAdapter struct {
	client SimilarityClient
	store  store.Store
	opts   Options
}

// NewSimilarityAdapter creates the similarity provider adapter.
func NewSimilarityAdapter(client SimilarityClient, st store.Store, opts Options) *SimilarityAdapter {
	return &SimilarityAdapter{client: client, store: st, opts: opts}
}

// Name implements Adapter.
func (a *SimilarityAdapter) Name() string { return similarityAdapterName }

// Available implements Adapter. The adapter is unavailable while the
// shared fixed-window quota is exhausted; the check is advisory and does
// not consume a unit, so Fetch still enforces the hard cap itself.
func (a *SimilarityAdapter) Available(ctx context.Context) bool {
	count, err := a.store.Count(ctx, store.RateKey(similarityAdapterName))
	if err != nil {
		// A broken counter should not hide the provider; Fetch will
		// surface the real error.
		logging.Ctx(ctx).Warn().Err(err).Msg("similarity rate counter unreadable")
		return true
	}
	return count < a.opts.SimilarityHourlyLimit
}

// Fetch implements Adapter.
func (a *SimilarityAdapter) Fetch(ctx context.Context, req *Request) ([]Match, error) {
	if req.Kind == KindDiscover {
		return a.fetchFromPrompt(ctx, req)
	}
	return a.fetchForSeeds(ctx, req, req.SeedTitles(), true)
}

// fetchForSeeds runs the dual-type query for a set of seed titles.
// allowRetry guards the single base-title retry.
func (a *SimilarityAdapter) fetchForSeeds(ctx context.Context, req *Request, titles []string, allowRetry bool) ([]Match, error) {
	q := titlematch.BuildQuery(titles, similarityType(req.MediaType))
	if q == "" {
		return nil, fmt.Errorf("%w: no usable seed titles", ErrUnavailable)
	}

	primaryN, compN := a.splitLimit(req.Limit)

	if err := a.consumeUnit(ctx); err != nil {
		return nil, err
	}
	if compN > 0 {
		// The complementary sub-query is best effort: when its quota
		// unit is unavailable we degrade to primary-only rather than
		// failing the fetch.
		if err := a.consumeUnit(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("skipping complementary similarity sub-query")
			compN = 0
		}
	}

	primaryType := similarityType(req.MediaType)
	compType := similarityType(req.MediaType.Complement())

	var primary, complementary []tastedive.Match
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.client.Query(gctx, q, primaryType, primaryN)
		if err != nil {
			return fmt.Errorf("%w: primary similarity query: %v", ErrTransport, err)
		}
		primary = res
		return nil
	})
	if compN > 0 {
		g.Go(func() error {
			res, err := a.client.Query(gctx, q, compType, compN)
			if err != nil {
				return fmt.Errorf("%w: complementary similarity query: %v", ErrTransport, err)
			}
			complementary = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validation only fires on a present-but-wrong first match. Zero
	// primary results advance the chain without a retry.
	if len(primary) > 0 {
		queried := titles[0]
		if !titlematch.Validate(queried, primary[0].Name, primaryType, primary[0].Type) {
			if !allowRetry {
				return nil, fmt.Errorf("%w: %q resolved to %q", ErrValidationFailed, queried, primary[0].Name)
			}
			baseTitles, changed := baseTitlesOf(titles)
			if !changed {
				return nil, fmt.Errorf("%w: %q resolved to %q", ErrValidationFailed, queried, primary[0].Name)
			}
			logging.Ctx(ctx).Debug().
				Str("queried", queried).
				Str("got", primary[0].Name).
				Msg("similarity validation failed, retrying with base titles")
			return a.fetchForSeeds(ctx, req, baseTitles, false)
		}
	}

	out := make([]Match, 0, len(primary)+len(complementary))
	out = appendSimilarityMatches(out, primary)
	out = appendSimilarityMatches(out, complementary)
	return out, nil
}

// fetchFromPrompt serves discover requests by querying the graph for
// each title mentioned in the prompt, sequentially, until the limit is
// reached. Titles whose first match fails validation (after the one
// base-title retry) are skipped rather than failing the fetch.
func (a *SimilarityAdapter) fetchFromPrompt(ctx context.Context, req *Request) ([]Match, error) {
	titles := titlematch.ExtractTitles(req.Prompt)
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: prompt mentions no titles", ErrUnavailable)
	}

	perTitle := int(math.Ceil(float64(req.Limit) / float64(len(titles))))
	primaryType := similarityType(req.MediaType)

	seen := make(map[string]struct{})
	var out []Match
	for _, title := range titles {
		if len(out) >= req.Limit {
			break
		}
		if err := a.consumeUnit(ctx); err != nil {
			if len(out) > 0 {
				break
			}
			return nil, err
		}

		matches, err := a.queryValidated(ctx, title, primaryType, perTitle, true)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("title", title).Msg("skipping extracted title")
			continue
		}
		for _, m := range matches {
			key := titlematch.Normalize(m.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, m)
			if len(out) >= req.Limit {
				break
			}
		}
	}
	return out, nil
}

// queryValidated runs one single-type query for one title, applying the
// same validate-then-base-retry discipline as the seed path.
func (a *SimilarityAdapter) queryValidated(ctx context.Context, title, resultType string, limit int, allowRetry bool) ([]Match, error) {
	q := titlematch.BuildQuery([]string{title}, resultType)
	res, err := a.client.Query(ctx, q, resultType, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity query: %v", ErrTransport, err)
	}
	if len(res) > 0 && !titlematch.Validate(title, res[0].Name, resultType, res[0].Type) {
		base, ok := titlematch.BaseTitle(title)
		if !allowRetry || !ok {
			return nil, fmt.Errorf("%w: %q resolved to %q", ErrValidationFailed, title, res[0].Name)
		}
		if err := a.consumeUnit(ctx); err != nil {
			return nil, err
		}
		return a.queryValidated(ctx, base, resultType, limit, false)
	}
	return appendSimilarityMatches(nil, res), nil
}

// consumeUnit spends one unit of the shared window quota,
// increment-then-check. The first increment in a window sets the
// window expiry atomically in the store.
func (a *SimilarityAdapter) consumeUnit(ctx context.Context) error {
	count, err := a.store.Incr(ctx, store.RateKey(similarityAdapterName), a.opts.SimilarityWindow)
	if err != nil {
		return fmt.Errorf("%w: rate counter: %v", ErrTransport, err)
	}
	if count > a.opts.SimilarityHourlyLimit {
		metrics.RateLimitRejections.WithLabelValues(similarityAdapterName).Inc()
		return fmt.Errorf("%w: %d/%d similarity units used this window", ErrRateLimited, count, a.opts.SimilarityHourlyLimit)
	}
	return nil
}

// splitLimit divides the request limit between the primary and
// complementary media types. The primary share rounds up, so the
// requested type always dominates and a limit of 1 stays primary-only.
func (a *SimilarityAdapter) splitLimit(limit int) (primary, complementary int) {
	primary = int(math.Ceil(a.opts.PrimaryShare * float64(limit)))
	if primary < 1 {
		primary = 1
	}
	if primary > limit {
		primary = limit
	}
	return primary, limit - primary
}

// baseTitlesOf strips sequel suffixes from each title, reporting
// whether any title actually changed.
func baseTitlesOf(titles []string) ([]string, bool) {
	out := make([]string, len(titles))
	changed := false
	for i, t := range titles {
		if base, ok := titlematch.BaseTitle(t); ok {
			out[i] = base
			changed = true
		} else {
			out[i] = t
		}
	}
	return out, changed
}

func appendSimilarityMatches(dst []Match, src []tastedive.Match) []Match {
	for _, m := range src {
		mt, ok := mediaTypeFromSimilarity(m.Type)
		if !ok {
			continue
		}
		dst = append(dst, Match{
			Name:        m.Name,
			MediaType:   mt,
			Description: m.Description,
			YoutubeRef:  m.YoutubeRef,
			WikiRef:     m.WikiRef,
		})
	}
	return dst
}

// similarityType maps the catalog vocabulary onto the similarity
// graph's ("tv" is called "show" over there).
func similarityType(m MediaType) string {
	if m == MediaTypeTV {
		return "show"
	}
	return "movie"
}

func mediaTypeFromSimilarity(t string) (MediaType, bool) {
	switch t {
	case "movie":
		return MediaTypeMovie, true
	case "show":
		return MediaTypeTV, true
	default:
		return "", false
	}
}
