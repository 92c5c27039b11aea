// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/metrics"
	"github.com/tomtom215/reelharbor/internal/store"
)

// Orchestrator drives the per-kind fallback chains. It is stateless per
// request; the warned set only deduplicates unavailability log noise.
type Orchestrator struct {
	chains Chains
	store  store.Store
	opts   Options

	warnedMu sync.Mutex
	warned   map[string]struct{}
}

// NewOrchestrator creates an orchestrator over a static chain registry.
func NewOrchestrator(chains Chains, st store.Store, opts Options) *Orchestrator {
	return &Orchestrator{
		chains: chains,
		store:  st,
		opts:   opts,
		warned: make(map[string]struct{}),
	}
}

// Run executes the fallback chain for the request and returns the first
// adapter outcome with at least one valid match.
//
// Error contract: ErrInvalidInput for a bad request, ErrChainExhausted
// when every adapter failed or returned nothing. No other error leaves
// this method; adapter failures are logged and advance the chain.
func (o *Orchestrator) Run(ctx context.Context, req *Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		metrics.OrchestrationDuration.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	}()

	key := o.cacheKey(req)
	if outcome := o.cached(ctx, key); outcome != nil {
		return outcome, nil
	}

	chain, ok := o.chains[req.Kind]
	if !ok || len(chain) == 0 {
		return nil, fmt.Errorf("%w: no chain for kind %q", ErrInvalidInput, req.Kind)
	}

	log := logging.Ctx(ctx)
	for i, adapter := range chain {
		name := adapter.Name()

		if !adapter.Available(ctx) {
			metrics.ProviderUnavailable.WithLabelValues(name).Inc()
			o.warnOnce(ctx, name)
			if i < len(chain)-1 {
				metrics.ChainFallbacks.WithLabelValues(string(req.Kind), name).Inc()
			}
			continue
		}

		matches, err := adapter.Fetch(ctx, req)
		switch {
		case err != nil:
			metrics.ProviderRequests.WithLabelValues(name, "error").Inc()
			log.Warn().Err(err).
				Str("kind", string(req.Kind)).
				Str("provider", name).
				Msg("provider failed, advancing chain")
		case len(matches) == 0:
			metrics.ProviderRequests.WithLabelValues(name, "empty").Inc()
			log.Debug().
				Str("kind", string(req.Kind)).
				Str("provider", name).
				Msg("provider returned no matches, advancing chain")
		default:
			metrics.ProviderRequests.WithLabelValues(name, "success").Inc()
			outcome := &Outcome{
				Results:    matches,
				Provider:   name,
				IsFallback: i > 0,
			}
			o.cacheOutcome(ctx, key, outcome)
			return outcome, nil
		}

		if i < len(chain)-1 {
			metrics.ChainFallbacks.WithLabelValues(string(req.Kind), name).Inc()
		}
	}

	metrics.ChainExhausted.WithLabelValues(string(req.Kind)).Inc()
	return nil, fmt.Errorf("%w: kind %s", ErrChainExhausted, req.Kind)
}

// cacheKey builds the deterministic store key for a request. Keys are
// functions of kind plus normalized input only; two users asking the
// same question share an entry.
func (o *Orchestrator) cacheKey(req *Request) string {
	switch req.Kind {
	case KindSimilar:
		return store.SimilarKey(string(req.MediaType), req.Seeds[0].Title)
	case KindBlend:
		return store.BlendKey(string(req.MediaType), req.SeedTitles())
	default:
		return store.DiscoverKey(string(req.MediaType) + "|" + req.Prompt)
	}
}

func (o *Orchestrator) cached(ctx context.Context, key string) *Outcome {
	data, found, err := o.store.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		return nil
	}
	if !found {
		metrics.CacheMisses.WithLabelValues("orchestrator").Inc()
		return nil
	}

	var outcome Outcome
	if err := json.Unmarshal(data, &outcome); err != nil || len(outcome.Results) == 0 {
		// A corrupt entry is treated as a miss; the fresh outcome
		// overwrites it.
		metrics.CacheMisses.WithLabelValues("orchestrator").Inc()
		return nil
	}
	metrics.CacheHits.WithLabelValues("orchestrator").Inc()
	outcome.Cached = true
	return &outcome
}

// cacheOutcome stores a winning outcome. Only non-empty results reach
// this point; empty and invalid results are never cached.
func (o *Orchestrator) cacheOutcome(ctx context.Context, key string, outcome *Outcome) {
	data, err := json.Marshal(outcome)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to encode outcome for cache")
		return
	}
	if err := o.store.Set(ctx, key, data, o.opts.CacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to cache outcome")
	}
}

// warnOnce logs provider unavailability once per orchestrator lifetime
// per provider. Cool-downs recur; the log line does not need to.
func (o *Orchestrator) warnOnce(ctx context.Context, provider string) {
	o.warnedMu.Lock()
	_, seen := o.warned[provider]
	if !seen {
		o.warned[provider] = struct{}{}
	}
	o.warnedMu.Unlock()

	if !seen {
		logging.Ctx(ctx).Warn().Str("provider", provider).Msg("provider unavailable, skipping")
	}
}
