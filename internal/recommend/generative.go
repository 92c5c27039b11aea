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
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/store"
)

const generativeAdapterName = "generative"

// generativeItem is the object shape the prompt demands from the model.
type generativeItem struct {
	Title     string `json:"title"`
	Year      int    `json:"year"`
	MediaType string `json:"media_type"`
	Reason    string `json:"reason"`
}

// GenerativeAdapter produces recommendations by prompting a completion
// model for a strict JSON array. Output that does not parse is a hard
// ErrMalformedOutput, never a silent empty result.
type GenerativeAdapter struct {
	client GenerativeClient
	store  store.Store
	opts   Options
}

// NewGenerativeAdapter creates the generative provider adapter.
func NewGenerativeAdapter(client GenerativeClient, st store.Store, opts Options) *GenerativeAdapter {
	return &GenerativeAdapter{client: client, store: st, opts: opts}
}

// Name implements Adapter.
func (a *GenerativeAdapter) Name() string { return generativeAdapterName }

// Available reports false while a quota cool-down marker is present in
// the store. The marker is written by Fetch on an upstream 429; it
// affects the next availability check, not the call that hit the quota.
func (a *GenerativeAdapter) Available(ctx context.Context) bool {
	_, found, err := a.store.Get(ctx, store.CooldownKey(generativeAdapterName))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("cooldown lookup failed, assuming available")
		return true
	}
	return !found
}

// Fetch implements Adapter.
func (a *GenerativeAdapter) Fetch(ctx context.Context, req *Request) ([]Match, error) {
	prompt := a.buildPrompt(req)

	text, err := a.client.Complete(ctx, prompt)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Status == http.StatusTooManyRequests {
			a.startCooldown(ctx)
			return nil, fmt.Errorf("%w: generative quota exhausted: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	items, err := parseGenerativeOutput(text)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(items))
	for _, it := range items {
		mt, ok := normalizeGenerativeMediaType(it.MediaType)
		if !ok || strings.TrimSpace(it.Title) == "" {
			continue
		}
		matches = append(matches, Match{
			Name:        strings.TrimSpace(it.Title),
			MediaType:   mt,
			Description: strings.TrimSpace(it.Reason),
		})
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no usable items in generative output", ErrMalformedOutput)
	}
	return matches, nil
}

func (a *GenerativeAdapter) startCooldown(ctx context.Context) {
	key := store.CooldownKey(generativeAdapterName)
	if err := a.store.Set(ctx, key, []byte("1"), a.opts.GenerativeCooldown); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to record generative cooldown")
		return
	}
	logging.Ctx(ctx).Warn().
		Dur("cooldown", a.opts.GenerativeCooldown).
		Msg("generative provider entering quota cooldown")
}

// buildPrompt assembles the structured prompt. The model is told to
// answer with nothing but the JSON array; parseGenerativeOutput still
// tolerates a markdown code fence since models add them anyway.
func (a *GenerativeAdapter) buildPrompt(req *Request) string {
	var b strings.Builder
	subject := "movies"
	if req.MediaType == MediaTypeTV {
		subject = "TV shows"
	}

	fmt.Fprintf(&b, "You are a %s recommendation engine.\n", subject)
	switch req.Kind {
	case KindBlend:
		fmt.Fprintf(&b, "Recommend exactly %d titles for someone who loves all of the following: %s.\n",
			req.Limit, strings.Join(req.SeedTitles(), "; "))
		b.WriteString("Do not recommend any of the listed titles themselves.\n")
	default:
		fmt.Fprintf(&b, "Recommend exactly %d titles matching this request: %s\n", req.Limit, req.Prompt)
	}
	b.WriteString("Respond with ONLY a JSON array, no prose and no markdown.\n")
	b.WriteString(`Each element must be an object of the form {"title": string, "year": number, "media_type": "movie" or "tv", "reason": string}.` + "\n")
	b.WriteString("The reason must be one short sentence tailored to the request.")
	return b.String()
}

// parseGenerativeOutput strictly parses the model's reply. The only
// leniency is stripping a surrounding markdown code fence and locating
// the array within stray prose; the array itself must be valid JSON.
func parseGenerativeOutput(text string) ([]generativeItem, error) {
	cleaned := stripCodeFence(text)

	start := strings.IndexByte(cleaned, '[')
	end := strings.LastIndexByte(cleaned, ']')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array found", ErrMalformedOutput)
	}

	var items []generativeItem
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrMalformedOutput)
	}
	return items, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalizeGenerativeMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return MediaTypeMovie, true
	case "tv", "show", "tv show", "series", "tv series":
		return MediaTypeTV, true
	default:
		return "", false
	}
}
