// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/store"
)

func discoverReq(limit int) *Request {
	return &Request{
		Kind:      KindDiscover,
		Prompt:    "mind-bending heist movies",
		MediaType: MediaTypeMovie,
		Limit:     limit,
	}
}

func TestGenerativeFetchParsesFencedArray(t *testing.T) {
	client := &mockGenerative{text: "```json\n[\n" +
		`{"title": "Inception", "year": 2010, "media_type": "movie", "reason": "A heist inside dreams."},` + "\n" +
		`{"title": "Dark", "year": 2017, "media_type": "tv series", "reason": "Layered timelines."},` + "\n" +
		`{"title": "Mystery Item", "year": 2020, "media_type": "podcast", "reason": "Wrong type."}` + "\n]\n```"}
	a := NewGenerativeAdapter(client, store.NewMemoryStore(), testOptions())

	matches, err := a.Fetch(context.Background(), discoverReq(3))
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches (unknown type skipped), got %d: %+v", len(matches), matches)
	}
	if matches[0].Name != "Inception" || matches[0].MediaType != MediaTypeMovie {
		t.Errorf("unexpected first match: %+v", matches[0])
	}
	if matches[0].Description != "A heist inside dreams." {
		t.Errorf("reason not carried over: %+v", matches[0])
	}
	if matches[1].Name != "Dark" || matches[1].MediaType != MediaTypeTV {
		t.Errorf("unexpected second match: %+v", matches[1])
	}
}

func TestGenerativeFetchMalformedOutput(t *testing.T) {
	for _, text := range []string{
		"Sure! Here are some great movies you might enjoy.",
		`[{"title": "Broken"`,
		"[]",
		`[{"title": "  ", "media_type": "movie"}]`,
	} {
		client := &mockGenerative{text: text}
		a := NewGenerativeAdapter(client, store.NewMemoryStore(), testOptions())

		_, err := a.Fetch(context.Background(), discoverReq(5))
		if !errors.Is(err, ErrMalformedOutput) {
			t.Errorf("text %q: expected ErrMalformedOutput, got %v", text, err)
		}
	}
}

func TestGenerativeFetchTransportError(t *testing.T) {
	client := &mockGenerative{err: errors.New("connection reset")}
	a := NewGenerativeAdapter(client, store.NewMemoryStore(), testOptions())

	_, err := a.Fetch(context.Background(), discoverReq(5))
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestGenerativeQuotaStartsCooldown(t *testing.T) {
	st := store.NewMemoryStore()
	client := &mockGenerative{err: &httpx.StatusError{Status: http.StatusTooManyRequests, Body: "quota"}}
	a := NewGenerativeAdapter(client, st, testOptions())

	ctx := context.Background()
	if !a.Available(ctx) {
		t.Fatal("adapter should be available before the quota rejection")
	}

	_, err := a.Fetch(ctx, discoverReq(5))
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// The cool-down affects the next availability check, not the call
	// that hit the quota.
	if a.Available(ctx) {
		t.Error("adapter should be unavailable during cooldown")
	}
	if _, found, _ := st.Get(ctx, store.CooldownKey("generative")); !found {
		t.Error("expected cooldown marker in store")
	}
}

func TestGenerativeBlendPromptNamesSeeds(t *testing.T) {
	client := &mockGenerative{text: `[{"title": "Heat", "year": 1995, "media_type": "movie", "reason": "r"}]`}
	a := NewGenerativeAdapter(client, store.NewMemoryStore(), testOptions())

	req := &Request{
		Kind:      KindBlend,
		MediaType: MediaTypeMovie,
		Limit:     5,
		Seeds: []SeedRef{
			{Title: "Inception", MediaType: MediaTypeMovie},
			{Title: "The Prestige", MediaType: MediaTypeMovie},
		},
	}
	if _, err := a.Fetch(context.Background(), req); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(client.prompts))
	}
	prompt := client.prompts[0]
	for _, want := range []string{"Inception", "The Prestige", "exactly 5", "JSON array"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
