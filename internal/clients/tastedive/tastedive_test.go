// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package tastedive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/reelharbor/internal/config"
)

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/similar" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "movie:Inception" {
			t.Errorf("unexpected q %q", got)
		}
		if got := q.Get("type"); got != "movie" {
			t.Errorf("unexpected type %q", got)
		}
		if got := q.Get("limit"); got != "7" {
			t.Errorf("unexpected limit %q", got)
		}
		if got := q.Get("info"); got != "1" {
			t.Errorf("expected info=1, got %q", got)
		}
		if got := q.Get("k"); got != "td-key" {
			t.Errorf("unexpected api key %q", got)
		}
		_, _ = w.Write([]byte(`{
			"similar": {
				"info": [{"name": "Inception", "type": "movie"}],
				"results": [
					{"name": "Interstellar", "type": "movie", "wTeaser": "A team travels through a wormhole.", "yUrl": "https://youtu.be/x", "wUrl": "https://en.wikipedia.org/wiki/Interstellar_(film)"},
					{"name": "Tenet", "type": "movie"}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := New(config.TasteDiveConfig{
		BaseURL: srv.URL,
		APIKey:  "td-key",
		Timeout: 5 * time.Second,
	})

	matches, err := c.Query(context.Background(), "movie:Inception", "movie", 7)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	first := matches[0]
	if first.Name != "Interstellar" || first.Type != "movie" {
		t.Errorf("unexpected first match: %+v", first)
	}
	if first.Description == "" || first.YoutubeRef == "" || first.WikiRef == "" {
		t.Errorf("expected verbose info populated: %+v", first)
	}
	if matches[1].Description != "" {
		t.Errorf("expected empty description preserved: %+v", matches[1])
	}
}

func TestQueryEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"similar": {"info": [], "results": []}}`))
	}))
	defer srv.Close()

	c := New(config.TasteDiveConfig{BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second})

	matches, err := c.Query(context.Background(), "movie:Obscure", "movie", 5)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}
