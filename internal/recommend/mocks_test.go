// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/clients/tastedive"
	"github.com/tomtom215/reelharbor/internal/clients/tmdb"
)

// mockCatalog implements CatalogClient with canned responses.
type mockCatalog struct {
	mu sync.Mutex

	searchResults  map[string][]tmdb.SearchResult // keyed by query
	searchErr      error
	details        map[int]*tmdb.Details
	detailsErr     error
	discoverRes    []tmdb.SearchResult
	discoverErr    error
	watchProviders map[int][]tmdb.WatchProvider
	watchErr       error

	searchCalls   []string
	discoverCalls []tmdb.DiscoverFilter
	detailsCalls  []int
}

func (m *mockCatalog) SearchTitle(_ context.Context, query, _ string) ([]tmdb.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls = append(m.searchCalls, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults[query], nil
}

func (m *mockCatalog) Details(_ context.Context, id int, _ string) (*tmdb.Details, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailsCalls = append(m.detailsCalls, id)
	if m.detailsErr != nil {
		return nil, m.detailsErr
	}
	d, ok := m.details[id]
	if !ok {
		return nil, &httpx.StatusError{Status: 404, Body: "not found"}
	}
	return d, nil
}

func (m *mockCatalog) Discover(_ context.Context, filter tmdb.DiscoverFilter) ([]tmdb.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoverCalls = append(m.discoverCalls, filter)
	if m.discoverErr != nil {
		return nil, m.discoverErr
	}
	return m.discoverRes, nil
}

func (m *mockCatalog) WatchProviders(_ context.Context, id int, _ string) ([]tmdb.WatchProvider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	return m.watchProviders[id], nil
}

// similarityCall records one Query invocation.
type similarityCall struct {
	q          string
	resultType string
	limit      int
}

// mockSimilarity implements SimilarityClient via a response function.
type mockSimilarity struct {
	mu    sync.Mutex
	calls []similarityCall
	fn    func(q, resultType string, limit int) ([]tastedive.Match, error)
}

func (m *mockSimilarity) Query(_ context.Context, q, resultType string, limit int) ([]tastedive.Match, error) {
	m.mu.Lock()
	m.calls = append(m.calls, similarityCall{q: q, resultType: resultType, limit: limit})
	m.mu.Unlock()
	return m.fn(q, resultType, limit)
}

// mockGenerative implements GenerativeClient with a fixed reply.
type mockGenerative struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
}

func (m *mockGenerative) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// fakeAdapter is a scripted Adapter for orchestrator tests.
type fakeAdapter struct {
	name      string
	available bool
	matches   []Match
	err       error
	calls     int
	lastReq   *Request
}

func (f *fakeAdapter) Name() string                   { return f.name }
func (f *fakeAdapter) Available(context.Context) bool { return f.available }

func (f *fakeAdapter) Fetch(_ context.Context, req *Request) ([]Match, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

// testOptions returns Options with production-shaped defaults for tests.
func testOptions() Options {
	return Options{
		DefaultLimit:          10,
		MaxLimit:              25,
		CacheTTL:              time.Hour,
		PrimaryShare:          0.7,
		SimilarityHourlyLimit: 300,
		SimilarityWindow:      time.Hour,
		GenerativeCooldown:    5 * time.Minute,
	}
}
