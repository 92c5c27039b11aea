// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package tmdb implements the catalog/metadata client. TMDB is the
// authoritative source for titles, artwork, genres, and watch providers;
// every recommendation is resolved against it before reaching a caller.
package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/config"
)

// discoverMinVotes keeps discover results above the obscurity floor.
// Unfiltered discover pages are dominated by titles nobody has rated.
const discoverMinVotes = 100

// Client is an HTTP client for the TMDB API (v3 paths, v4 bearer auth).
type Client struct {
	baseURL string
	apiKey  string
	region  string
	http    *httpx.Client
}

// New creates a TMDB client. Pacing uses x/time/rate against the
// configured requests-per-second budget; TMDB's transport quota is
// generous but not unlimited.
func New(cfg config.TMDBConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		// Burst of at least one, or a sub-1.0 budget could never fire.
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		region:  cfg.Region,
		http: httpx.New(httpx.Options{
			Name:    "tmdb",
			Timeout: cfg.Timeout,
			Limiter: limiter,
		}),
	}
}

// SearchTitle searches for titles of the given media type ("movie" or "tv").
func (c *Client) SearchTitle(ctx context.Context, query, mediaType string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp searchResponse
	if err := c.get(ctx, "/search/"+mediaType, params, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Results {
		if resp.Results[i].MediaType == "" {
			resp.Results[i].MediaType = mediaType
		}
	}
	return resp.Results, nil
}

// Details fetches full details for a single title.
func (c *Client) Details(ctx context.Context, id int, mediaType string) (*Details, error) {
	var resp Details
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", mediaType, id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Discover runs a filtered catalog query sorted by popularity.
func (c *Client) Discover(ctx context.Context, filter DiscoverFilter) ([]SearchResult, error) {
	mediaType := filter.MediaType
	if mediaType == "" {
		mediaType = "movie"
	}

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("vote_count.gte", strconv.Itoa(discoverMinVotes))
	if len(filter.GenreIDs) > 0 {
		ids := make([]string, len(filter.GenreIDs))
		for i, id := range filter.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if filter.Year > 0 {
		if mediaType == "tv" {
			params.Set("first_air_date_year", strconv.Itoa(filter.Year))
		} else {
			params.Set("primary_release_year", strconv.Itoa(filter.Year))
		}
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}

	var resp searchResponse
	if err := c.get(ctx, "/discover/"+mediaType, params, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Results {
		resp.Results[i].MediaType = mediaType
	}
	return resp.Results, nil
}

// WatchProviders returns the streaming providers offering a title in the
// configured region. Rental and purchase offers are folded in after
// flatrate so subscription services list first. An unknown region or a
// title with no offers returns an empty slice, not an error.
func (c *Client) WatchProviders(ctx context.Context, id int, mediaType string) ([]WatchProvider, error) {
	var resp watchProvidersResponse
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/watch/providers", mediaType, id), nil, &resp); err != nil {
		return nil, err
	}

	region, ok := resp.Results[c.region]
	if !ok {
		return nil, nil
	}

	seen := make(map[int]struct{})
	var providers []WatchProvider
	for _, group := range [][]WatchProvider{region.Flatrate, region.Rent, region.Buy} {
		for _, p := range group {
			if _, dup := seen[p.ProviderID]; dup {
				continue
			}
			seen[p.ProviderID] = struct{}{}
			providers = append(providers, p)
		}
	}
	return providers, nil
}

// GenreList fetches the catalog's genre taxonomy for a media type.
func (c *Client) GenreList(ctx context.Context, mediaType string) ([]Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
	return c.http.GetJSON(ctx, endpoint, headers, out)
}
