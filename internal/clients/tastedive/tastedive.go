// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package tastedive implements the similarity-graph client. TasteDive
// answers "people who liked X also liked" queries across media types;
// the similarity adapter turns its matches into recommendations.
//
// TasteDive's own vocabulary uses "movie" and "show" as result types.
// The translation to and from the catalog's "movie"/"tv" vocabulary
// happens in the adapter, not here.
package tastedive

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/config"
)

// Match is one similar-content entry. Description and the reference URLs
// are only populated when verbose info is requested, and may still be
// empty for obscure titles.
type Match struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"wTeaser"`
	YoutubeRef  string `json:"yUrl"`
	WikiRef     string `json:"wUrl"`
}

type similarResponse struct {
	Similar struct {
		Info    []Match `json:"info"`
		Results []Match `json:"results"`
	} `json:"similar"`
}

// Client is an HTTP client for the TasteDive similarity API.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpx.Client
}

// New creates a TasteDive client. The hourly quota is enforced by the
// orchestration layer through the shared store, not here; this client
// only carries the circuit breaker.
func New(cfg config.TasteDiveConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: httpx.New(httpx.Options{
			Name:    "tastedive",
			Timeout: cfg.Timeout,
		}),
	}
}

// Query asks for content similar to q, restricted to resultType
// ("movie" or "show"), returning at most limit matches. Verbose info
// (teaser text and reference URLs) is always requested.
func (c *Client) Query(ctx context.Context, q, resultType string, limit int) ([]Match, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("type", resultType)
	params.Set("info", "1")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("k", c.apiKey)

	var resp similarResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/similar?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Similar.Results, nil
}
