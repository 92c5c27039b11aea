// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package gemini implements the generative-completion client. The
// generative adapter builds structured prompts and parses the raw text
// this client returns; nothing here knows about recommendations.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/reelharbor/internal/clients/httpx"
	"github.com/tomtom215/reelharbor/internal/config"
)

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Client is an HTTP client for the Gemini generateContent API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *httpx.Client
}

// New creates a Gemini client.
func New(cfg config.GeminiConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http: httpx.New(httpx.Options{
			Name:    "gemini",
			Timeout: cfg.Timeout,
		}),
	}
}

// Complete sends prompt to the model and returns the raw completion text.
// The low temperature keeps output close to the requested JSON shape.
//
// Quota errors surface as *httpx.StatusError with status 429 so callers
// can distinguish exhausted quota from a broken upstream.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 2048,
		},
	}

	var resp generateResponse
	if err := c.http.PostJSON(ctx, endpoint, nil, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("gemini returned an empty completion")
	}
	return text, nil
}
