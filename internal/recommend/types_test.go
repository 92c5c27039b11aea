// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name: "valid similar",
			req: Request{
				Kind:      KindSimilar,
				Seeds:     []SeedRef{{ID: 1, Title: "Inception", MediaType: MediaTypeMovie}},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
		},
		{
			name: "similar with two seeds",
			req: Request{
				Kind: KindSimilar,
				Seeds: []SeedRef{
					{Title: "Inception", MediaType: MediaTypeMovie},
					{Title: "Heat", MediaType: MediaTypeMovie},
				},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "valid blend",
			req: Request{
				Kind: KindBlend,
				Seeds: []SeedRef{
					{Title: "Inception", MediaType: MediaTypeMovie},
					{Title: "Heat", MediaType: MediaTypeMovie},
				},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
		},
		{
			name: "blend with one seed",
			req: Request{
				Kind:      KindBlend,
				Seeds:     []SeedRef{{Title: "Inception", MediaType: MediaTypeMovie}},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "blend with six seeds",
			req: Request{
				Kind: KindBlend,
				Seeds: []SeedRef{
					{Title: "A"}, {Title: "B"}, {Title: "C"},
					{Title: "D"}, {Title: "E"}, {Title: "F"},
				},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "blend with cosmetic duplicate seeds",
			req: Request{
				Kind: KindBlend,
				Seeds: []SeedRef{
					{Title: "The Matrix", MediaType: MediaTypeMovie},
					{Title: "the  matrix", MediaType: MediaTypeMovie},
				},
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "valid discover",
			req: Request{
				Kind:      KindDiscover,
				Prompt:    "something funny with robots",
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
		},
		{
			name: "discover with blank prompt",
			req: Request{
				Kind:      KindDiscover,
				Prompt:    "   ",
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			req: Request{
				Kind:      Kind("surprise"),
				MediaType: MediaTypeMovie,
				Limit:     10,
			},
			wantErr: true,
		},
		{
			name: "zero limit",
			req: Request{
				Kind:      KindDiscover,
				Prompt:    "anything",
				MediaType: MediaTypeMovie,
			},
			wantErr: true,
		},
		{
			name: "unknown media type",
			req: Request{
				Kind:      KindDiscover,
				Prompt:    "anything",
				MediaType: MediaType("podcast"),
				Limit:     10,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseMediaType(t *testing.T) {
	if mt, err := ParseMediaType("movie"); err != nil || mt != MediaTypeMovie {
		t.Errorf("movie: got %q, %v", mt, err)
	}
	if mt, err := ParseMediaType("tv"); err != nil || mt != MediaTypeTV {
		t.Errorf("tv: got %q, %v", mt, err)
	}
	if _, err := ParseMediaType("book"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("book: expected ErrInvalidInput, got %v", err)
	}
}

func TestMediaTypeComplement(t *testing.T) {
	if MediaTypeMovie.Complement() != MediaTypeTV {
		t.Error("movie complement should be tv")
	}
	if MediaTypeTV.Complement() != MediaTypeMovie {
		t.Error("tv complement should be movie")
	}
}

func TestOptionsClampLimit(t *testing.T) {
	opts := Options{DefaultLimit: 10, MaxLimit: 25}
	if got := opts.ClampLimit(0); got != 10 {
		t.Errorf("zero limit: got %d, want default 10", got)
	}
	if got := opts.ClampLimit(-3); got != 10 {
		t.Errorf("negative limit: got %d, want default 10", got)
	}
	if got := opts.ClampLimit(100); got != 25 {
		t.Errorf("oversized limit: got %d, want max 25", got)
	}
	if got := opts.ClampLimit(7); got != 7 {
		t.Errorf("in-range limit: got %d, want 7", got)
	}
}
