// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import (
	"reflect"
	"testing"
)

func TestGenresForPrompt(t *testing.T) {
	tests := []struct {
		name      string
		prompt    string
		mediaType MediaType
		want      []int
	}{
		{
			name:      "single mood word",
			prompt:    "something funny for tonight",
			mediaType: MediaTypeMovie,
			want:      []int{35},
		},
		{
			name:      "two genres in prompt order",
			prompt:    "a scary but romantic story",
			mediaType: MediaTypeMovie,
			want:      []int{27, 10749},
		},
		{
			name:      "punctuation and case ignored",
			prompt:    "Scary, CREEPY movies!",
			mediaType: MediaTypeMovie,
			want:      []int{27},
		},
		{
			name:      "synonyms collapse to one genre",
			prompt:    "funny hilarious laugh",
			mediaType: MediaTypeMovie,
			want:      []int{35},
		},
		{
			name:      "capped at three genres",
			prompt:    "funny scary romantic western war",
			mediaType: MediaTypeMovie,
			want:      []int{35, 27, 10749},
		},
		{
			name:      "tv collapses action onto combined genre",
			prompt:    "action adventure",
			mediaType: MediaTypeTV,
			want:      []int{10759},
		},
		{
			name:      "multi word term",
			prompt:    "a feel good evening",
			mediaType: MediaTypeMovie,
			want:      []int{35},
		},
		{
			name:      "no mood terms",
			prompt:    "whatever you think is best",
			mediaType: MediaTypeMovie,
			want:      nil,
		},
		{
			name:      "substring of a word does not match",
			prompt:    "cowboys in spaceships",
			mediaType: MediaTypeMovie,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenresForPrompt(tt.prompt, tt.mediaType)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenresForPrompt(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestGenresForPromptDeterministic(t *testing.T) {
	prompt := "funny scary romantic war western history"
	first := GenresForPrompt(prompt, MediaTypeMovie)
	for i := 0; i < 50; i++ {
		if got := GenresForPrompt(prompt, MediaTypeMovie); !reflect.DeepEqual(got, first) {
			t.Fatalf("iteration %d: got %v, want %v", i, got, first)
		}
	}
}
