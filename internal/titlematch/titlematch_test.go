// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package titlematch

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Wick: Chapter 4", "John Wick Chapter 4"},
		{"The Good, the Bad and the Ugly", "The Good the Bad and the Ugly"},
		{"  spaced   out  ", "spaced out"},
		{"plain title", "plain title"},
		{":,", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"John Wick: Chapter 4",
		"The Good, the Bad and the Ugly",
		"  lots   of   space  ",
		"Amélie",
		"10,000 BC: The Beginning",
	}

	for _, s := range inputs {
		once := Sanitize(s)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		prefix string
		want   string
	}{
		{"single", []string{"Inception"}, "movie", "movie:Inception"},
		{"pair", []string{"Breaking Bad", "Death Note"}, "show", "show:Breaking Bad, show:Death Note"},
		{"sanitized", []string{"John Wick: Chapter 4"}, "movie", "movie:John Wick Chapter 4"},
		{"skips empty", []string{"Dune", ":,"}, "movie", "movie:Dune"},
		{"five titles", []string{"A1", "B2", "C3", "D4", "E5"}, "movie",
			"movie:A1, movie:B2, movie:C3, movie:D4, movie:E5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.titles, tt.prefix); got != tt.want {
				t.Errorf("BuildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBaseTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Zootopia 2", "Zootopia", true},
		{"John Wick: Chapter 4", "John Wick", true},
		{"Rocky III", "Rocky", true},
		{"The Godfather Part II", "The Godfather", true},
		{"Kill Bill: Vol. 2", "Kill Bill", true},
		{"Guardians Volume 3", "Guardians", true},
		{"Star Wars: Episode IX", "Star Wars", true},
		{"Inception", "", false},
		{"Se7en", "", false},
		{"42", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := BaseTitle(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BaseTitle(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScoreReflexive(t *testing.T) {
	for _, s := range []string{"Inception", "the matrix", "John Wick: Chapter 4", "x y z"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreContainment(t *testing.T) {
	if got := Score("Dune", "Dune Part Two"); got != 0.8 {
		t.Errorf("containment score = %v, want 0.8", got)
	}
	// Containment is symmetric.
	if got := Score("Dune Part Two", "Dune"); got != 0.8 {
		t.Errorf("reverse containment score = %v, want 0.8", got)
	}
}

func TestScoreJaccardSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"the quick fox", "the lazy fox"},
		{"breaking bad", "better call saul"},
		{"alpha beta gamma", "gamma delta"},
	}

	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q, %q)=%v != Score(%q, %q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreJaccardValue(t *testing.T) {
	// {the, quick, fox} vs {the, lazy, fox}: intersection 2, union 4.
	got := Score("the quick fox", "the lazy fox")
	if got != 0.5 {
		t.Errorf("jaccard score = %v, want 0.5", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score("", "anything"); got != 0 {
		t.Errorf("Score with empty query = %v, want 0", got)
	}
	if got := Score("anything", "!!!"); got != 0 {
		t.Errorf("Score with empty-normalizing candidate = %v, want 0", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		firstName string
		wantType  string
		gotType   string
		want      bool
	}{
		{"exact match", "Inception", "Inception", "movie", "movie", true},
		{"case and punctuation", "WALL-E", "wall e", "movie", "movie", true},
		{"type mismatch", "Inception", "Inception", "movie", "show", false},
		{"wrong content", "Inception", "Grown Ups 2", "movie", "movie", false},
		{"containment passes", "Dune", "Dune Part Two", "movie", "movie", true},
		{"type case-insensitive", "Dark", "Dark", "Show", "show", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.query, tt.firstName, tt.wantType, tt.gotType)
			if got != tt.want {
				t.Errorf("Validate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractTitles(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   []string
	}{
		{
			"quoted",
			`something dark like "Breaking Bad" please`,
			[]string{"Breaking Bad"},
		},
		{
			"similar to",
			"shows similar to Dark, but shorter",
			[]string{"Dark"},
		},
		{
			"like reference",
			"movies like The Matrix",
			[]string{"The Matrix"},
		},
		{
			"no mentions",
			"something fun for the weekend",
			nil,
		},
		{
			"dedup",
			`"Dark" or anything similar to Dark`,
			[]string{"Dark"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitles(tt.prompt)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractTitles(%q) = %v, want %v", tt.prompt, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ExtractTitles(%q)[%d] = %q, want %q", tt.prompt, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractTitlesCap(t *testing.T) {
	prompt := `"A1" "B2" "C3" "D4" "E5" "F6" "G7"`
	got := ExtractTitles(prompt)
	if len(got) != 5 {
		t.Errorf("extracted %d titles, want cap of 5", len(got))
	}
}
