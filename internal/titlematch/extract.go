// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package titlematch

import (
	"regexp"
	"strings"
)

// maxExtractedTitles caps how many title mentions are pulled from a prompt.
// Each extracted title costs rate-limit budget downstream.
const maxExtractedTitles = 5

var (
	// quotedPattern matches explicit title mentions in double or typographic quotes.
	quotedPattern = regexp.MustCompile(`["“]([^"“”]{2,80})["”]`)

	// referencePattern matches "like X" / "similar to X" mentions, capturing
	// up to the next clause boundary.
	referencePattern = regexp.MustCompile(`(?i)\b(?:similar\s+to|like)\s+([^,.;:!?"]{2,80})`)
)

// ExtractTitles pulls candidate title mentions from a free-text prompt:
// quoted substrings first, then "like X" / "similar to X" references.
// Results are deduplicated case-insensitively and capped at five. Returns
// an empty slice when the prompt mentions no recognizable titles; callers
// treat that as routine, not as an error.
func ExtractTitles(prompt string) []string {
	var titles []string
	seen := make(map[string]struct{})

	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if len(candidate) < 2 || len(titles) >= maxExtractedTitles {
			return
		}
		key := Normalize(candidate)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		titles = append(titles, candidate)
	}

	for _, m := range quotedPattern.FindAllStringSubmatch(prompt, -1) {
		add(m[1])
	}
	for _, m := range referencePattern.FindAllStringSubmatch(prompt, -1) {
		add(m[1])
	}

	return titles
}
