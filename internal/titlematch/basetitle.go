// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package titlematch

import (
	"regexp"
	"strings"
)

// baseTitlePatterns strip trailing sequel/franchise markers. Tried in order;
// the first pattern producing a remainder of at least minBaseTitleLen wins.
// Word markers (Part/Chapter/...) come first so the marker word is stripped
// along with its number: "John Wick: Chapter 4" becomes "John Wick", not
// "John Wick: Chapter", and "The Godfather Part II" becomes "The Godfather".
var baseTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(.*\S)\s+part\s+\S+$`),    // "The Godfather Part II"
	regexp.MustCompile(`(?i)^(.*\S)\s+chapter\s+\S+$`), // "John Wick: Chapter 4"
	regexp.MustCompile(`(?i)^(.*\S)\s+episode\s+\S+$`), // "Star Wars: Episode IX"
	regexp.MustCompile(`(?i)^(.*\S)\s+vol\.\s+\S+$`),   // "Kill Bill: Vol. 2"
	regexp.MustCompile(`(?i)^(.*\S)\s+volume\s+\S+$`),  // "Guardians Volume 3"
	regexp.MustCompile(`^(.*\S)\s+\d+$`),               // "Zootopia 2"
	regexp.MustCompile(`^(.*\S)\s+[IVXLCDM]+$`),        // "Rocky III"
}

// minBaseTitleLen is the minimum remainder length for a strip to count.
// Anything shorter is more likely a mangled title than a franchise name.
const minBaseTitleLen = 2

// BaseTitle attempts to strip a trailing sequel/part/chapter/volume marker,
// returning the franchise base title. Returns ("", false) when no pattern
// applies. This is a heuristic used only as a second-chance query after a
// failed validation; it is not guaranteed to name a real franchise.
func BaseTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)

	for _, pattern := range baseTitlePatterns {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		base := strings.TrimRight(m[1], " :-–")
		if len([]rune(base)) >= minBaseTitleLen {
			return base, true
		}
	}

	return "", false
}
