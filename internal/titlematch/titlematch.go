// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package titlematch provides pure functions for building provider-safe
// title queries and validating provider responses.
//
// Upstream similarity providers are unreliable: they sometimes silently
// substitute wrong content for a query. Every response is therefore scored
// against the requested title before it is trusted. All functions here are
// deterministic with no side effects, and heuristic failures are reported
// as sentinel return values rather than errors.
package titlematch

import (
	"strings"
	"unicode"
)

// Sanitize strips characters that are structurally significant in the
// similarity provider's query grammar (colon separates the type prefix from
// the title, comma separates query items) and collapses whitespace.
// Idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ':' || r == ',' {
			return -1
		}
		return r
	}, title)
	return strings.Join(strings.Fields(cleaned), " ")
}

// BuildQuery joins typePrefix:sanitizedTitle pairs with the provider's item
// separator. Handles one to five titles; titles that sanitize to empty are
// skipped.
func BuildQuery(titles []string, typePrefix string) string {
	parts := make([]string, 0, len(titles))
	for _, t := range titles {
		s := Sanitize(t)
		if s == "" {
			continue
		}
		parts = append(parts, typePrefix+":"+s)
	}
	return strings.Join(parts, ", ")
}

// Normalize lowercases, strips non-alphanumeric runes, and collapses
// whitespace. Both sides of every similarity comparison go through this.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
