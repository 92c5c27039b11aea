// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package titlematch

import "strings"

// MinValidScore is the similarity threshold below which a provider's first
// returned match is rejected as wrong content.
const MinValidScore = 0.5

// Score returns a similarity score in [0, 1] between a requested title and
// a candidate returned by a provider. Both strings are normalized first.
//
//   - 1.0: exact match after normalization
//   - 0.8: one string contains the other ("Dune" vs "Dune Part Two")
//   - otherwise: Jaccard index of the whitespace-tokenized word sets
func Score(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)

	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 1.0
	}
	if strings.Contains(q, c) || strings.Contains(c, q) {
		return 0.8
	}

	return jaccard(strings.Fields(q), strings.Fields(c))
}

// Validate reports whether a provider's first returned match is actually
// about the requested title. Rejects on media-type mismatch or a similarity
// score below MinValidScore. Only the first match of a response is held to
// this standard; secondary matches are allowed to be thematically related
// content rather than identical titles.
func Validate(query, firstName, wantType, gotType string) bool {
	if !strings.EqualFold(strings.TrimSpace(wantType), strings.TrimSpace(gotType)) {
		return false
	}
	return Score(query, firstName) >= MinValidScore
}

// jaccard computes |A∩B| / |A∪B| over two token lists.
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
