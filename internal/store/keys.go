// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package store

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Key prefixes shared by all request handlers. Keys are deterministic
// functions of request type plus normalized input, so identical requests
// hit the same entry regardless of which handler built the key.
const (
	similarPrefix  = "similar:"
	blendPrefix    = "blend:"
	discoverPrefix = "discover:"
	ratePrefix     = "ratelimit:"
	cooldownPrefix = "cooldown:"
)

// SimilarKey builds the cache key for a single-title similarity lookup.
func SimilarKey(resultType, title string) string {
	return similarPrefix + resultType + ":" + normalizeKeyPart(title)
}

// BlendKey builds the cache key for a multi-title blend lookup.
// Titles are sorted so seed order does not fragment the cache.
func BlendKey(resultType string, titles []string) string {
	parts := make([]string, len(titles))
	for i, t := range titles {
		parts[i] = normalizeKeyPart(t)
	}
	sort.Strings(parts)
	return blendPrefix + resultType + ":" + strings.Join(parts, "|")
}

// DiscoverKey builds the cache key for a free-text discover prompt.
// Prompts are hashed since they are unbounded user input.
func DiscoverKey(prompt string) string {
	sum := sha256.Sum256([]byte(normalizeKeyPart(prompt)))
	return discoverPrefix + hex.EncodeToString(sum[:16])
}

// RateKey builds the rate-limit counter key for a provider.
func RateKey(provider string) string {
	return ratePrefix + provider
}

// CooldownKey builds the cool-down marker key for a provider.
func CooldownKey(provider string) string {
	return cooldownPrefix + provider
}

// normalizeKeyPart lowercases and collapses whitespace so cosmetic input
// differences map to the same key.
func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
