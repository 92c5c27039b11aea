// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package recommend

import "errors"

// Sentinel errors classifying every adapter and orchestrator failure.
// Of these, only ErrInvalidInput and ErrChainExhausted escape the
// orchestrator; the rest trigger advancement to the next adapter in
// the fallback chain.
var (
	// ErrInvalidInput marks a request that fails validation.
	ErrInvalidInput = errors.New("invalid request input")

	// ErrRateLimited marks a call rejected by the shared window counter
	// or refused by an upstream quota.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrTransport marks a network or upstream failure.
	ErrTransport = errors.New("provider transport failure")

	// ErrValidationFailed marks a similarity result whose first match
	// does not plausibly correspond to the queried title.
	ErrValidationFailed = errors.New("result failed title validation")

	// ErrMalformedOutput marks generative output that could not be
	// parsed into the demanded structure. Never silently degraded to an
	// empty result.
	ErrMalformedOutput = errors.New("malformed generative output")

	// ErrUnavailable marks an adapter that cannot serve the request at
	// all (missing inputs, active cool-down).
	ErrUnavailable = errors.New("provider unavailable")

	// ErrChainExhausted is surfaced when every adapter in a fallback
	// chain failed or returned nothing.
	ErrChainExhausted = errors.New("all providers in chain exhausted")
)
