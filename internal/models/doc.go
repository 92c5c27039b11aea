// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

// Package models defines the shared API envelope types used by every HTTP
// endpoint. Domain types for recommendations live in internal/recommend;
// this package only carries the wire-level response wrapper.
package models
