// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"results": [...], "provider": "similarity"},
//	  "metadata": {
//	    "timestamp": "2026-08-29T12:00:00Z",
//	    "query_time_ms": 180,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INVALID_REQUEST",
//	    "message": "between 2 and 5 titles required",
//	    "details": {"field": "titles"}
//	  },
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: End-to-end orchestration time in milliseconds
//   - Cached: Whether the result was served from the recommendation cache
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - INVALID_REQUEST: Invalid input parameters
//   - PROVIDERS_EXHAUSTED: Every provider in the fallback chain failed
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests from this client
//   - INTERNAL_ERROR: Unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
