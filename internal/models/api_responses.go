// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package models defines the shared API response envelope.
package models

import "time"

// APIResponse is the envelope returned by every API endpoint.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the pipeline execution time in milliseconds; Cached is
// set when the candidate list was served from the engine's memo cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS float64   `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured details.
//
// Common codes:
//   - NO_INPUT: empty or fully-sanitized-away search text
//   - GAME_NOT_FOUND: resolved name absent from the catalog or similarity source
//   - INVALID_RECIPE: unsupported similarity recipe
//   - VALIDATION_ERROR: invalid query parameters
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
