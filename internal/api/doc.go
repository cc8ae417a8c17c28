// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package api provides the HTTP surface of the recommendation service,
// built on the Chi router.
//
// Endpoints:
//
//	GET /api/v1/health            liveness and catalog readiness
//	GET /api/v1/search            fuzzy title resolution
//	GET /api/v1/games/{id}        catalog record lookup
//	GET /api/v1/recommendations   the recommendation pipeline
//	GET /metrics                  Prometheus scrape endpoint
//
// All API responses share the models.APIResponse envelope. Error
// responses carry a stable machine-readable code; the HTTP status
// distinguishes user-correctable requests (4xx) from service faults
// (5xx). A resolved game with an empty result set is a 200 with zero
// rows, not an error.
package api
