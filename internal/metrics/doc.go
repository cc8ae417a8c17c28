// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package metrics provides Prometheus instrumentation for the service.
//
// All collectors are registered with the default registry via promauto
// at package init, so importing this package is enough to make the
// metrics scrapeable from the /metrics endpoint. Helper functions wrap
// the common record patterns so call sites stay one-liners:
//
//	defer func() {
//		metrics.RecordAPIRequest(r.Method, "/api/v1/recommendations", status, time.Since(start))
//	}()
//
// Instrumented areas:
//   - API endpoint throughput, latency, and rate limit rejections
//   - fuzzy title resolution query volume and candidate counts
//   - recommendation pipeline outcomes, latency, and row counts
//   - candidate cache efficiency
//   - catalog snapshot size and load time
//   - dataset downloads and the download circuit breaker
package metrics
