// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"time"

	"github.com/tabletop-labs/playnext/internal/similarity"
)

// Request describes one recommendation query.
type Request struct {
	// Game is the free-text title to recommend against. Resolved with
	// the fuzzy name resolver before lookup.
	Game string

	// Recipe selects the similarity weighting. Empty means the default
	// blended recipe.
	Recipe similarity.Recipe

	// Filters are the optional attribute bounds. The zero value applies
	// no constraints.
	Filters FilterSpec

	// K caps the returned rows. Zero means the engine default.
	K int
}

// Row is one display-ready recommendation. Attribute fields mirror the
// catalog record; Similarity is the score that ranked this row.
type Row struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	YearPublished int      `json:"year_published"`
	MinPlayers    int      `json:"min_players"`
	MaxPlayers    int      `json:"max_players"`
	PlayingTime   int      `json:"playing_time"`
	AverageRating float64  `json:"average_rating"`
	BayesRating   float64  `json:"bayes_rating"`
	Weight        float64  `json:"weight"`
	Rank          int      `json:"rank"`
	Categories    []string `json:"categories,omitempty"`
	Mechanics     []string `json:"mechanics,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Similarity    float64  `json:"similarity"`
}

// Response is a completed recommendation result.
type Response struct {
	// Game is the resolved catalog title the rows relate to.
	Game string `json:"game"`

	Rows     []Row    `json:"rows"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries per-request observability fields.
type Metadata struct {
	Recipe      similarity.Recipe `json:"recipe"`
	LatencyMS   float64           `json:"latency_ms"`
	CacheHit    bool              `json:"cache_hit"`
	GeneratedAt time.Time         `json:"generated_at"`
}
