// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package catalog holds the immutable in-memory game catalog.
//
// The catalog is loaded once at startup and treated as a read-only
// snapshot for the remainder of the process lifetime, so concurrent
// reads from request handlers need no locking.
package catalog

import "strings"

// PlaytimeCeiling caps playing time at load to avoid outlier skew
// (some catalog entries report multi-day campaign lengths).
const PlaytimeCeiling = 600

// GameRecord is one row of the game catalog.
//
// Numeric attributes use the zero value to mean "unknown": a cell that
// failed numeric coercion at load, or was absent, is stored as 0 (0.0)
// and fails any range predicate applied to it.
type GameRecord struct {
	// ID is the unique, stable integer identifier (primary key).
	ID int `json:"id"`

	// Name is the display title. Not guaranteed unique; franchise
	// editions share stems.
	Name string `json:"name"`

	// NameKey is the lowercase, trimmed form of Name used for lookup.
	NameKey string `json:"name_key"`

	// YearPublished is the publication year, 0 if unknown.
	YearPublished int `json:"year_published"`

	// MinPlayers and MaxPlayers bound the supported player count.
	MinPlayers int `json:"min_players"`
	MaxPlayers int `json:"max_players"`

	// PlayingTime is the expected play time in minutes, capped at
	// PlaytimeCeiling.
	PlayingTime int `json:"playing_time"`

	// AverageRating is the mean user rating on a 0-10 scale.
	AverageRating float64 `json:"average_rating"`

	// BayesRating is the shrinkage-adjusted rating: low review counts
	// are pulled toward the population mean.
	BayesRating float64 `json:"bayes_rating"`

	// Weight is the complexity weight on a 1-5 scale.
	Weight float64 `json:"complexity_weight"`

	// Rank is the published catalog rank, 0 if unranked.
	Rank int `json:"rank"`

	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`

	Categories []string `json:"category_list"`
	Mechanics  []string `json:"mech_list"`
	Tags       []string `json:"tags"`

	// Family holds metadata parsed out of the semi-structured family
	// field by the ETL pass. Used by clone reduction as a franchise
	// grouping signal; zero-valued when the source column is absent.
	Family FamilyMetadata `json:"family,omitempty"`
}

// NameKeyOf normalizes a display title into its lookup key.
func NameKeyOf(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
