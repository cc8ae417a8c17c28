// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import "github.com/rs/zerolog"

// FilterSpec holds the optional attribute bounds of a request. A zero
// field means the bound is absent and imposes no constraint. Each
// present bound is an inclusive inequality on the same-named game
// attribute; bounds compose by AND.
//
// Games with an unknown attribute (zero value in the catalog) fail any
// bound on that attribute rather than passing vacuously.
type FilterSpec struct {
	MinPlayers  int     `json:"min_players,omitempty"`
	MaxPlayers  int     `json:"max_players,omitempty"`
	MaxPlaytime int     `json:"max_playtime,omitempty"`
	MinRating   float64 `json:"min_rating,omitempty"`
	MinWeight   float64 `json:"min_weight,omitempty"`
	MinYear     int     `json:"min_year,omitempty"`
}

// IsZero reports whether no bounds are set.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// Apply returns the rows passing every present bound, preserving input
// order.
func (f FilterSpec) Apply(rows []Row, logger zerolog.Logger) []Row {
	if f.IsZero() {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if f.passes(row) {
			out = append(out, row)
		}
	}

	logger.Debug().
		Int("before", len(rows)).
		Int("after", len(out)).
		Msg("applied attribute filters")

	return out
}

func (f FilterSpec) passes(row Row) bool {
	if f.MinPlayers > 0 && !(row.MinPlayers > 0 && row.MinPlayers >= f.MinPlayers) {
		return false
	}
	if f.MaxPlayers > 0 && !(row.MaxPlayers > 0 && row.MaxPlayers <= f.MaxPlayers) {
		return false
	}
	if f.MaxPlaytime > 0 && !(row.PlayingTime > 0 && row.PlayingTime <= f.MaxPlaytime) {
		return false
	}
	if f.MinRating > 0 && !(row.AverageRating > 0 && row.AverageRating >= f.MinRating) {
		return false
	}
	if f.MinWeight > 0 && !(row.Weight > 0 && row.Weight >= f.MinWeight) {
		return false
	}
	if f.MinYear > 0 && !(row.YearPublished > 0 && row.YearPublished >= f.MinYear) {
		return false
	}
	return true
}
