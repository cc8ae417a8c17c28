// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package api

// SearchRequest holds the validated query parameters for /search.
type SearchRequest struct {
	Query string `validate:"required,max=200"`
	Limit int    `validate:"min=1,max=12"`
}

// RecommendationsRequest holds the validated query parameters for
// /recommendations. Filter bounds of zero mean the bound is absent.
type RecommendationsRequest struct {
	Game        string  `validate:"required,max=200"`
	Recipe      string  `validate:"omitempty,oneof=mech cat mixed"`
	K           int     `validate:"min=0,max=25"`
	MinPlayers  int     `validate:"min=0,max=100"`
	MaxPlayers  int     `validate:"min=0,max=100"`
	MaxPlaytime int     `validate:"min=0,max=600"`
	MinRating   float64 `validate:"min=0,max=10"`
	MinWeight   float64 `validate:"min=0,max=5"`
	MinYear     int     `validate:"min=0,max=2100"`
}
