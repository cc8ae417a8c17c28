// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package similarity

import (
	"context"
	"errors"
)

var (
	// ErrUnknownGame is returned when the queried game id is not part of
	// the similarity data. Distinct from a known game with no neighbors,
	// which yields an empty slice and nil error.
	ErrUnknownGame = errors.New("game not in similarity data")

	// ErrUnknownRecipe is returned for recipe identifiers outside the
	// precomputed set.
	ErrUnknownRecipe = errors.New("unknown similarity recipe")
)

// DefaultTopK is the neighbor count returned per lookup.
const DefaultTopK = 25

// Neighbor is one scored similar game.
type Neighbor struct {
	GameID int     `json:"game_id"`
	Score  float64 `json:"score"`
}

// Provider serves precomputed similarity neighborhoods. Implementations
// must exclude the queried game from its own results and return
// neighbors in descending score order.
type Provider interface {
	// Neighbors returns the scored neighbors of gameID under the given
	// recipe, best first, capped at the provider's configured top-k.
	Neighbors(ctx context.Context, gameID int, recipe Recipe) ([]Neighbor, error)
}
