// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package similarity

import (
	"context"
	"fmt"
	"sort"

	"github.com/tabletop-labs/playnext/internal/catalog"
)

// Edge is one precomputed similarity pair, as stored in the sparse
// neighbor tables produced by the offline scoring job.
type Edge struct {
	BaseID    int     `json:"base_game_id"`
	SimilarID int     `json:"similar_game_id"`
	Score     float64 `json:"similarity_score"`
	Recipe    Recipe  `json:"recipe"`
}

// TableProvider serves neighbors from sparse precomputed edge lists.
// Unlike the dense matrix form, a catalog game can legitimately be
// absent from a table; those lookups return empty results, not errors.
//
// TableProvider is immutable after construction and safe for
// concurrent use.
type TableProvider struct {
	store     *catalog.Store
	neighbors map[Recipe]map[int][]Neighbor
	topK      int
}

// NewTableProvider indexes edges by recipe and base game. Self-edges
// are dropped and each neighbor list is sorted and truncated once here
// so lookups are allocation-free slices of the prebuilt index.
func NewTableProvider(store *catalog.Store, edges []Edge, topK int) (*TableProvider, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	neighbors := make(map[Recipe]map[int][]Neighbor)
	for _, e := range edges {
		recipe, err := ParseRecipe(string(e.Recipe))
		if err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.BaseID, e.SimilarID, err)
		}
		if e.BaseID == e.SimilarID {
			continue
		}
		byGame := neighbors[recipe]
		if byGame == nil {
			byGame = make(map[int][]Neighbor)
			neighbors[recipe] = byGame
		}
		byGame[e.BaseID] = append(byGame[e.BaseID], Neighbor{GameID: e.SimilarID, Score: e.Score})
	}

	for _, byGame := range neighbors {
		for id, list := range byGame {
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Score > list[j].Score
			})
			if len(list) > topK {
				byGame[id] = list[:topK]
			}
		}
	}

	return &TableProvider{store: store, neighbors: neighbors, topK: topK}, nil
}

// Neighbors implements Provider.
func (p *TableProvider) Neighbors(_ context.Context, gameID int, recipe Recipe) ([]Neighbor, error) {
	norm, err := ParseRecipe(string(recipe))
	if err != nil {
		return nil, err
	}
	if _, ok := p.store.ByID(gameID); !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownGame, gameID)
	}
	// Known game missing from the table means it scored no neighbors.
	return p.neighbors[norm][gameID], nil
}
