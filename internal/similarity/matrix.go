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

// MatrixProvider serves neighbors from dense per-recipe score matrices.
// Matrix rows and columns are indexed by catalog row position, so every
// matrix must be square with dimension equal to the catalog length.
//
// MatrixProvider is immutable after construction and safe for
// concurrent use.
type MatrixProvider struct {
	store    *catalog.Store
	matrices map[Recipe][][]float64
	topK     int
}

// NewMatrixProvider wraps per-recipe dense matrices over the catalog.
// Each matrix is validated against the catalog dimension up front so
// lookups never index out of range.
func NewMatrixProvider(store *catalog.Store, matrices map[Recipe][][]float64, topK int) (*MatrixProvider, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	n := store.Len()
	for recipe, m := range matrices {
		if len(m) != n {
			return nil, fmt.Errorf("recipe %q: matrix has %d rows, catalog has %d games", recipe, len(m), n)
		}
		for i, row := range m {
			if len(row) != n {
				return nil, fmt.Errorf("recipe %q: row %d has %d columns, want %d", recipe, i, len(row), n)
			}
		}
	}
	return &MatrixProvider{store: store, matrices: matrices, topK: topK}, nil
}

// Neighbors implements Provider.
func (p *MatrixProvider) Neighbors(_ context.Context, gameID int, recipe Recipe) ([]Neighbor, error) {
	norm, err := ParseRecipe(string(recipe))
	if err != nil {
		return nil, err
	}
	m, ok := p.matrices[norm]
	if !ok {
		return nil, fmt.Errorf("%w: no data for %q", ErrUnknownRecipe, norm)
	}
	row, ok := p.store.RowIndex(gameID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownGame, gameID)
	}

	scores := m[row]
	ranked := make([]Neighbor, 0, len(scores)-1)
	for col, score := range scores {
		if col == row {
			continue
		}
		ranked = append(ranked, Neighbor{GameID: p.store.At(col).ID, Score: score})
	}

	// Stable so equal scores keep catalog order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > p.topK {
		ranked = ranked[:p.topK]
	}
	return ranked, nil
}
