// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"sort"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/similarity"
)

// assemble joins neighbor edges against the catalog into display rows.
//
// Neighbors pointing at ids absent from the catalog are dropped
// silently (stale edges from an older catalog build). Rows are then
// deduplicated by normalized name keeping the first occurrence, and
// sorted descending by similarity with ties keeping input order. No
// truncation happens here: filters must see the full candidate set.
func assemble(neighbors []similarity.Neighbor, store *catalog.Store) []Row {
	rows := make([]Row, 0, len(neighbors))
	seen := make(map[string]bool, len(neighbors))

	for _, n := range neighbors {
		rec, ok := store.ByID(n.GameID)
		if !ok {
			continue
		}
		key := catalog.NameKeyOf(rec.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, rowFromRecord(rec, n.Score))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Similarity > rows[j].Similarity
	})
	return rows
}

func rowFromRecord(rec *catalog.GameRecord, score float64) Row {
	return Row{
		ID:            rec.ID,
		Name:          rec.Name,
		Description:   rec.Description,
		Thumbnail:     rec.Thumbnail,
		YearPublished: rec.YearPublished,
		MinPlayers:    rec.MinPlayers,
		MaxPlayers:    rec.MaxPlayers,
		PlayingTime:   rec.PlayingTime,
		AverageRating: rec.AverageRating,
		BayesRating:   rec.BayesRating,
		Weight:        rec.Weight,
		Rank:          rec.Rank,
		Categories:    rec.Categories,
		Mechanics:     rec.Mechanics,
		Tags:          rec.Tags,
		Similarity:    score,
	}
}
