// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"strings"

	"github.com/tabletop-labs/playnext/internal/catalog"
)

// DefaultMaxPerFranchise bounds how many entries of one franchise
// survive clone reduction.
const DefaultMaxPerFranchise = 3

// ReduceClones trims franchise duplicates from rank-ordered rows,
// keeping the first maxPerFranchise entries of each franchise in input
// order. Input order is assumed best-first, so survivors are the best
// representatives without re-sorting. maxPerFranchise <= 0 applies the
// default.
//
// The lookup function maps a row id to its catalog record for the
// family-metadata grouping signals; rows it cannot resolve fall back to
// the title-stem heuristic.
func ReduceClones(rows []Row, maxPerFranchise int, lookup func(id int) (*catalog.GameRecord, bool)) []Row {
	if maxPerFranchise <= 0 {
		maxPerFranchise = DefaultMaxPerFranchise
	}

	counts := make(map[string]int, len(rows))
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		var rec *catalog.GameRecord
		if lookup != nil {
			rec, _ = lookup(row.ID)
		}
		key := franchiseKey(row.Name, rec)
		if counts[key] >= maxPerFranchise {
			continue
		}
		counts[key]++
		out = append(out, row)
	}
	return out
}

// franchiseKey derives the grouping key for one game. Explicit family
// metadata wins over the title heuristic: a declared series name first,
// then a game tag, then the title stem.
func franchiseKey(name string, rec *catalog.GameRecord) string {
	if rec != nil {
		if len(rec.Family.SeriesNames) > 0 {
			return "series:" + strings.ToLower(rec.Family.SeriesNames[0])
		}
		if len(rec.Family.GameTags) > 0 {
			return "game:" + strings.ToLower(rec.Family.GameTags[0])
		}
	}
	return "stem:" + titleStem(name)
}

// titleStem lowercases the segment of the title before the first colon,
// en-dash, or hyphen. "Catan: Seafarers" and "Catan - 25th Anniversary"
// both stem to "catan".
func titleStem(name string) string {
	cut := len(name)
	for _, sep := range []string{":", "–", "-"} {
		if i := strings.Index(name, sep); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.ToLower(strings.TrimSpace(name[:cut]))
}
