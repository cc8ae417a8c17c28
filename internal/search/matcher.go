// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package search resolves free-text user input into catalog titles.
package search

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Matcher scores how closely a query matches a candidate title.
//
// Scores are on a 0-100 scale, deterministic, and monotonic in
// edit-distance-like closeness. Implementations hide the string
// similarity library from the resolver.
type Matcher interface {
	Score(query, candidate string) float64
}

// WeightedMatcher scores with Jaro-Winkler similarity, taking the better
// of the direct comparison and a token-sorted comparison so that word
// reordering ("Grid Power") still matches well.
//
// Jaro-Winkler heavily weights matching prefixes, which suits game
// titles: users typically get the start of the name right.
type WeightedMatcher struct{}

// NewWeightedMatcher returns the default title matcher.
func NewWeightedMatcher() WeightedMatcher {
	return WeightedMatcher{}
}

// Score implements Matcher.
func (WeightedMatcher) Score(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 100
	}

	direct := float64(edlib.JaroWinklerSimilarity(q, c))
	sorted := float64(edlib.JaroWinklerSimilarity(sortTokens(q), sortTokens(c)))

	best := direct
	if sorted > best {
		best = sorted
	}
	return best * 100
}

// sortTokens returns s with its whitespace-separated tokens sorted,
// normalizing word order before comparison.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return s
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
