// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package search

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/logging"
)

// ErrNoInput is returned when the query is empty or nothing survives
// sanitization. Callers treat this as a user-correctable condition, not
// a failure.
var ErrNoInput = errors.New("no usable input")

// disallowed matches every rune outside the input allow-set: letters,
// digits, whitespace, hyphen, comma, period. This defends downstream
// lookups, not the display layer.
var disallowed = regexp.MustCompile(`[^a-zA-Z0-9\s\-,.]`)

// Sanitize strips raw user input down to the allow-set and trims it.
func Sanitize(raw string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(raw, ""))
}

// Candidate is one ranked name-resolution result.
type Candidate struct {
	// Name is the catalog display title.
	Name string `json:"name"`

	// Score is the fuzzy match confidence on a 0-100 scale. No minimum
	// threshold is enforced; callers must treat low scores as uncertain.
	Score float64 `json:"score"`
}

// Resolver turns free-text input into a ranked candidate list using a
// prefix-match fast path layered over general fuzzy scoring.
type Resolver struct {
	store   *catalog.Store
	matcher Matcher
	logger  zerolog.Logger

	prefixLimit int // prefix matches kept, in catalog order
	fuzzyLimit  int // fuzzy matches scored into the merge
	maxResults  int // final candidate cap
}

// NewResolver creates a Resolver over the catalog.
func NewResolver(store *catalog.Store, matcher Matcher) *Resolver {
	return &Resolver{
		store:       store,
		matcher:     matcher,
		logger:      logging.WithComponent("search"),
		prefixLimit: 4,
		fuzzyLimit:  12,
		maxResults:  12,
	}
}

// Resolve returns the ranked candidate list for raw input, best match
// first, capped at 12 entries.
//
// Prefix matches (catalog names starting with the sanitized input,
// case-insensitive, in catalog order) always rank before fuzzy-only
// matches. The merged set is re-scored with the matcher so display
// scores are comparable across both paths.
func (r *Resolver) Resolve(raw string) ([]Candidate, error) {
	query := Sanitize(raw)
	if query == "" {
		return nil, ErrNoInput
	}
	queryLower := strings.ToLower(query)

	names := r.store.Names()
	prefix := make([]string, 0, r.prefixLimit)
	isPrefix := make(map[string]bool, r.prefixLimit)

	for _, name := range names {
		if len(prefix) == r.prefixLimit {
			break
		}
		if strings.HasPrefix(strings.ToLower(name), queryLower) {
			prefix = append(prefix, name)
			isPrefix[name] = true
		}
	}

	fuzzy := r.fuzzyMatches(query, names, isPrefix)

	merged := make([]Candidate, 0, len(prefix)+len(fuzzy))
	seen := make(map[string]bool, len(prefix)+len(fuzzy))
	for _, name := range prefix {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, Candidate{Name: name})
		}
	}
	for _, name := range fuzzy {
		if !seen[name] {
			seen[name] = true
			merged = append(merged, Candidate{Name: name})
		}
	}

	// Re-score the merged set for final display scores. Order is kept:
	// the prefix fast path outranks fuzzy scores by construction.
	for i := range merged {
		merged[i].Score = r.matcher.Score(query, merged[i].Name)
	}

	if len(merged) > r.maxResults {
		merged = merged[:r.maxResults]
	}

	r.logger.Debug().
		Str("query", query).
		Int("prefix_matches", len(prefix)).
		Int("candidates", len(merged)).
		Msg("resolved title candidates")

	return merged, nil
}

// ResolveBest resolves raw input and returns only the single top
// candidate name. Used by non-interactive callers.
func (r *Resolver) ResolveBest(raw string) (string, error) {
	candidates, err := r.Resolve(raw)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrNoInput
	}
	return candidates[0].Name, nil
}

// fuzzyMatches scores every non-prefix catalog name against the query
// and returns the top fuzzyLimit names, best first. Ties keep catalog
// order (stable sort).
func (r *Resolver) fuzzyMatches(query string, names []string, exclude map[string]bool) []string {
	type scored struct {
		name  string
		score float64
	}

	ranked := make([]scored, 0, len(names))
	for _, name := range names {
		if exclude[name] {
			continue
		}
		ranked = append(ranked, scored{name: name, score: r.matcher.Score(query, name)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > r.fuzzyLimit {
		ranked = ranked[:r.fuzzyLimit]
	}

	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}
