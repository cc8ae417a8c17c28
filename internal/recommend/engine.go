// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/search"
	"github.com/tabletop-labs/playnext/internal/similarity"
)

// ErrGameNotFound is returned when the requested title resolves to no
// catalog entry. Distinct from a resolved game with an empty result
// set, which is a legitimate non-error outcome.
var ErrGameNotFound = errors.New("game not found in catalog")

// Engine runs the recommendation pipeline: resolve the title, fetch
// similarity neighbors, assemble catalog rows, reduce franchise clones,
// apply filters, truncate. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	store    *catalog.Store
	provider similarity.Provider
	resolver *search.Resolver

	// Memo cache of pre-filter candidates keyed by (name key, recipe).
	// Filters re-apply cheaply on a hit, so requests differing only in
	// bounds share one entry.
	cache   map[cacheKey]cacheEntry
	cacheMu sync.RWMutex

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

type cacheKey struct {
	nameKey string
	recipe  similarity.Recipe
}

type cacheEntry struct {
	game      string
	rows      []Row
	expiresAt time.Time
}

// NewEngine creates a recommendation engine over the catalog, the
// similarity provider, and the name resolver.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store *catalog.Store, provider similarity.Provider, resolver *search.Resolver, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		store:    store,
		provider: provider,
		resolver: resolver,
		cache:    make(map[cacheKey]cacheEntry),
	}, nil
}

// Recommend runs the pipeline for one request.
//
// The title is resolved with the fuzzy resolver's single best match;
// ErrGameNotFound is returned when resolution finds nothing or the
// resolved name is missing from the catalog. An empty Rows slice with
// nil error means the game is known but nothing matches under the
// current filters.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	recipe := req.Recipe
	if recipe == "" {
		recipe = e.config.DefaultRecipe
	}
	recipe, err := similarity.ParseRecipe(string(recipe))
	if err != nil {
		return nil, err
	}

	name, err := e.resolveGame(req.Game)
	if err != nil {
		return nil, err
	}
	rec, ok := e.store.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, name)
	}

	logger := e.logger.With().
		Str("game", rec.Name).
		Str("recipe", string(recipe)).
		Logger()

	candidates, hit, err := e.candidates(ctx, rec, recipe, logger)
	if err != nil {
		return nil, err
	}

	rows := req.Filters.Apply(candidates, logger)

	limit := req.K
	if limit <= 0 || limit > e.config.DisplayLimit {
		limit = e.config.DisplayLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("rows", len(rows)).
		Bool("cache_hit", hit).
		Msg("recommendation complete")

	return &Response{
		Game: rec.Name,
		Rows: rows,
		Metadata: Metadata{
			Recipe:      recipe,
			LatencyMS:   float64(time.Since(start).Microseconds()) / 1000.0,
			CacheHit:    hit,
			GeneratedAt: time.Now().UTC(),
		},
	}, nil
}

// resolveGame maps free text to a catalog title via the fuzzy resolver.
func (e *Engine) resolveGame(raw string) (string, error) {
	name, err := e.resolver.ResolveBest(raw)
	if err != nil {
		if errors.Is(err, search.ErrNoInput) {
			return "", err
		}
		return "", fmt.Errorf("resolving %q: %w", raw, err)
	}
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrGameNotFound, raw)
	}
	return name, nil
}

// candidates returns the assembled, clone-reduced, pre-filter row set
// for (game, recipe), serving from the memo cache when fresh.
func (e *Engine) candidates(ctx context.Context, rec *catalog.GameRecord, recipe similarity.Recipe, logger zerolog.Logger) ([]Row, bool, error) {
	key := cacheKey{nameKey: rec.NameKey, recipe: recipe}

	if e.config.Cache.Enabled {
		if rows, ok := e.cachedRows(key); ok {
			e.cacheHits.Add(1)
			return rows, true, nil
		}
		e.cacheMisses.Add(1)
	}

	neighbors, err := e.provider.Neighbors(ctx, rec.ID, recipe)
	if err != nil {
		return nil, false, fmt.Errorf("similarity lookup for id %d: %w", rec.ID, err)
	}

	rows := assemble(neighbors, e.store)
	rows = ReduceClones(rows, e.config.MaxPerFranchise, e.store.ByID)

	if e.config.Cache.Enabled {
		e.storeRows(key, rec.Name, rows)
	}

	logger.Debug().
		Int("neighbors", len(neighbors)).
		Int("candidates", len(rows)).
		Msg("assembled candidate set")

	return rows, false, nil
}

func (e *Engine) cachedRows(key cacheKey) ([]Row, bool) {
	e.cacheMu.RLock()
	entry, ok := e.cache[key]
	e.cacheMu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.rows, true
}

func (e *Engine) storeRows(key cacheKey, game string, rows []Row) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	// Cheap eviction: drop expired entries first, then make room by
	// clearing the map if still full. Entry count is small enough that
	// full LRU bookkeeping is not worth it.
	if len(e.cache) >= e.config.Cache.MaxEntries {
		now := time.Now()
		for k, v := range e.cache {
			if now.After(v.expiresAt) {
				delete(e.cache, k)
			}
		}
		if len(e.cache) >= e.config.Cache.MaxEntries {
			e.cache = make(map[cacheKey]cacheEntry)
		}
	}

	e.cache[key] = cacheEntry{
		game:      game,
		rows:      rows,
		expiresAt: time.Now().Add(e.config.Cache.TTL),
	}
}

// Stats reports engine counters for metrics scraping.
func (e *Engine) Stats() (requests, hits, misses int64) {
	return e.requestCount.Load(), e.cacheHits.Load(), e.cacheMisses.Load()
}

// Resolve exposes the resolver's ranked candidate list for the search
// endpoint.
func (e *Engine) Resolve(raw string) ([]search.Candidate, error) {
	return e.resolver.Resolve(raw)
}

// GameByID returns the catalog record for id.
func (e *Engine) GameByID(id int) (*catalog.GameRecord, bool) {
	return e.store.ByID(id)
}
