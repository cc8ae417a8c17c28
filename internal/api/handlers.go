// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/logging"
	"github.com/tabletop-labs/playnext/internal/metrics"
	"github.com/tabletop-labs/playnext/internal/models"
	"github.com/tabletop-labs/playnext/internal/recommend"
	"github.com/tabletop-labs/playnext/internal/search"
	"github.com/tabletop-labs/playnext/internal/similarity"
)

// Handler serves the API endpoints.
type Handler struct {
	engine  *recommend.Engine
	store   *catalog.Store
	version string
	started time.Time
}

// NewHandler creates a Handler over the engine and catalog.
func NewHandler(engine *recommend.Engine, store *catalog.Store, version string) *Handler {
	return &Handler{
		engine:  engine,
		store:   store,
		version: version,
		started: time.Now(),
	}
}

// Health reports liveness plus catalog readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data: map[string]interface{}{
			"version":        h.version,
			"uptime_seconds": int(time.Since(h.started).Seconds()),
			"catalog_games":  h.store.Len(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// Search resolves free text into ranked title candidates.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := SearchRequest{
		Query: r.URL.Query().Get("q"),
		Limit: getIntParam(r, "limit", 12),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	candidates, err := h.engine.Resolve(req.Query)
	if err != nil {
		if errors.Is(err, search.ErrNoInput) {
			metrics.RecordSearch(0, true)
			respondError(w, http.StatusBadRequest, "NO_INPUT", "query is empty after sanitization", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "search failed, try again", err)
		return
	}
	if len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}
	metrics.RecordSearch(len(candidates), false)

	logging.Ctx(r.Context()).Debug().
		Str("query", sanitizeLogValue(req.Query)).
		Int("candidates", len(candidates)).
		Msg("search complete")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data:   candidates,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
		},
	})
}

// GameByID returns one catalog record.
func (h *Handler) GameByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "game id must be an integer", nil)
		return
	}

	rec, ok := h.store.ByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "GAME_NOT_FOUND", "no game with that id", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "ok",
		Data:     rec,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// Recommendations runs the full pipeline: resolve, neighbors, clone
// reduction, filters, truncation.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := RecommendationsRequest{
		Game:        r.URL.Query().Get("game"),
		Recipe:      r.URL.Query().Get("recipe"),
		K:           getIntParam(r, "k", 0),
		MinPlayers:  getIntParam(r, "min_players", 0),
		MaxPlayers:  getIntParam(r, "max_players", 0),
		MaxPlaytime: getIntParam(r, "max_playtime", 0),
		MinRating:   getFloatParam(r, "min_rating", 0),
		MinWeight:   getFloatParam(r, "min_weight", 0),
		MinYear:     getIntParam(r, "min_year", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Game:   req.Game,
		Recipe: similarity.Recipe(req.Recipe),
		K:      req.K,
		Filters: recommend.FilterSpec{
			MinPlayers:  req.MinPlayers,
			MaxPlayers:  req.MaxPlayers,
			MaxPlaytime: req.MaxPlaytime,
			MinRating:   req.MinRating,
			MinWeight:   req.MinWeight,
			MinYear:     req.MinYear,
		},
	})
	if err != nil {
		h.respondRecommendError(w, r, req, err, start)
		return
	}

	outcome := "ok"
	if len(resp.Rows) == 0 {
		outcome = "empty"
	}
	metrics.RecordRecommendation(string(resp.Metadata.Recipe), outcome, len(resp.Rows), time.Since(start))
	if resp.Metadata.CacheHit {
		metrics.RecordCacheHit("candidates")
	} else {
		metrics.RecordCacheMiss("candidates")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "ok",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
			Cached:      resp.Metadata.CacheHit,
		},
	})
}

// respondRecommendError maps pipeline errors onto stable API codes.
// The logged entry keeps the raw input and recipe so failures can be
// diagnosed without exposing internals to the caller.
func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, req RecommendationsRequest, err error, start time.Time) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("game", sanitizeLogValue(req.Game)).
		Str("recipe", sanitizeLogValue(req.Recipe)).
		Msg("recommendation failed")

	switch {
	case errors.Is(err, search.ErrNoInput):
		metrics.RecordRecommendation(req.Recipe, "invalid", 0, time.Since(start))
		respondError(w, http.StatusBadRequest, "NO_INPUT", "game name is empty after sanitization", nil)
	case errors.Is(err, recommend.ErrGameNotFound), errors.Is(err, similarity.ErrUnknownGame):
		metrics.RecordRecommendation(req.Recipe, "not_found", 0, time.Since(start))
		respondError(w, http.StatusNotFound, "GAME_NOT_FOUND", "game not found, check the name and try again", nil)
	case errors.Is(err, similarity.ErrUnknownRecipe):
		metrics.RecordRecommendation(req.Recipe, "invalid", 0, time.Since(start))
		respondError(w, http.StatusBadRequest, "INVALID_RECIPE", "recipe must be one of mech, cat, mixed", nil)
	default:
		metrics.RecordRecommendation(req.Recipe, "error", 0, time.Since(start))
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "recommendation failed, try again", err)
	}
}
