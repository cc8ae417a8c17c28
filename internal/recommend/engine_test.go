// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/search"
	"github.com/tabletop-labs/playnext/internal/similarity"
)

// fakeProvider serves a fixed neighbor set and counts lookups.
type fakeProvider struct {
	neighbors map[int][]similarity.Neighbor
	calls     int
}

func (f *fakeProvider) Neighbors(_ context.Context, gameID int, recipe similarity.Recipe) ([]similarity.Neighbor, error) {
	if _, err := similarity.ParseRecipe(string(recipe)); err != nil {
		return nil, err
	}
	f.calls++
	ns, ok := f.neighbors[gameID]
	if !ok {
		return nil, similarity.ErrUnknownGame
	}
	return ns, nil
}

func testEngine(t *testing.T, cfg *Config, records []catalog.GameRecord, neighbors map[int][]similarity.Neighbor) (*Engine, *fakeProvider) {
	t.Helper()
	store, err := catalog.NewStore(records)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	provider := &fakeProvider{neighbors: neighbors}
	resolver := search.NewResolver(store, search.NewWeightedMatcher())
	engine, err := NewEngine(cfg, store, provider, resolver, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine, provider
}

func gridCatalog() []catalog.GameRecord {
	return []catalog.GameRecord{
		{ID: 1, Name: "Power Grid", MinPlayers: 2, MaxPlayers: 6, PlayingTime: 120, AverageRating: 7.8, Weight: 3.3, YearPublished: 2004},
		{ID: 2, Name: "Brass: Birmingham", MinPlayers: 2, MaxPlayers: 4, PlayingTime: 120, AverageRating: 8.6, Weight: 3.9, YearPublished: 2018},
		{ID: 3, Name: "Food Chain Magnate", MinPlayers: 2, MaxPlayers: 5, PlayingTime: 150, AverageRating: 8.1, Weight: 4.2, YearPublished: 2015},
	}
}

func gridNeighbors() map[int][]similarity.Neighbor {
	return map[int][]similarity.Neighbor{
		1: {{GameID: 2, Score: 0.91}, {GameID: 3, Score: 0.85}},
	}
}

func TestRecommendHappyPath(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	resp, err := engine.Recommend(context.Background(), Request{Game: "Power Grid"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Game != "Power Grid" {
		t.Errorf("resolved game = %q, want %q", resp.Game, "Power Grid")
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(resp.Rows))
	}
	if resp.Rows[0].Name != "Brass: Birmingham" || resp.Rows[0].Similarity != 0.91 {
		t.Errorf("row 0 = %q (%f), want Brass: Birmingham (0.91)", resp.Rows[0].Name, resp.Rows[0].Similarity)
	}
	if resp.Rows[1].Name != "Food Chain Magnate" {
		t.Errorf("row 1 = %q, want Food Chain Magnate", resp.Rows[1].Name)
	}
}

func TestRecommendPlaytimeFilter(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	// Food Chain Magnate runs 150 minutes and must drop under a 130
	// minute ceiling.
	resp, err := engine.Recommend(context.Background(), Request{
		Game:    "Power Grid",
		Filters: FilterSpec{MaxPlaytime: 130},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(resp.Rows))
	}
	if resp.Rows[0].Name != "Brass: Birmingham" || resp.Rows[0].Similarity != 0.91 {
		t.Errorf("row = %q (%f), want Brass: Birmingham (0.91)", resp.Rows[0].Name, resp.Rows[0].Similarity)
	}
}

func TestRecommendFuzzyTitle(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	resp, err := engine.Recommend(context.Background(), Request{Game: "powr grid"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Game != "Power Grid" {
		t.Errorf("resolved game = %q, want %q", resp.Game, "Power Grid")
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	if _, err := engine.Recommend(context.Background(), Request{Game: "   "}); !errors.Is(err, search.ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}

func TestRecommendUnknownRecipe(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	_, err := engine.Recommend(context.Background(), Request{Game: "Power Grid", Recipe: "vibes"})
	if !errors.Is(err, similarity.ErrUnknownRecipe) {
		t.Errorf("err = %v, want ErrUnknownRecipe", err)
	}
}

func TestRecommendFiltersEliminateAll(t *testing.T) {
	engine, _ := testEngine(t, nil, gridCatalog(), gridNeighbors())

	// All neighbors filtered out is a legitimate empty result, not an
	// error.
	resp, err := engine.Recommend(context.Background(), Request{
		Game:    "Power Grid",
		Filters: FilterSpec{MinRating: 9.5},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(resp.Rows))
	}
}

func TestRecommendStaleNeighborsDropped(t *testing.T) {
	neighbors := map[int][]similarity.Neighbor{
		1: {{GameID: 2, Score: 0.91}, {GameID: 999, Score: 0.90}},
	}
	engine, _ := testEngine(t, nil, gridCatalog(), neighbors)

	resp, err := engine.Recommend(context.Background(), Request{Game: "Power Grid"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, row := range resp.Rows {
		if row.ID == 999 {
			t.Error("stale neighbor id survived assembly")
		}
	}
}

func TestRecommendCacheSharedAcrossFilters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.TTL = time.Minute
	engine, provider := testEngine(t, cfg, gridCatalog(), gridNeighbors())

	if _, err := engine.Recommend(context.Background(), Request{Game: "Power Grid"}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	resp, err := engine.Recommend(context.Background(), Request{
		Game:    "Power Grid",
		Filters: FilterSpec{MaxPlaytime: 130},
	})
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1 (second request should hit cache)", provider.calls)
	}
	if !resp.Metadata.CacheHit {
		t.Error("second response not marked as cache hit")
	}
	if len(resp.Rows) != 1 {
		t.Errorf("cached candidates not refiltered: got %d rows, want 1", len(resp.Rows))
	}
}

func TestRecommendCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine, provider := testEngine(t, cfg, gridCatalog(), gridNeighbors())

	for i := 0; i < 2; i++ {
		if _, err := engine.Recommend(context.Background(), Request{Game: "Power Grid"}); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}

func TestRecommendDisplayLimit(t *testing.T) {
	records := make([]catalog.GameRecord, 41)
	records[0] = catalog.GameRecord{ID: 1, Name: "Hub"}
	neighbors := make([]similarity.Neighbor, 40)
	for i := 1; i <= 40; i++ {
		records[i] = catalog.GameRecord{ID: i + 1, Name: names40(i)}
		neighbors[i-1] = similarity.Neighbor{GameID: i + 1, Score: 1 - float64(i)/100}
	}
	cfg := DefaultConfig()
	cfg.MaxPerFranchise = 40
	engine, _ := testEngine(t, cfg, records, map[int][]similarity.Neighbor{1: neighbors})

	resp, err := engine.Recommend(context.Background(), Request{Game: "Hub"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Rows) != cfg.DisplayLimit {
		t.Errorf("got %d rows, want display limit %d", len(resp.Rows), cfg.DisplayLimit)
	}

	resp, err = engine.Recommend(context.Background(), Request{Game: "Hub", K: 5})
	if err != nil {
		t.Fatalf("Recommend with K: %v", err)
	}
	if len(resp.Rows) != 5 {
		t.Errorf("got %d rows, want 5", len(resp.Rows))
	}
}

// names40 generates distinct titles that do not share franchise stems.
func names40(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	return "Game " + string(letters[i%26]) + string(letters[(i/26)%26])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"zero display limit", func(c *Config) { c.DisplayLimit = 0 }, true},
		{"zero franchise bound", func(c *Config) { c.MaxPerFranchise = 0 }, true},
		{"bad recipe", func(c *Config) { c.DefaultRecipe = "vibes" }, true},
		{"cache without ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"disabled cache skips checks", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
