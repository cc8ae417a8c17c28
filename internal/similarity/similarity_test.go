// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package similarity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tabletop-labs/playnext/internal/catalog"
)

func testStore(t *testing.T, ids ...int) *catalog.Store {
	t.Helper()
	records := make([]catalog.GameRecord, len(ids))
	for i, id := range ids {
		records[i] = catalog.GameRecord{ID: id, Name: "Game " + string(rune('A'+i))}
	}
	store, err := catalog.NewStore(records)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestParseRecipe(t *testing.T) {
	tests := []struct {
		in      string
		want    Recipe
		wantErr bool
	}{
		{"mech", RecipeMechanics, false},
		{"cat", RecipeTheme, false},
		{"mixed", RecipeBlended, false},
		{"", DefaultRecipe, false},
		{"theme", "", true},
		{"MECH", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRecipe(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRecipe) {
				t.Errorf("ParseRecipe(%q): err = %v, want ErrUnknownRecipe", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRecipe(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRecipe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatrixProviderNeighbors(t *testing.T) {
	store := testStore(t, 10, 20, 30)
	matrices := map[Recipe][][]float64{
		RecipeBlended: {
			{1.00, 0.91, 0.85},
			{0.91, 1.00, 0.40},
			{0.85, 0.40, 1.00},
		},
	}
	p, err := NewMatrixProvider(store, matrices, 0)
	if err != nil {
		t.Fatalf("NewMatrixProvider: %v", err)
	}

	got, err := p.Neighbors(context.Background(), 10, RecipeBlended)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	want := []Neighbor{{GameID: 20, Score: 0.91}, {GameID: 30, Score: 0.85}}
	if len(got) != len(want) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbor %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMatrixProviderExcludesSelf(t *testing.T) {
	store := testStore(t, 1, 2)
	matrices := map[Recipe][][]float64{
		RecipeMechanics: {
			{1.00, 0.50},
			{0.50, 1.00},
		},
	}
	p, err := NewMatrixProvider(store, matrices, 0)
	if err != nil {
		t.Fatalf("NewMatrixProvider: %v", err)
	}

	got, err := p.Neighbors(context.Background(), 1, RecipeMechanics)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	for _, n := range got {
		if n.GameID == 1 {
			t.Errorf("query game appeared in its own neighbors: %+v", n)
		}
	}
}

func TestMatrixProviderTopK(t *testing.T) {
	ids := make([]int, 30)
	for i := range ids {
		ids[i] = i + 1
	}
	store := testStore(t, ids...)

	m := make([][]float64, 30)
	for i := range m {
		m[i] = make([]float64, 30)
		for j := range m[i] {
			m[i][j] = float64(j) / 30
		}
	}
	p, err := NewMatrixProvider(store, map[Recipe][][]float64{RecipeBlended: m}, 0)
	if err != nil {
		t.Fatalf("NewMatrixProvider: %v", err)
	}

	got, err := p.Neighbors(context.Background(), 1, RecipeBlended)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(got) != DefaultTopK {
		t.Errorf("got %d neighbors, want %d", len(got), DefaultTopK)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("neighbors not sorted: %f after %f", got[i].Score, got[i-1].Score)
		}
	}
}

func TestMatrixProviderErrors(t *testing.T) {
	store := testStore(t, 1, 2)
	m := [][]float64{{1, 0.5}, {0.5, 1}}
	p, err := NewMatrixProvider(store, map[Recipe][][]float64{RecipeBlended: m}, 0)
	if err != nil {
		t.Fatalf("NewMatrixProvider: %v", err)
	}

	if _, err := p.Neighbors(context.Background(), 99, RecipeBlended); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("unknown game: err = %v, want ErrUnknownGame", err)
	}
	if _, err := p.Neighbors(context.Background(), 1, Recipe("bogus")); !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("bogus recipe: err = %v, want ErrUnknownRecipe", err)
	}
	// Valid recipe with no loaded matrix is still unknown here.
	if _, err := p.Neighbors(context.Background(), 1, RecipeTheme); !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("unloaded recipe: err = %v, want ErrUnknownRecipe", err)
	}
}

func TestNewMatrixProviderRejectsBadDimensions(t *testing.T) {
	store := testStore(t, 1, 2, 3)
	bad := map[Recipe][][]float64{
		RecipeBlended: {{1, 0.5}, {0.5, 1}},
	}
	if _, err := NewMatrixProvider(store, bad, 0); err == nil {
		t.Error("expected dimension error, got nil")
	}
}

func TestTableProviderNeighbors(t *testing.T) {
	store := testStore(t, 1, 2, 3, 4)
	edges := []Edge{
		{BaseID: 1, SimilarID: 3, Score: 0.70, Recipe: RecipeBlended},
		{BaseID: 1, SimilarID: 2, Score: 0.91, Recipe: RecipeBlended},
		{BaseID: 1, SimilarID: 1, Score: 1.00, Recipe: RecipeBlended}, // self, dropped
		{BaseID: 1, SimilarID: 4, Score: 0.91, Recipe: RecipeMechanics},
		{BaseID: 2, SimilarID: 1, Score: 0.91, Recipe: RecipeBlended},
	}
	p, err := NewTableProvider(store, edges, 0)
	if err != nil {
		t.Fatalf("NewTableProvider: %v", err)
	}

	got, err := p.Neighbors(context.Background(), 1, RecipeBlended)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	want := []Neighbor{{GameID: 2, Score: 0.91}, {GameID: 3, Score: 0.70}}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("neighbor %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTableProviderKnownGameNoEdges(t *testing.T) {
	store := testStore(t, 1, 2)
	edges := []Edge{{BaseID: 1, SimilarID: 2, Score: 0.5, Recipe: RecipeBlended}}
	p, err := NewTableProvider(store, edges, 0)
	if err != nil {
		t.Fatalf("NewTableProvider: %v", err)
	}

	// Game 2 is in the catalog but has no outgoing edges: empty, no error.
	got, err := p.Neighbors(context.Background(), 2, RecipeBlended)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}

	if _, err := p.Neighbors(context.Background(), 99, RecipeBlended); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("unknown game: err = %v, want ErrUnknownGame", err)
	}
	if _, err := p.Neighbors(context.Background(), 1, Recipe("bogus")); !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("bogus recipe: err = %v, want ErrUnknownRecipe", err)
	}
}

func TestLoadEdges(t *testing.T) {
	in := `base_game_id,similar_game_id,similarity_score,recipe
1,2,0.91,mixed
1,3,0.85,mech
2,1,0.91,cat
`
	edges, err := LoadEdges(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadEdges: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}
	want := Edge{BaseID: 1, SimilarID: 2, Score: 0.91, Recipe: RecipeBlended}
	if edges[0] != want {
		t.Errorf("edge 0 = %+v, want %+v", edges[0], want)
	}
}

func TestLoadEdgesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing column", "base_game_id,similar_game_id,similarity_score\n1,2,0.5\n"},
		{"bad id", "base_game_id,similar_game_id,similarity_score,recipe\nx,2,0.5,mixed\n"},
		{"bad score", "base_game_id,similar_game_id,similarity_score,recipe\n1,2,high,mixed\n"},
		{"bad recipe", "base_game_id,similar_game_id,similarity_score,recipe\n1,2,0.5,vibes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadEdges(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMatrices(t *testing.T) {
	in := `{"matrices":{"mixed":[[1,0.5],[0.5,1]],"mech":[[1,0.2],[0.2,1]]}}`
	got, err := LoadMatrices(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadMatrices: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matrices, want 2", len(got))
	}
	if got[RecipeBlended][0][1] != 0.5 {
		t.Errorf("mixed[0][1] = %f, want 0.5", got[RecipeBlended][0][1])
	}

	if _, err := LoadMatrices(strings.NewReader(`{"matrices":{}}`)); err == nil {
		t.Error("empty bundle: expected error, got nil")
	}
	if _, err := LoadMatrices(strings.NewReader(`{"matrices":{"vibes":[[1]]}}`)); err == nil {
		t.Error("unknown recipe: expected error, got nil")
	}
}
