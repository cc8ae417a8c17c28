// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package similarity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// matrixFile is the on-disk layout of a precomputed score bundle:
// one dense square matrix per recipe, rows in catalog order.
type matrixFile struct {
	Matrices map[Recipe][][]float64 `json:"matrices"`
}

// LoadMatricesFile reads a JSON score bundle produced by the offline
// scoring job.
func LoadMatricesFile(path string) (map[Recipe][][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening similarity matrices: %w", err)
	}
	defer f.Close()
	return LoadMatrices(f)
}

// LoadMatrices decodes a JSON score bundle from r.
func LoadMatrices(r io.Reader) (map[Recipe][][]float64, error) {
	var mf matrixFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("decoding similarity matrices: %w", err)
	}
	if len(mf.Matrices) == 0 {
		return nil, fmt.Errorf("similarity bundle contains no matrices")
	}
	for recipe := range mf.Matrices {
		if _, err := ParseRecipe(string(recipe)); err != nil {
			return nil, err
		}
	}
	return mf.Matrices, nil
}

// Edge table columns. Header names come from the offline export.
const (
	colBaseID    = "base_game_id"
	colSimilarID = "similar_game_id"
	colScore     = "similarity_score"
	colRecipe    = "recipe"
)

// LoadEdgesFile reads a CSV edge table from path.
func LoadEdgesFile(path string) ([]Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening similarity edges: %w", err)
	}
	defer f.Close()
	return LoadEdges(f)
}

// LoadEdges reads a CSV edge table from r. The header row is required
// and column order is not assumed.
func LoadEdges(r io.Reader) ([]Edge, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading edge header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colBaseID, colSimilarID, colScore, colRecipe} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("edge table missing column %q", required)
		}
	}

	var edges []Edge
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading edge row %d: %w", line, err)
		}
		line++

		base, err := strconv.Atoi(row[cols[colBaseID]])
		if err != nil {
			return nil, fmt.Errorf("edge row %d: bad %s: %w", line, colBaseID, err)
		}
		similar, err := strconv.Atoi(row[cols[colSimilarID]])
		if err != nil {
			return nil, fmt.Errorf("edge row %d: bad %s: %w", line, colSimilarID, err)
		}
		score, err := strconv.ParseFloat(row[cols[colScore]], 64)
		if err != nil {
			return nil, fmt.Errorf("edge row %d: bad %s: %w", line, colScore, err)
		}
		recipe, err := ParseRecipe(strings.TrimSpace(row[cols[colRecipe]]))
		if err != nil {
			return nil, fmt.Errorf("edge row %d: %w", line, err)
		}

		edges = append(edges, Edge{BaseID: base, SimilarID: similar, Score: score, Recipe: recipe})
	}
	return edges, nil
}
