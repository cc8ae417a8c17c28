// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Expected CSV column names. The loader is tolerant of column order and
// of extra columns; it is strict only about id and name being present.
const (
	colID          = "id"
	colName        = "name"
	colYear        = "yearpublished"
	colMinPlayers  = "minplayers"
	colMaxPlayers  = "maxplayers"
	colPlayingTime = "playingtime"
	colAverage     = "average"
	colBayes       = "bayesaverage"
	colWeight      = "averageweight"
	colRank        = "bggrank"
	colRankAlt     = "board game rank"
	colDescription = "description"
	colThumbnail   = "thumbnail"
	colCategories  = "category_list"
	colMechanics   = "mech_list"
	colTags        = "tags"
	colFamily      = "boardgamefamily"
)

// LoadCSVFile reads a catalog CSV from path and builds a Store.
func LoadCSVFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	store, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return store, nil
}

// LoadCSV reads catalog rows from r and builds a Store.
//
// Rows without a parseable id, or without a name, are rejected: a
// corrupt primary key is a fatal load error, not a coercible cell.
// Every other numeric cell coerces to 0 ("unknown") on failure.
func LoadCSV(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows tolerated; missing cells read as unknown

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols[colID]; !ok {
		return nil, fmt.Errorf("catalog is missing required column %q", colID)
	}
	if _, ok := cols[colName]; !ok {
		return nil, fmt.Errorf("catalog is missing required column %q", colName)
	}

	var records []GameRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		rec, err := rowToRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return NewStore(records)
}

// LoadJSONFile reads a cleaned JSON catalog (as written by the ETL
// command) from path and builds a Store.
func LoadJSONFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var records []GameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i := range records {
		records[i].PlayingTime = capPlaytime(records[i].PlayingTime)
	}

	return NewStore(records)
}

func rowToRecord(row []string, cols map[string]int) (GameRecord, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	id, err := strconv.Atoi(cell(colID))
	if err != nil {
		return GameRecord{}, fmt.Errorf("bad game id %q", cell(colID))
	}
	name := cell(colName)
	if name == "" {
		return GameRecord{}, fmt.Errorf("game %d has an empty name", id)
	}

	rank := coerceInt(cell(colRank))
	if rank == 0 {
		rank = coerceInt(cell(colRankAlt))
	}

	rec := GameRecord{
		ID:            id,
		Name:          name,
		NameKey:       NameKeyOf(name),
		YearPublished: coerceInt(cell(colYear)),
		MinPlayers:    coerceInt(cell(colMinPlayers)),
		MaxPlayers:    coerceInt(cell(colMaxPlayers)),
		PlayingTime:   capPlaytime(coerceInt(cell(colPlayingTime))),
		AverageRating: coerceFloat(cell(colAverage)),
		BayesRating:   coerceFloat(cell(colBayes)),
		Weight:        coerceFloat(cell(colWeight)),
		Rank:          rank,
		Description:   cell(colDescription),
		Thumbnail:     cell(colThumbnail),
		Categories:    parseList(cell(colCategories)),
		Mechanics:     parseList(cell(colMechanics)),
		Tags:          parseList(cell(colTags)),
	}

	if family := cell(colFamily); family != "" {
		rec.Family = ParseFamilyField(family)
	}

	return rec, nil
}

// coerceInt parses s as an integer, accepting float-formatted cells
// ("1995.0") from upstream exports. Unparseable cells coerce to 0,
// the "unknown" sentinel.
func coerceInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// coerceFloat parses s as a float; unparseable cells coerce to 0.
func coerceFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func capPlaytime(minutes int) int {
	if minutes > PlaytimeCeiling {
		return PlaytimeCeiling
	}
	return minutes
}

// parseList splits a list-valued cell. Upstream exports write these
// either as bracketed python-style lists ("['Economic', 'Trains']") or
// as plain separator-joined strings; both forms are accepted.
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil
	}

	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}

	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
