// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

/*
Package main implements the playnext-etl command.

The ETL command converts a raw upstream catalog CSV export into the
cleaned JSON form the server loads at startup. Cleaning happens in the
catalog loader itself: numeric cells coerce to the zero "unknown"
sentinel, playtimes are capped, list-valued cells are normalized, and
the boardgamefamily column is parsed into series and game tags. The
command simply runs a load and writes the surviving records back out.

Usage:

	playnext-etl -in games_detailed_info.csv -out catalog.json
*/
package main

import (
	"flag"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tabletop-labs/playnext/internal/catalog"
	"github.com/tabletop-labs/playnext/internal/logging"
)

func main() {
	var (
		inPath  = flag.String("in", "", "raw catalog CSV export (required)")
		outPath = flag.String("out", "catalog.json", "cleaned JSON output path")
		indent  = flag.Bool("indent", false, "indent the JSON output")
		level   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logging.Init(logging.Config{Level: *level, Format: "console"})

	if *inPath == "" {
		flag.Usage()
		logging.Fatal().Msg("missing required -in flag")
	}

	start := time.Now()
	store, err := catalog.LoadCSVFile(*inPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", *inPath).Msg("Failed to load catalog")
	}

	records := make([]catalog.GameRecord, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		records = append(records, *store.At(i))
	}

	var data []byte
	if *indent {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to encode catalog")
	}

	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		logging.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write catalog")
	}

	logging.Info().
		Int("games", len(records)).
		Str("out", *outPath).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog converted")
}
