// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package config

import (
	"time"

	"github.com/tabletop-labs/playnext/internal/recommend"
)

// Config is the root service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Recommend  recommend.Config `koanf:"recommend"`
	Dataset    DatasetConfig    `koanf:"dataset"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// RateLimitReqs requests per RateLimitWindow per client IP. Zero
	// disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// CatalogConfig locates the game catalog snapshot.
type CatalogConfig struct {
	// Path to the catalog file loaded at startup.
	Path string `koanf:"path" validate:"required"`

	// Format is "csv" or "json".
	Format string `koanf:"format" validate:"oneof=csv json"`
}

// SimilarityConfig locates the precomputed similarity data.
type SimilarityConfig struct {
	// Source selects the artifact form: "matrix" for dense per-recipe
	// score matrices, "table" for sparse precomputed neighbor edges.
	Source string `koanf:"source" validate:"oneof=matrix table"`

	// MatrixPath is the JSON score bundle, used when Source is "matrix".
	MatrixPath string `koanf:"matrix_path"`

	// EdgesPath is the CSV edge table, used when Source is "table".
	EdgesPath string `koanf:"edges_path"`

	// TopK caps the neighbors consulted per lookup.
	TopK int `koanf:"top_k" validate:"min=1"`
}

// DatasetConfig controls the optional catalog artifact downloader.
type DatasetConfig struct {
	// URL of the upstream catalog archive. Empty disables downloads.
	URL string `koanf:"url" validate:"omitempty,url"`

	// Dir receives downloaded artifacts.
	Dir string `koanf:"dir"`

	Timeout time.Duration `koanf:"timeout"`

	// RatePerSec throttles download bandwidth checks. Zero disables
	// throttling.
	RatePerSec float64 `koanf:"rate_per_sec" validate:"min=0"`
}

// LoggingConfig controls logger initialization.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns built-in defaults, applied before the config
// file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8093,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Catalog: CatalogConfig{
			Path:   "/data/gamedata.csv",
			Format: "csv",
		},
		Similarity: SimilarityConfig{
			Source:     "matrix",
			MatrixPath: "/data/similarity.json",
			EdgesPath:  "/data/similarity_edges.csv",
			TopK:       25,
		},
		Recommend: *recommend.DefaultConfig(),
		Dataset: DatasetConfig{
			URL:        "",
			Dir:        "/data",
			Timeout:    5 * time.Minute,
			RatePerSec: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
