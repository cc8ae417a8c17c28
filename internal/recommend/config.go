// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package recommend

import (
	"fmt"
	"time"

	"github.com/tabletop-labs/playnext/internal/similarity"
)

// Config controls engine behavior.
type Config struct {
	// DisplayLimit caps rows in a response. Applied after filtering.
	DisplayLimit int `koanf:"display_limit" json:"display_limit"`

	// MaxPerFranchise bounds franchise duplicates per response.
	MaxPerFranchise int `koanf:"max_per_franchise" json:"max_per_franchise"`

	// DefaultRecipe is used when a request names no recipe.
	DefaultRecipe similarity.Recipe `koanf:"default_recipe" json:"default_recipe"`

	// Cache controls the per-request memo cache.
	Cache CacheConfig `koanf:"cache" json:"cache"`
}

// CacheConfig controls the candidate memo cache. Cached entries hold
// pre-filter candidates, so requests differing only in filters share an
// entry.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled" json:"enabled"`
	TTL        time.Duration `koanf:"ttl" json:"ttl"`
	MaxEntries int           `koanf:"max_entries" json:"max_entries"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		DisplayLimit:    25,
		MaxPerFranchise: DefaultMaxPerFranchise,
		DefaultRecipe:   similarity.DefaultRecipe,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.DisplayLimit <= 0 {
		return fmt.Errorf("display_limit must be positive, got %d", c.DisplayLimit)
	}
	if c.MaxPerFranchise <= 0 {
		return fmt.Errorf("max_per_franchise must be positive, got %d", c.MaxPerFranchise)
	}
	if _, err := similarity.ParseRecipe(string(c.DefaultRecipe)); err != nil {
		return fmt.Errorf("default_recipe: %w", err)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}
