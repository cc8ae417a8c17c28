// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playnext/config.yaml",
	"/etc/playnext/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix scopes environment overrides to this service.
const envPrefix = "PLAYNEXT_"

// Load builds configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. PLAYNEXT_* environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names (without the PLAYNEXT_
// prefix, lowercased) to config paths. Explicit mappings avoid
// ambiguity between section separators and underscores inside key
// names (SERVER_RATE_LIMIT_REQS is server.rate_limit_reqs, not
// server.rate.limit.reqs).
var envMappings = map[string]string{
	"server_host":              "server.host",
	"server_port":              "server.port",
	"server_timeout":           "server.timeout",
	"server_rate_limit_reqs":   "server.rate_limit_reqs",
	"server_rate_limit_window": "server.rate_limit_window",
	"server_cors_origins":      "server.cors_origins",

	"catalog_path":   "catalog.path",
	"catalog_format": "catalog.format",

	"similarity_source":      "similarity.source",
	"similarity_matrix_path": "similarity.matrix_path",
	"similarity_edges_path":  "similarity.edges_path",
	"similarity_top_k":       "similarity.top_k",

	"recommend_display_limit":     "recommend.display_limit",
	"recommend_max_per_franchise": "recommend.max_per_franchise",
	"recommend_default_recipe":    "recommend.default_recipe",
	"recommend_cache_enabled":     "recommend.cache.enabled",
	"recommend_cache_ttl":         "recommend.cache.ttl",
	"recommend_cache_max_entries": "recommend.cache.max_entries",

	"dataset_url":          "dataset.url",
	"dataset_dir":          "dataset.dir",
	"dataset_timeout":      "dataset.timeout",
	"dataset_rate_per_sec": "dataset.rate_per_sec",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps a PLAYNEXT_* variable to its config path.
// Unknown variables are dropped rather than guessed at.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if path, ok := envMappings[key]; ok {
		return path
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when sourced from environment variables.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for
// known slice fields. Env vars arrive as strings but the config
// expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
