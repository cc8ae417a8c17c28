// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

// Package config loads and validates service configuration.
//
// Configuration is layered with koanf v2, later layers overriding
// earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML config file, found via CONFIG_PATH or DefaultConfigPaths
//  3. PLAYNEXT_* environment variables
//
// Environment variables map to config paths through an explicit table
// rather than mechanical underscore splitting, so multi-word keys like
// rate_limit_reqs resolve unambiguously. Validation combines
// go-playground/validator struct tags with cross-field checks in
// Config.Validate.
package config
