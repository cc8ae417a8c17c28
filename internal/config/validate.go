// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags plus the cross-field constraints the tag
// syntax cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			v := verrs[0]
			return fmt.Errorf("field %s failed %q validation (value %v)", v.Namespace(), v.Tag(), v.Value())
		}
		return err
	}

	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}

	switch c.Similarity.Source {
	case "matrix":
		if c.Similarity.MatrixPath == "" {
			return fmt.Errorf("similarity.matrix_path is required when source is matrix")
		}
	case "table":
		if c.Similarity.EdgesPath == "" {
			return fmt.Errorf("similarity.edges_path is required when source is table")
		}
	}

	if c.Dataset.URL != "" {
		if c.Dataset.Dir == "" {
			return fmt.Errorf("dataset.dir is required when dataset.url is set")
		}
		if c.Dataset.Timeout <= 0 {
			return fmt.Errorf("dataset.timeout must be positive when dataset.url is set")
		}
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	return nil
}
