// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package catalog

import "strings"

// FamilyMetadata is the typed form of the semi-structured family field.
//
// The raw field is a semicolon-separated list of tagged parts such as
// "Series: Catan; Game: Catan; Digital Implementations: Tabletopia;
// Crowdfunding: Kickstarter".
type FamilyMetadata struct {
	// SeriesNames lists all "Series:" values, in order of appearance.
	SeriesNames []string `json:"series_names,omitempty"`

	// GameTags lists all "Game:" values, in order of appearance.
	GameTags []string `json:"game_tags,omitempty"`

	// IsDigital reports whether any digital implementation exists.
	IsDigital bool `json:"is_digital,omitempty"`

	// DigitalPlatforms lists named digital platforms, or "Other" when
	// the part carried no platform name.
	DigitalPlatforms []string `json:"digital_platforms,omitempty"`

	// IsCrowdfunded reports whether the game was crowdfunded.
	IsCrowdfunded bool `json:"is_crowdfunded,omitempty"`

	// CrowdfundPlatforms lists named crowdfunding platforms, or "Other".
	CrowdfundPlatforms []string `json:"crowdfund_platforms,omitempty"`

	// Raw keeps the unparsed parts for later mining.
	Raw []string `json:"family_meta,omitempty"`
}

// ParseFamilyField parses a raw family string into FamilyMetadata.
// Unrecognized parts are preserved in Raw; duplicate values within a
// list are dropped.
func ParseFamilyField(raw string) FamilyMetadata {
	var meta FamilyMetadata

	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		meta.Raw = append(meta.Raw, part)

		low := strings.ToLower(part)
		switch {
		case strings.HasPrefix(low, "series:"):
			if val := strings.TrimSpace(part[len("series:"):]); val != "" {
				meta.SeriesNames = appendUnique(meta.SeriesNames, val)
			}

		case strings.HasPrefix(low, "game:"):
			if val := strings.TrimSpace(part[len("game:"):]); val != "" {
				meta.GameTags = appendUnique(meta.GameTags, val)
			}

		case strings.HasPrefix(low, "digital implementation"):
			meta.IsDigital = true
			meta.DigitalPlatforms = appendUnique(meta.DigitalPlatforms, tailAfterColon(part))

		case strings.HasPrefix(low, "crowdfunding"):
			meta.IsCrowdfunded = true
			meta.CrowdfundPlatforms = appendUnique(meta.CrowdfundPlatforms, tailAfterColon(part))
		}
	}

	return meta
}

// tailAfterColon returns the trimmed text after the first colon, or
// "Other" when the part has no colon or an empty tail.
func tailAfterColon(part string) string {
	if _, tail, ok := strings.Cut(part, ":"); ok {
		if val := strings.TrimSpace(tail); val != "" {
			return val
		}
	}
	return "Other"
}

func appendUnique(list []string, val string) []string {
	for _, existing := range list {
		if existing == val {
			return list
		}
	}
	return append(list, val)
}
