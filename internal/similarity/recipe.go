// PlayNext - Board Game Recommendation Service
// Copyright 2026 The PlayNext Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tabletop-labs/playnext

package similarity

import "fmt"

// Recipe selects which similarity weighting to consult. Each recipe is
// a separately precomputed score set; recipes are not combined at query
// time.
type Recipe string

const (
	// RecipeMechanics weights shared gameplay mechanisms.
	RecipeMechanics Recipe = "mech"

	// RecipeTheme weights shared categories and theme.
	RecipeTheme Recipe = "cat"

	// RecipeBlended is the default blend of mechanics and theme.
	RecipeBlended Recipe = "mixed"
)

// DefaultRecipe is used when a request does not name a recipe.
const DefaultRecipe = RecipeBlended

// ParseRecipe validates a recipe identifier. The empty string maps to
// DefaultRecipe.
func ParseRecipe(s string) (Recipe, error) {
	switch Recipe(s) {
	case "":
		return DefaultRecipe, nil
	case RecipeMechanics, RecipeTheme, RecipeBlended:
		return Recipe(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRecipe, s)
	}
}

// Recipes lists all valid recipe identifiers.
func Recipes() []Recipe {
	return []Recipe{RecipeMechanics, RecipeTheme, RecipeBlended}
}
