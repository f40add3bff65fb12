package service

import (
	"context"

	"barkeep/internal/model"
)

// RecipeAvailabilityService answers readiness questions over a workspace's recipes.
type RecipeAvailabilityService interface {
	// FindAvailableRecipes returns every recipe that can be made right now,
	// ordered by recipe ID.
	FindAvailableRecipes(ctx context.Context, workspaceID int64) ([]model.Recipe, error)

	// FindAlmostThereRecipes returns up to limit recipes that are missing
	// exactly one of two or more ingredients, ordered by recipe ID.
	FindAlmostThereRecipes(ctx context.Context, workspaceID int64, limit int) ([]model.AlmostThereRecipe, error)

	// GetRecipeReadiness returns the per-step view of a single recipe.
	GetRecipeReadiness(ctx context.Context, workspaceID, recipeID int64) (*model.RecipeReadiness, error)
}
