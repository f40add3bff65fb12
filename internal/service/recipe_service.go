package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"barkeep/internal/availability"
	"barkeep/internal/metrics"
	"barkeep/internal/model"
	"barkeep/internal/repository"

	"github.com/rs/zerolog"
)

// MaxAlmostThereLimit caps the number of almost-there recipes per query.
const MaxAlmostThereLimit = 100

// recipeAvailabilityService implements RecipeAvailabilityService.
type recipeAvailabilityService struct {
	catalogRepo repository.CatalogRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewRecipeAvailabilityService creates a new recipe availability service.
func NewRecipeAvailabilityService(
	catalogRepo repository.CatalogRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) RecipeAvailabilityService {
	return &recipeAvailabilityService{
		catalogRepo: catalogRepo,
		metrics:     m,
		logger:      logger.With().Str("service", "recipe-availability").Logger(),
	}
}

// FindAvailableRecipes returns every recipe of the workspace that is ready.
func (s *recipeAvailabilityService) FindAvailableRecipes(ctx context.Context, workspaceID int64) (recipes []model.Recipe, err error) {
	defer func(start time.Time) { s.metrics.ObserveQuery(metrics.QueryAvailable, start, err) }(time.Now())

	catalog, snap, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	recipes = []model.Recipe{}
	for _, recipe := range sortedRecipes(catalog.Recipes) {
		if s.classify(recipe, snap).Ready {
			recipes = append(recipes, recipe)
		}
	}

	s.logger.Debug().
		Int64("workspace_id", workspaceID).
		Int("recipes", len(catalog.Recipes)).
		Int("available", len(recipes)).
		Msg("available recipes computed")

	return recipes, nil
}

// FindAlmostThereRecipes returns recipes missing exactly one ingredient.
// Limits above MaxAlmostThereLimit are capped.
func (s *recipeAvailabilityService) FindAlmostThereRecipes(ctx context.Context, workspaceID int64, limit int) (results []model.AlmostThereRecipe, err error) {
	defer func(start time.Time) { s.metrics.ObserveQuery(metrics.QueryAlmostThere, start, err) }(time.Now())

	if limit <= 0 {
		s.logger.Warn().Int("limit", limit).Msg("almost-there limit must be positive")
		return nil, model.ErrInvalidLimit
	}
	if limit > MaxAlmostThereLimit {
		limit = MaxAlmostThereLimit
	}

	catalog, snap, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	results = []model.AlmostThereRecipe{}
	for _, recipe := range sortedRecipes(catalog.Recipes) {
		if len(results) == limit {
			break
		}
		almost := s.classify(recipe, snap).AlmostThere()
		if almost.Qualifies {
			results = append(results, model.AlmostThereRecipe{
				Recipe:      recipe,
				MissingStep: *almost.MissingStep,
			})
		}
	}

	s.logger.Debug().
		Int64("workspace_id", workspaceID).
		Int("limit", limit).
		Int("almost_there", len(results)).
		Msg("almost-there recipes computed")

	return results, nil
}

// GetRecipeReadiness classifies a single recipe of the workspace.
func (s *recipeAvailabilityService) GetRecipeReadiness(ctx context.Context, workspaceID, recipeID int64) (result *model.RecipeReadiness, err error) {
	defer func(start time.Time) { s.metrics.ObserveQuery(metrics.QueryReadiness, start, err) }(time.Now())

	if recipeID <= 0 {
		return nil, model.ErrInvalidRecipe
	}

	catalog, snap, err := s.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(catalog.Recipes, func(r model.Recipe) bool { return r.ID == recipeID })
	if idx < 0 {
		s.logger.Debug().
			Int64("workspace_id", workspaceID).
			Int64("recipe_id", recipeID).
			Msg("recipe not found")
		return nil, model.ErrRecipeNotFound
	}

	recipe := catalog.Recipes[idx]
	readiness := s.classify(recipe, snap)
	almost := readiness.AlmostThere()

	return &model.RecipeReadiness{
		Recipe:      recipe,
		Ready:       readiness.Ready,
		AlmostThere: almost.Qualifies,
		MissingStep: almost.MissingStep,
		Steps:       readiness.Steps,
	}, nil
}

// load reads the workspace once and builds the snapshot every recipe of the
// call is evaluated against.
func (s *recipeAvailabilityService) load(ctx context.Context, workspaceID int64) (*model.WorkspaceCatalog, *availability.Snapshot, error) {
	if workspaceID <= 0 {
		s.logger.Warn().Int64("workspace_id", workspaceID).Msg("invalid workspace ID")
		return nil, nil, model.ErrInvalidWorkspace
	}

	catalog, err := s.catalogRepo.LoadCatalog(ctx, workspaceID)
	if err != nil {
		s.logger.Error().Err(err).Int64("workspace_id", workspaceID).Msg("failed to load inventory snapshot")
		return nil, nil, fmt.Errorf("%w: %w", model.ErrSnapshotUnavailable, err)
	}
	if catalog == nil {
		s.logger.Error().Int64("workspace_id", workspaceID).Msg("catalog source returned no data")
		return nil, nil, model.ErrSnapshotUnavailable
	}
	if catalog.WorkspaceID != workspaceID {
		s.logger.Error().
			Int64("workspace_id", workspaceID).
			Int64("catalog_workspace_id", catalog.WorkspaceID).
			Msg("catalog belongs to another workspace")
		return nil, nil, fmt.Errorf("%w: catalog is for workspace %d", model.ErrSnapshotUnavailable, catalog.WorkspaceID)
	}

	snap := availability.NewSnapshotFromCatalog(catalog)
	if excluded := snap.ExcludedProducts(); excluded > 0 {
		s.logger.Warn().
			Int64("workspace_id", workspaceID).
			Int("excluded_products", excluded).
			Msg("ignoring products from other workspaces")
	}

	return catalog, snap, nil
}

// classify evaluates a recipe and reports its warnings and verdict.
func (s *recipeAvailabilityService) classify(recipe model.Recipe, snap *availability.Snapshot) availability.Readiness {
	readiness := availability.Classify(recipe, snap)

	for _, step := range readiness.Warnings() {
		s.logger.Warn().
			Int64("workspace_id", snap.WorkspaceID()).
			Int64("recipe_id", recipe.ID).
			Int("position", step.Step.Position).
			Str("code", step.Warning.Code).
			Msg(step.Warning.Message)
		s.metrics.StepWarning(step.Warning.Code)
	}

	switch {
	case readiness.Ready:
		s.metrics.RecipeClassified(metrics.VerdictReady)
	case readiness.AlmostThere().Qualifies:
		s.metrics.RecipeClassified(metrics.VerdictAlmostThere)
	default:
		s.metrics.RecipeClassified(metrics.VerdictUnready)
	}

	return readiness
}

// sortedRecipes returns the recipes ordered by ID without touching the input.
func sortedRecipes(recipes []model.Recipe) []model.Recipe {
	sorted := slices.Clone(recipes)
	slices.SortStableFunc(sorted, func(a, b model.Recipe) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
