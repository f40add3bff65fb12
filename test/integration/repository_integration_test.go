package integration

import (
	"context"
	"testing"

	"barkeep/internal/export"
	"barkeep/internal/metrics"
	"barkeep/internal/repository"
	"barkeep/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(repo repository.CatalogRepository) service.RecipeAvailabilityService {
	return service.NewRecipeAvailabilityService(repo, metrics.New(prometheus.NewRegistry()), zerolog.Nop())
}

func TestRecipeReadiness_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	svc := newService(repository.NewCatalogRepository(testDB.Pool, zerolog.Nop()))

	t.Run("Classifies the seeded bar", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBar(t, testDB.Pool)

		available, err := svc.FindAvailableRecipes(ctx, BarWorkspace)
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "Dark and Stormy", available[0].Name)

		almost, err := svc.FindAlmostThereRecipes(ctx, BarWorkspace, 10)
		require.NoError(t, err)
		require.Len(t, almost, 1)
		assert.Equal(t, "Daiquiri", almost[0].Recipe.Name)
		assert.Equal(t, 2, almost[0].MissingStep.Position)
	})

	t.Run("Restocking moves recipes between lists", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBar(t, testDB.Pool)
		SetStock(t, testDB.Pool, 4, 1)

		available, err := svc.FindAvailableRecipes(ctx, BarWorkspace)
		require.NoError(t, err)
		require.Len(t, available, 2)
		assert.Equal(t, int64(1), available[0].ID)
		assert.Equal(t, int64(2), available[1].ID)

		almost, err := svc.FindAlmostThereRecipes(ctx, BarWorkspace, 10)
		require.NoError(t, err)
		require.Len(t, almost, 1)
		assert.Equal(t, "Ti Punch", almost[0].Recipe.Name)
		assert.Equal(t, 0, almost[0].MissingStep.Position)
	})

	t.Run("Neighbouring workspace stays isolated", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBar(t, testDB.Pool)

		readiness, err := svc.GetRecipeReadiness(ctx, 2, 50)
		require.NoError(t, err)
		assert.True(t, readiness.Ready)

		_, err = svc.GetRecipeReadiness(ctx, BarWorkspace, 50)
		require.Error(t, err)
	})

	t.Run("Export round trip gives the same answers", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedBar(t, testDB.Pool)

		catalog, err := repository.NewCatalogRepository(testDB.Pool, zerolog.Nop()).LoadCatalog(ctx, BarWorkspace)
		require.NoError(t, err)

		dir := t.TempDir()
		_, err = export.WriteFile(dir, catalog)
		require.NoError(t, err)

		exportSvc := newService(export.NewCatalogRepository(export.NewFileLoader(dir, zerolog.Nop()), zerolog.Nop()))

		fromDB, err := svc.FindAlmostThereRecipes(ctx, BarWorkspace, 10)
		require.NoError(t, err)
		fromExport, err := exportSvc.FindAlmostThereRecipes(ctx, BarWorkspace, 10)
		require.NoError(t, err)
		assert.Equal(t, fromDB, fromExport)

		readyDB, err := svc.FindAvailableRecipes(ctx, BarWorkspace)
		require.NoError(t, err)
		readyExport, err := exportSvc.FindAvailableRecipes(ctx, BarWorkspace)
		require.NoError(t, err)
		assert.Equal(t, readyDB, readyExport)
	})
}
