package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barkeep/internal/handler"
	"barkeep/internal/metrics"
	"barkeep/internal/model"
	"barkeep/internal/repository"
	"barkeep/internal/router"
	"barkeep/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()

	catalogRepo := repository.NewCatalogRepository(testDB.Pool, logger)
	recipeService := service.NewRecipeAvailabilityService(catalogRepo, metrics.New(registry), logger)
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)

	return router.New(recipeHandler, registry, testAPIKey, logger)
}

func get(t *testing.T, server http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestRecipeAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	CleanupDB(t, testDB.Pool)
	SeedBar(t, testDB.Pool)

	t.Run("GET available recipes", func(t *testing.T) {
		w := get(t, server, "/api/workspaces/1/recipes/available")
		require.Equal(t, http.StatusOK, w.Code)

		var body handler.AvailableRecipesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, "Dark and Stormy", body.Recipes[0].Name)
		assert.Len(t, body.Recipes[0].Steps, 2)
	})

	t.Run("GET almost-there recipes", func(t *testing.T) {
		w := get(t, server, "/api/workspaces/1/recipes/almost-there?limit=5")
		require.Equal(t, http.StatusOK, w.Code)

		var body handler.AlmostThereRecipesResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, 5, body.Limit)
		require.Len(t, body.Recipes, 1)
		assert.Equal(t, int64(1), body.Recipes[0].Recipe.ID)
		require.NotNil(t, body.Recipes[0].MissingStep.ProductID)
		assert.Equal(t, int64(4), *body.Recipes[0].MissingStep.ProductID)
	})

	t.Run("GET recipe readiness", func(t *testing.T) {
		w := get(t, server, "/api/workspaces/1/recipes/4/readiness")
		require.Equal(t, http.StatusOK, w.Code)

		var body model.RecipeReadiness
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.False(t, body.Ready)
		assert.False(t, body.AlmostThere)
		require.Len(t, body.Steps, 3)
		assert.False(t, body.Steps[0].InStock)
		assert.False(t, body.Steps[1].InStock)
		assert.True(t, body.Steps[2].InStock)
	})

	t.Run("GET unknown recipe returns 404", func(t *testing.T) {
		w := get(t, server, "/api/workspaces/1/recipes/999/readiness")
		assert.Equal(t, http.StatusNotFound, w.Code)

		var body model.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, model.ErrCodeRecipeNotFound, body.Error)
		assert.Equal(t, w.Header().Get("X-Request-ID"), body.CorrelationID)
	})

	t.Run("Invalid limit returns 400", func(t *testing.T) {
		w := get(t, server, "/api/workspaces/1/recipes/almost-there?limit=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Database outage returns 503", func(t *testing.T) {
		closedDB := SetupTestDB(t)
		closedServer := setupTestServer(t, closedDB)
		closedDB.Pool.Close()

		w := get(t, closedServer, "/api/workspaces/1/recipes/available")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCORS_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	req := httptest.NewRequest(http.MethodOptions, "/api/workspaces/1/recipes/available", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
