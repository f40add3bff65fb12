package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"barkeep/internal/middleware"
	"barkeep/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecipeAvailabilityService is a mock implementation of RecipeAvailabilityService.
type MockRecipeAvailabilityService struct {
	mock.Mock
}

func (m *MockRecipeAvailabilityService) FindAvailableRecipes(ctx context.Context, workspaceID int64) ([]model.Recipe, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeAvailabilityService) FindAlmostThereRecipes(ctx context.Context, workspaceID int64, limit int) ([]model.AlmostThereRecipe, error) {
	args := m.Called(ctx, workspaceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AlmostThereRecipe), args.Error(1)
}

func (m *MockRecipeAvailabilityService) GetRecipeReadiness(ctx context.Context, workspaceID, recipeID int64) (*model.RecipeReadiness, error) {
	args := m.Called(ctx, workspaceID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeReadiness), args.Error(1)
}

func ptr(v int64) *int64 { return &v }

var daiquiri = model.Recipe{
	ID:          1,
	WorkspaceID: 5,
	Name:        "Daiquiri",
	Steps: []model.RecipeStep{
		{RecipeID: 1, Position: 0, ProductID: ptr(10), MatchMode: model.MatchAnyInParentCategory},
		{RecipeID: 1, Position: 1, ProductID: ptr(12), MatchMode: model.MatchExactProduct},
	},
}

// serve routes req through a mux so path values are populated.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	middleware.RequestID(mux).ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRecipeHandler_Available(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockReturn     []model.Recipe
		mockError      error
		expectService  bool
		workspaceID    int64
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			path:           "/api/workspaces/5/recipes/available",
			mockReturn:     []model.Recipe{daiquiri},
			expectService:  true,
			workspaceID:    5,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty result",
			path:           "/api/workspaces/5/recipes/available",
			mockReturn:     []model.Recipe{},
			expectService:  true,
			workspaceID:    5,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Non numeric workspace",
			path:           "/api/workspaces/abc/recipes/available",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidWorkspace,
		},
		{
			name:           "Zero workspace",
			path:           "/api/workspaces/0/recipes/available",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidWorkspace,
		},
		{
			name:           "Snapshot unavailable",
			path:           "/api/workspaces/5/recipes/available",
			mockError:      fmt.Errorf("%w: %w", model.ErrSnapshotUnavailable, errors.New("connection reset")),
			expectService:  true,
			workspaceID:    5,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   model.ErrCodeSnapshotUnavailable,
		},
		{
			name:           "Unexpected error",
			path:           "/api/workspaces/5/recipes/available",
			mockError:      errors.New("boom"),
			expectService:  true,
			workspaceID:    5,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecipeAvailabilityService)
			if tt.expectService {
				svc.On("FindAvailableRecipes", mock.Anything, tt.workspaceID).Return(tt.mockReturn, tt.mockError)
			}
			h := NewRecipeHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := serve("GET /api/workspaces/{workspaceID}/recipes/available", h.Available, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			if tt.expectedStatus == http.StatusOK {
				var body AvailableRecipesResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.workspaceID, body.WorkspaceID)
				assert.Equal(t, len(tt.mockReturn), body.Count)
				assert.NotNil(t, body.Recipes)
			} else {
				body := decodeError(t, w)
				assert.Equal(t, tt.expectedCode, body.Error)
				assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), body.CorrelationID)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestRecipeHandler_AlmostThere(t *testing.T) {
	almost := []model.AlmostThereRecipe{{Recipe: daiquiri, MissingStep: daiquiri.Steps[1]}}

	tests := []struct {
		name           string
		query          string
		expectService  bool
		limit          int
		mockError      error
		expectedStatus int
		expectedLimit  int
		expectedCode   string
	}{
		{
			name:           "Default limit",
			expectService:  true,
			limit:          DefaultAlmostThereLimit,
			expectedStatus: http.StatusOK,
			expectedLimit:  DefaultAlmostThereLimit,
		},
		{
			name:           "Custom limit",
			query:          "?limit=3",
			expectService:  true,
			limit:          3,
			expectedStatus: http.StatusOK,
			expectedLimit:  3,
		},
		{
			name:           "Limit above cap reports the cap",
			query:          "?limit=500",
			expectService:  true,
			limit:          500,
			expectedStatus: http.StatusOK,
			expectedLimit:  100,
		},
		{
			name:           "Non numeric limit",
			query:          "?limit=lots",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidLimit,
		},
		{
			name:           "Zero limit rejected by service",
			query:          "?limit=0",
			expectService:  true,
			limit:          0,
			mockError:      model.ErrInvalidLimit,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecipeAvailabilityService)
			if tt.expectService {
				if tt.mockError != nil {
					svc.On("FindAlmostThereRecipes", mock.Anything, int64(5), tt.limit).Return(nil, tt.mockError)
				} else {
					svc.On("FindAlmostThereRecipes", mock.Anything, int64(5), tt.limit).Return(almost, nil)
				}
			}
			h := NewRecipeHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/api/workspaces/5/recipes/almost-there"+tt.query, nil)
			w := serve("GET /api/workspaces/{workspaceID}/recipes/almost-there", h.AlmostThere, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body AlmostThereRecipesResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedLimit, body.Limit)
				require.Len(t, body.Recipes, 1)
				assert.Equal(t, 1, body.Recipes[0].MissingStep.Position)
			} else {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}

			svc.AssertExpectations(t)
		})
	}
}

func TestRecipeHandler_Readiness(t *testing.T) {
	missing := daiquiri.Steps[1]
	readiness := &model.RecipeReadiness{
		Recipe:      daiquiri,
		AlmostThere: true,
		MissingStep: &missing,
		Steps: []model.StepReadiness{
			{Step: daiquiri.Steps[0], InStock: true},
			{Step: daiquiri.Steps[1], Warning: &model.StepWarning{Code: "DANGLING_PRODUCT", Message: "product 12 not found"}},
		},
	}

	tests := []struct {
		name           string
		path           string
		expectService  bool
		recipeID       int64
		mockReturn     *model.RecipeReadiness
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			path:           "/api/workspaces/5/recipes/1/readiness",
			expectService:  true,
			recipeID:       1,
			mockReturn:     readiness,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Recipe not found",
			path:           "/api/workspaces/5/recipes/77/readiness",
			expectService:  true,
			recipeID:       77,
			mockError:      model.ErrRecipeNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeRecipeNotFound,
		},
		{
			name:           "Invalid recipe ID",
			path:           "/api/workspaces/5/recipes/-2/readiness",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidRecipe,
		},
		{
			name:           "Invalid workspace ID",
			path:           "/api/workspaces/x/recipes/1/readiness",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidWorkspace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecipeAvailabilityService)
			if tt.expectService {
				svc.On("GetRecipeReadiness", mock.Anything, int64(5), tt.recipeID).Return(tt.mockReturn, tt.mockError)
			}
			h := NewRecipeHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := serve("GET /api/workspaces/{workspaceID}/recipes/{recipeID}/readiness", h.Readiness, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, false, body["ready"])
				assert.Equal(t, true, body["almostThere"])
				steps := body["steps"].([]any)
				require.Len(t, steps, 2)
				warning := steps[1].(map[string]any)["warning"].(map[string]any)
				assert.Equal(t, "DANGLING_PRODUCT", warning["code"])
			} else {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}

			svc.AssertExpectations(t)
		})
	}
}
