package handler

import (
	"net/http"
	"strconv"

	"barkeep/internal/model"
	"barkeep/internal/service"

	"github.com/rs/zerolog"
)

// DefaultAlmostThereLimit is used when the limit query parameter is absent.
const DefaultAlmostThereLimit = 10

// AvailableRecipesResponse lists the recipes that can be made now.
type AvailableRecipesResponse struct {
	WorkspaceID int64          `json:"workspaceId"`
	Count       int            `json:"count"`
	Recipes     []model.Recipe `json:"recipes"`
}

// AlmostThereRecipesResponse lists recipes missing a single ingredient.
type AlmostThereRecipesResponse struct {
	WorkspaceID int64                     `json:"workspaceId"`
	Limit       int                       `json:"limit"`
	Count       int                       `json:"count"`
	Recipes     []model.AlmostThereRecipe `json:"recipes"`
}

// RecipeHandler handles recipe readiness HTTP requests.
type RecipeHandler struct {
	service service.RecipeAvailabilityService
	logger  zerolog.Logger
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(service service.RecipeAvailabilityService, logger zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger.With().Str("handler", "recipe").Logger(),
	}
}

// Available handles GET /api/workspaces/{workspaceID}/recipes/available.
func (h *RecipeHandler) Available(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := h.pathID(w, r, "workspaceID", model.ErrInvalidWorkspace)
	if !ok {
		return
	}

	recipes, err := h.service.FindAvailableRecipes(r.Context(), workspaceID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, AvailableRecipesResponse{
		WorkspaceID: workspaceID,
		Count:       len(recipes),
		Recipes:     recipes,
	})
}

// AlmostThere handles GET /api/workspaces/{workspaceID}/recipes/almost-there?limit=N.
func (h *RecipeHandler) AlmostThere(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := h.pathID(w, r, "workspaceID", model.ErrInvalidWorkspace)
	if !ok {
		return
	}

	limit := DefaultAlmostThereLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidLimit, "invalid limit parameter", h.logger)
			return
		}
	}

	recipes, err := h.service.FindAlmostThereRecipes(r.Context(), workspaceID, limit)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, AlmostThereRecipesResponse{
		WorkspaceID: workspaceID,
		Limit:       min(limit, service.MaxAlmostThereLimit),
		Count:       len(recipes),
		Recipes:     recipes,
	})
}

// Readiness handles GET /api/workspaces/{workspaceID}/recipes/{recipeID}/readiness.
func (h *RecipeHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := h.pathID(w, r, "workspaceID", model.ErrInvalidWorkspace)
	if !ok {
		return
	}
	recipeID, ok := h.pathID(w, r, "recipeID", model.ErrInvalidRecipe)
	if !ok {
		return
	}

	readiness, err := h.service.GetRecipeReadiness(r.Context(), workspaceID, recipeID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, readiness)
}

// pathID parses a positive integer path value, writing invalid as a 400 when it is not one.
func (h *RecipeHandler) pathID(w http.ResponseWriter, r *http.Request, name string, invalid *model.DomainError) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, invalid.Code, invalid.Message, h.logger)
		return 0, false
	}
	return id, true
}
