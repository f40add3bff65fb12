package model

// MatchMode is the substitution policy applied to a recipe step.
type MatchMode string

const (
	// MatchExactProduct is satisfied only by the linked product itself.
	MatchExactProduct MatchMode = "EXACT_PRODUCT"
	// MatchAnyInCategory is satisfied by any stocked product in the step's
	// category override, or in the linked product's category when no override is set.
	MatchAnyInCategory MatchMode = "ANY_IN_CATEGORY"
	// MatchAnyInParentCategory is satisfied by any stocked product in the linked
	// product's category, a sibling category, or the parent category itself.
	MatchAnyInParentCategory MatchMode = "ANY_IN_PARENT_CATEGORY"
)

// Known reports whether m is one of the supported match modes.
func (m MatchMode) Known() bool {
	switch m {
	case MatchExactProduct, MatchAnyInCategory, MatchAnyInParentCategory:
		return true
	}
	return false
}

// Recipe represents a cocktail recipe and its ordered ingredient steps.
type Recipe struct {
	ID          int64        `json:"id" db:"id" validate:"gt=0"`
	WorkspaceID int64        `json:"workspaceId" db:"workspace_id"`
	Name        string       `json:"name" db:"name"`
	Steps       []RecipeStep `json:"steps" validate:"dive"`
}

// RecipeStep is a single ingredient requirement of a recipe.
type RecipeStep struct {
	RecipeID int64 `json:"recipeId" db:"recipe_id"`
	Position int   `json:"position" db:"position" validate:"gte=0"`
	// ProductID is the linked product. It is the exact match for EXACT_PRODUCT
	// and the category source for the category based modes.
	ProductID *int64 `json:"productId,omitempty" db:"product_id" validate:"omitempty,gt=0"`
	// CategoryOverrideID replaces the linked product's category for
	// ANY_IN_CATEGORY only.
	CategoryOverrideID *int64    `json:"categoryOverrideId,omitempty" db:"category_override_id" validate:"omitempty,gt=0"`
	MatchMode          MatchMode `json:"matchMode" db:"match_mode" validate:"required"`
}

// AlmostThereRecipe is a recipe missing exactly one of its ingredients.
type AlmostThereRecipe struct {
	Recipe      Recipe     `json:"recipe"`
	MissingStep RecipeStep `json:"missingStep"`
}

// StepWarning describes a data-integrity problem found while evaluating a step.
type StepWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StepReadiness is the evaluated state of one recipe step.
type StepReadiness struct {
	Step    RecipeStep   `json:"step"`
	InStock bool         `json:"inStock"`
	Warning *StepWarning `json:"warning,omitempty"`
}

// RecipeReadiness is the per-recipe view returned to callers.
type RecipeReadiness struct {
	Recipe      Recipe          `json:"recipe"`
	Ready       bool            `json:"ready"`
	AlmostThere bool            `json:"almostThere"`
	MissingStep *RecipeStep     `json:"missingStep,omitempty"`
	Steps       []StepReadiness `json:"steps"`
}
