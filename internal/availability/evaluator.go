package availability

import (
	"fmt"

	"barkeep/internal/model"
)

// Warning codes attached to steps that could not be resolved.
const (
	WarnDanglingProduct  = "DANGLING_PRODUCT"
	WarnDanglingCategory = "DANGLING_CATEGORY"
	WarnUnknownMatchMode = "UNKNOWN_MATCH_MODE"
	WarnMalformedStep    = "MALFORMED_STEP"
)

// stepMatcher decides one match mode. A non-nil warning always means the
// step is unsatisfied.
type stepMatcher func(step model.RecipeStep, snap *Snapshot) (bool, *model.StepWarning)

var matchers = map[model.MatchMode]stepMatcher{
	model.MatchExactProduct:        matchExactProduct,
	model.MatchAnyInCategory:       matchAnyInCategory,
	model.MatchAnyInParentCategory: matchAnyInParentCategory,
}

// Evaluate reports whether step is effectively in stock in snap.
// Unresolvable steps are unsatisfied and carry a warning instead of failing.
func Evaluate(step model.RecipeStep, snap *Snapshot) model.StepReadiness {
	match, ok := matchers[step.MatchMode]
	if !ok {
		return model.StepReadiness{
			Step:    step,
			Warning: warn(WarnUnknownMatchMode, "unknown match mode %q", step.MatchMode),
		}
	}

	inStock, warning := match(step, snap)
	return model.StepReadiness{
		Step:    step,
		InStock: inStock && warning == nil,
		Warning: warning,
	}
}

func matchExactProduct(step model.RecipeStep, snap *Snapshot) (bool, *model.StepWarning) {
	product, w := linkedProduct(step, snap)
	if w != nil {
		return false, w
	}
	return product.InStock(), nil
}

func matchAnyInCategory(step model.RecipeStep, snap *Snapshot) (bool, *model.StepWarning) {
	var categoryID int64
	if step.CategoryOverrideID != nil {
		categoryID = *step.CategoryOverrideID
	} else {
		product, w := linkedProduct(step, snap)
		if w != nil {
			return false, w
		}
		categoryID = product.CategoryID
	}

	if _, ok := snap.Category(categoryID); !ok {
		return false, warn(WarnDanglingCategory, "category %d is not in the inventory snapshot", categoryID)
	}
	return snap.HasStockInCategory(categoryID), nil
}

func matchAnyInParentCategory(step model.RecipeStep, snap *Snapshot) (bool, *model.StepWarning) {
	product, w := linkedProduct(step, snap)
	if w != nil {
		return false, w
	}

	own, ok := snap.Category(product.CategoryID)
	if !ok {
		return false, warn(WarnDanglingCategory, "category %d of product %d is not in the inventory snapshot", product.CategoryID, product.ID)
	}
	// No parent means no family to draw from, not even the category itself.
	if !own.HasParent() {
		return false, nil
	}

	for _, candidate := range snap.family(own) {
		if Interchangeable(own, candidate) && snap.HasStockInCategory(candidate.ID) {
			return true, nil
		}
	}
	return false, nil
}

func linkedProduct(step model.RecipeStep, snap *Snapshot) (model.Product, *model.StepWarning) {
	if step.ProductID == nil {
		return model.Product{}, warn(WarnMalformedStep, "step %d of recipe %d has no linked product", step.Position, step.RecipeID)
	}
	product, ok := snap.Product(*step.ProductID)
	if !ok {
		return model.Product{}, warn(WarnDanglingProduct, "product %d is not in the inventory snapshot", *step.ProductID)
	}
	return product, nil
}

func warn(code, format string, args ...any) *model.StepWarning {
	return &model.StepWarning{Code: code, Message: fmt.Sprintf(format, args...)}
}
