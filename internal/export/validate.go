package export

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"barkeep/internal/model"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCatalog is returned when an export fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog export")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks an export for structural problems and normalises it in place:
// missing workspace and recipe ids are filled from their owners and recipe
// steps are ordered by position. Unknown match modes are accepted; the
// readiness engine reports them per step.
//
// Products of other workspaces are kept so the snapshot can exclude and report them.
func Validate(catalog *model.WorkspaceCatalog) error {
	if catalog == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	if err := validate.Struct(catalog); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidCatalog, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	ws := catalog.WorkspaceID

	seenCategories := make(map[int64]bool, len(catalog.Categories))
	for i := range catalog.Categories {
		c := &catalog.Categories[i]
		if seenCategories[c.ID] {
			return fmt.Errorf("%w: duplicate category %d", ErrInvalidCatalog, c.ID)
		}
		seenCategories[c.ID] = true
		if err := claim(&c.WorkspaceID, ws, "category", c.ID); err != nil {
			return err
		}
	}

	seenProducts := make(map[int64]bool, len(catalog.Products))
	for i := range catalog.Products {
		p := &catalog.Products[i]
		if seenProducts[p.ID] {
			return fmt.Errorf("%w: duplicate product %d", ErrInvalidCatalog, p.ID)
		}
		seenProducts[p.ID] = true
		if p.WorkspaceID == 0 {
			p.WorkspaceID = ws
		}
	}

	seenRecipes := make(map[int64]bool, len(catalog.Recipes))
	for i := range catalog.Recipes {
		r := &catalog.Recipes[i]
		if seenRecipes[r.ID] {
			return fmt.Errorf("%w: duplicate recipe %d", ErrInvalidCatalog, r.ID)
		}
		seenRecipes[r.ID] = true
		if err := claim(&r.WorkspaceID, ws, "recipe", r.ID); err != nil {
			return err
		}
		if r.Steps == nil {
			r.Steps = []model.RecipeStep{}
		}
		if err := normaliseSteps(r); err != nil {
			return err
		}
	}

	if catalog.Categories == nil {
		catalog.Categories = []model.Category{}
	}
	if catalog.Products == nil {
		catalog.Products = []model.Product{}
	}
	if catalog.Recipes == nil {
		catalog.Recipes = []model.Recipe{}
	}

	return nil
}

// claim fills a zero workspace id and rejects one that points elsewhere.
func claim(workspaceID *int64, ws int64, kind string, id int64) error {
	switch *workspaceID {
	case 0:
		*workspaceID = ws
	case ws:
	default:
		return fmt.Errorf("%w: %s %d belongs to workspace %d", ErrInvalidCatalog, kind, id, *workspaceID)
	}
	return nil
}

func normaliseSteps(r *model.Recipe) error {
	positions := make(map[int]bool, len(r.Steps))
	for i := range r.Steps {
		s := &r.Steps[i]
		if positions[s.Position] {
			return fmt.Errorf("%w: recipe %d has two steps at position %d", ErrInvalidCatalog, r.ID, s.Position)
		}
		positions[s.Position] = true

		switch s.RecipeID {
		case 0:
			s.RecipeID = r.ID
		case r.ID:
		default:
			return fmt.Errorf("%w: step %d of recipe %d points at recipe %d", ErrInvalidCatalog, s.Position, r.ID, s.RecipeID)
		}
	}

	slices.SortFunc(r.Steps, func(a, b model.RecipeStep) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return nil
}
