package availability

import "barkeep/internal/model"

// Readiness is the verdict for a whole recipe.
type Readiness struct {
	Steps            []model.StepReadiness
	UnsatisfiedSteps []model.RecipeStep
	// Ready is true iff the recipe has at least one step and every step is in stock.
	Ready bool
}

// AlmostThereResult reports whether a recipe is one ingredient short.
type AlmostThereResult struct {
	Qualifies   bool
	MissingStep *model.RecipeStep
}

// Classify evaluates every step of recipe against snap. A recipe without
// steps is incomplete data and never ready.
func Classify(recipe model.Recipe, snap *Snapshot) Readiness {
	r := Readiness{
		Steps: make([]model.StepReadiness, 0, len(recipe.Steps)),
	}
	for _, step := range recipe.Steps {
		result := Evaluate(step, snap)
		r.Steps = append(r.Steps, result)
		if !result.InStock {
			r.UnsatisfiedSteps = append(r.UnsatisfiedSteps, step)
		}
	}
	r.Ready = len(r.Steps) > 0 && len(r.UnsatisfiedSteps) == 0
	return r
}

// AlmostThere derives the almost-there verdict from an existing
// classification: more than one step and exactly one unsatisfied.
func (r Readiness) AlmostThere() AlmostThereResult {
	if len(r.Steps) <= 1 || len(r.UnsatisfiedSteps) != 1 {
		return AlmostThereResult{}
	}
	missing := r.UnsatisfiedSteps[0]
	return AlmostThereResult{Qualifies: true, MissingStep: &missing}
}

// Warnings returns the step results that carry a data-integrity warning.
func (r Readiness) Warnings() []model.StepReadiness {
	var out []model.StepReadiness
	for _, s := range r.Steps {
		if s.Warning != nil {
			out = append(out, s)
		}
	}
	return out
}

// AlmostThere classifies recipe and reports whether it is one ingredient short.
func AlmostThere(recipe model.Recipe, snap *Snapshot) AlmostThereResult {
	return Classify(recipe, snap).AlmostThere()
}
