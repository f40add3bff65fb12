package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"barkeep/internal/model"

	"github.com/spf13/cobra"
)

// NewAvailableCommand creates the available command.
func NewAvailableCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List recipes that can be made right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts, cmd.ErrOrStderr())
			svc, err := newService(cmd.Context(), rootOpts, logger)
			if err != nil {
				return err
			}

			recipes, err := svc.FindAvailableRecipes(cmd.Context(), rootOpts.Workspace)
			if err != nil {
				return err
			}

			if rootOpts.Format == "text" {
				for _, r := range recipes {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", r.ID, r.Name)
				}
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), recipes)
		},
	}
}

// NewAlmostThereCommand creates the almost-there command.
func NewAlmostThereCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "almost-there",
		Short: "List recipes missing exactly one ingredient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts, cmd.ErrOrStderr())
			svc, err := newService(cmd.Context(), rootOpts, logger)
			if err != nil {
				return err
			}

			results, err := svc.FindAlmostThereRecipes(cmd.Context(), rootOpts.Workspace, limit)
			if err != nil {
				return err
			}

			if rootOpts.Format == "text" {
				for _, r := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tmissing step %d\n", r.Recipe.ID, r.Recipe.Name, r.MissingStep.Position)
				}
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of recipes to return (capped at 100)")

	return cmd
}

// NewRecipeCommand creates the recipe command.
func NewRecipeCommand(rootOpts *RootOptions) *cobra.Command {
	var recipeID int64

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Show the per-step readiness of one recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(rootOpts, cmd.ErrOrStderr())
			svc, err := newService(cmd.Context(), rootOpts, logger)
			if err != nil {
				return err
			}

			readiness, err := svc.GetRecipeReadiness(cmd.Context(), rootOpts.Workspace, recipeID)
			if err != nil {
				return err
			}

			if rootOpts.Format == "text" {
				writeReadinessText(cmd.OutOrStdout(), readiness)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), readiness)
		},
	}

	cmd.Flags().Int64Var(&recipeID, "id", 0, "recipe ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReadinessText(w io.Writer, r *model.RecipeReadiness) {
	verdict := "unready"
	switch {
	case r.Ready:
		verdict = "ready"
	case r.AlmostThere:
		verdict = "almost there"
	}
	fmt.Fprintf(w, "%d\t%s\t%s\n", r.Recipe.ID, r.Recipe.Name, verdict)

	for _, s := range r.Steps {
		mark := "-"
		if s.InStock {
			mark = "+"
		}
		line := fmt.Sprintf("  %s %d %s", mark, s.Step.Position, s.Step.MatchMode)
		if s.Warning != nil {
			line += "  [" + s.Warning.Code + "] " + s.Warning.Message
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
