package cli

import (
	"fmt"

	"barkeep/internal/database"
	"barkeep/internal/export"
	"barkeep/internal/repository"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a workspace catalog export from PostgreSQL",
		Long: `Read one workspace from PostgreSQL in a single consistent snapshot and
write it to --dir as workspace-<id>.json.gz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Dir == "" {
				return fmt.Errorf("--dir is required for export")
			}

			logger := newLogger(rootOpts, cmd.ErrOrStderr())

			pool, err := database.NewPoolFromDSN(cmd.Context(), dsn, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			catalog, err := repository.NewCatalogRepository(pool, logger).LoadCatalog(cmd.Context(), rootOpts.Workspace)
			if err != nil {
				return err
			}

			path, err := export.WriteFile(rootOpts.Dir, catalog)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d categories, %d products, %d recipes)\n",
				path, len(catalog.Categories), len(catalog.Products), len(catalog.Recipes))
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")
	_ = cmd.MarkFlagRequired("dsn")

	return cmd
}
