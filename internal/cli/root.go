// Package cli implements the readiness command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"barkeep/internal/export"
	"barkeep/internal/metrics"
	"barkeep/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Dir       string
	Bucket    string
	Region    string
	Prefix    string
	Workspace int64
	Format    string // "json" | "text"
	Verbose   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "text"}

// NewRootCommand creates the root command for the readiness CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Answer which recipes a bar can make from its inventory",
		Long: `Evaluate a workspace's recipes against its current inventory.

Queries read a catalog export (workspace-<id>.json.gz) from a local
directory or an S3 bucket. The export command writes one from PostgreSQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Workspace <= 0 {
				return fmt.Errorf("--workspace must be a positive integer")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "local directory holding catalog exports")
	cmd.PersistentFlags().StringVar(&opts.Bucket, "bucket", "", "S3 bucket holding catalog exports (tried before --dir)")
	cmd.PersistentFlags().StringVar(&opts.Region, "region", "us-east-1", "AWS region of --bucket")
	cmd.PersistentFlags().StringVar(&opts.Prefix, "prefix", "exports/", "key prefix within --bucket")
	cmd.PersistentFlags().Int64Var(&opts.Workspace, "workspace", 0, "workspace ID")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(NewAvailableCommand(opts))
	cmd.AddCommand(NewAlmostThereCommand(opts))
	cmd.AddCommand(NewRecipeCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// newLogger writes to stderr so JSON output on stdout stays clean.
func newLogger(opts *RootOptions, errOut io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: errOut}).Level(level).With().Timestamp().Logger()
}

// newService wires a readiness service over the export selected by opts.
func newService(ctx context.Context, opts *RootOptions, logger zerolog.Logger) (service.RecipeAvailabilityService, error) {
	loader, err := export.NewLoader(ctx, export.Options{
		Dir:       opts.Dir,
		S3Enabled: opts.Bucket != "",
		Bucket:    opts.Bucket,
		Region:    opts.Region,
		Prefix:    opts.Prefix,
	}, logger)
	if err != nil {
		return nil, err
	}

	repo := export.NewCatalogRepository(loader, logger)
	return service.NewRecipeAvailabilityService(repo, metrics.New(prometheus.NewRegistry()), logger), nil
}
