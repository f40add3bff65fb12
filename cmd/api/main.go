package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barkeep/internal/config"
	"barkeep/internal/database"
	"barkeep/internal/export"
	"barkeep/internal/handler"
	"barkeep/internal/metrics"
	"barkeep/internal/repository"
	"barkeep/internal/router"
	"barkeep/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Msg("starting barkeep API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog source
	catalogRepo, closeCatalog, err := newCatalogRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	readinessMetrics := metrics.New(registry)

	// Initialize services
	recipeService := service.NewRecipeAvailabilityService(catalogRepo, readinessMetrics, logger)

	// Initialize HTTP handlers
	recipeHandler := handler.NewRecipeHandler(recipeService, logger)

	// Initialize router
	mux := router.New(recipeHandler, registry, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newCatalogRepository opens the configured catalog source. The returned
// func releases whatever the source holds open.
func newCatalogRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.CatalogRepository, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceExport:
		loader, err := export.NewLoader(ctx, export.Options{
			Dir:       cfg.Catalog.ExportDir,
			S3Enabled: cfg.S3.Enabled,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Prefix:    cfg.S3.Prefix,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize export loader: %w", err)
		}
		return export.NewCatalogRepository(loader, logger), func() {}, nil

	default:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		return repository.NewCatalogRepository(pool, logger), pool.Close, nil
	}
}
