package export

import (
	"context"
	"fmt"

	"barkeep/internal/model"
	"barkeep/internal/repository"

	"github.com/rs/zerolog"
)

// catalogRepository serves catalogs from workspace exports.
type catalogRepository struct {
	loader Loader
	logger zerolog.Logger
}

var _ repository.CatalogRepository = (*catalogRepository)(nil)

// NewCatalogRepository creates a CatalogRepository reading exports through loader.
func NewCatalogRepository(loader Loader, logger zerolog.Logger) repository.CatalogRepository {
	return &catalogRepository{
		loader: loader,
		logger: logger.With().Str("repository", "export-catalog").Logger(),
	}
}

// LoadCatalog loads and validates the export of workspaceID. Each call reads
// the export afresh, so a replaced file is picked up on the next query.
func (r *catalogRepository) LoadCatalog(ctx context.Context, workspaceID int64) (*model.WorkspaceCatalog, error) {
	key := KeyForWorkspace(workspaceID)

	catalog, err := r.loader.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load export %s: %w", key, err)
	}

	if err := Validate(catalog); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("catalog export failed validation")
		return nil, fmt.Errorf("failed to validate export %s: %w", key, err)
	}

	if catalog.WorkspaceID != workspaceID {
		return nil, fmt.Errorf("%w: export %s holds workspace %d", ErrInvalidCatalog, key, catalog.WorkspaceID)
	}

	return catalog, nil
}
