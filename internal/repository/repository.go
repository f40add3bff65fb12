package repository

import (
	"context"

	"barkeep/internal/model"
)

// CatalogRepository defines the read access the readiness engine needs.
type CatalogRepository interface {
	// LoadCatalog reads the categories, products and recipes of a workspace as
	// one consistent, point-in-time view. Recipes are ordered by ID and their
	// steps by position.
	LoadCatalog(ctx context.Context, workspaceID int64) (*model.WorkspaceCatalog, error)
}
