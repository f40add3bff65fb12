// Package export reads and writes workspace catalog exports: gzipped JSON
// documents holding one workspace's categories, products and recipes.
package export

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"barkeep/internal/model"
)

// Loader defines the interface for loading catalog exports.
type Loader interface {
	// Load reads the export stored under key and decodes it.
	Load(ctx context.Context, key string) (*model.WorkspaceCatalog, error)
}

// KeyForWorkspace returns the export file name of a workspace.
func KeyForWorkspace(workspaceID int64) string {
	return fmt.Sprintf("workspace-%d.json.gz", workspaceID)
}

// Decode reads a gzipped JSON catalog from r.
func Decode(r io.Reader) (*model.WorkspaceCatalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var catalog model.WorkspaceCatalog
	decoder := json.NewDecoder(gzipReader)
	if err := decoder.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return &catalog, nil
}

// Encode writes catalog to w as gzipped JSON.
func Encode(w io.Writer, catalog *model.WorkspaceCatalog) error {
	gzipWriter := gzip.NewWriter(w)

	if err := json.NewEncoder(gzipWriter).Encode(catalog); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip writer: %w", err)
	}

	return nil
}

// WriteFile writes catalog into dir under its workspace key and returns the path.
// The file is written to a temporary name first so readers never see a partial export.
func WriteFile(dir string, catalog *model.WorkspaceCatalog) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, KeyForWorkspace(catalog.WorkspaceID))

	tmp, err := os.CreateTemp(dir, ".workspace-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, catalog); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}

	return path, nil
}
