package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"barkeep/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for exports on the local file system.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a loader that resolves keys relative to dir.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "export-file-loader").Logger(),
	}
}

// Load reads and decodes the export stored at dir/key.
func (l *fileLoader) Load(ctx context.Context, key string) (*model.WorkspaceCatalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, key)
	l.logger.Debug().Str("file", path).Msg("loading catalog export")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog export")
		return nil, fmt.Errorf("failed to open catalog export %s: %w", path, err)
	}
	defer file.Close()

	catalog, err := Decode(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalog export")
		return nil, fmt.Errorf("failed to read catalog export %s: %w", path, err)
	}

	l.logger.Debug().
		Str("file", path).
		Int("categories", len(catalog.Categories)).
		Int("products", len(catalog.Products)).
		Int("recipes", len(catalog.Recipes)).
		Msg("catalog export loaded")

	return catalog, nil
}
