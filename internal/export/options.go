package export

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Options describes where exports are read from.
type Options struct {
	Dir       string
	S3Enabled bool
	Bucket    string
	Region    string
	Prefix    string
}

// NewLoader builds the loader chain for opts: S3 with a local fallback when
// both are configured, otherwise whichever one is.
func NewLoader(ctx context.Context, opts Options, logger zerolog.Logger) (Loader, error) {
	var fileLoader Loader
	if opts.Dir != "" {
		fileLoader = NewFileLoader(opts.Dir, logger)
	}

	if !opts.S3Enabled {
		if fileLoader == nil {
			return nil, errors.New("no export directory or S3 bucket configured")
		}
		logger.Info().Str("dir", opts.Dir).Msg("using local file system for catalog exports (S3 disabled)")
		return fileLoader, nil
	}

	s3Loader, err := NewS3Loader(ctx, opts.Bucket, opts.Region, logger)
	if err != nil {
		if fileLoader == nil {
			return nil, err
		}
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader, nil
	}

	return NewFallbackLoader(s3Loader, fileLoader, opts.Prefix, true, logger), nil
}
