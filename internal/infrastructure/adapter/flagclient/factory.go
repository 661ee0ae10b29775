package flagclient

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
)

// NewMemoryFactory creates clients over a copy of values
func NewMemoryFactory(values map[string]any, base core.Logger) flags.Factory {
	return func(ctx context.Context, opts flags.ClientOptions) (flags.Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewMemoryClient(values, logger.ForFlagClient(base, opts.LogLevel, opts.ClientID)), nil
	}
}

// NewFileFactory creates clients that watch the TOML flag file at path
func NewFileFactory(path string, debounce time.Duration, base core.Logger) flags.Factory {
	return func(ctx context.Context, opts flags.ClientOptions) (flags.Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		client, err := NewFileClient(path, debounce, logger.ForFlagClient(base, opts.LogLevel, opts.ClientID))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
