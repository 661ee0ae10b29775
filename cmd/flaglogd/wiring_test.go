package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/sqlite"
	timeprovider "github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/config"
)

func TestNewLevelStore(t *testing.T) {
	ctx := context.Background()
	tp := timeprovider.NewRealTimeProvider()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Persistence: config.PersistenceConfig{Driver: config.DriverMemory}}

		store, closeStore, err := newLevelStore(ctx, cfg, tp, logger.NewNoopLogger())
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryLevelStore{}, store)
		assert.NoError(t, closeStore())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{Persistence: config.PersistenceConfig{
			Driver: config.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "levels.db"),
		}}

		store, closeStore, err := newLevelStore(ctx, cfg, tp, logger.NewNoopLogger())
		require.NoError(t, err)
		assert.IsType(t, &sqlite.LevelStore{}, store)
		assert.NoError(t, closeStore())
	})

	t.Run("postgres with invalid config", func(t *testing.T) {
		cfg := &config.Config{Persistence: config.PersistenceConfig{Driver: config.DriverPostgres}}

		_, _, err := newLevelStore(ctx, cfg, tp, logger.NewNoopLogger())
		assert.Error(t, err)
	})
}

func TestNewFactory_Memory(t *testing.T) {
	cfg := &config.Config{Flags: config.FlagsConfig{
		Source: config.SourceMemory,
		Values: map[string]any{"console-log-level": 4},
	}}

	client, err := newFactory(cfg, logger.NewNoopLogger())(context.Background(), flags.ClientOptions{ClientID: "c"})
	require.NoError(t, err)
	defer client.Close(context.Background())

	assert.Equal(t, 4, client.Evaluate("console-log-level", 1))
}

func TestContextFactory(t *testing.T) {
	cfg := &config.Config{Flags: config.FlagsConfig{
		ContextKind:       "service",
		ContextKey:        "flaglogd",
		ContextAttributes: map[string]any{"region": "eu"},
	}}

	assert.Equal(t, flags.EvaluationContext{
		Kind:       "service",
		Key:        "flaglogd",
		Attributes: map[string]any{"region": "eu"},
	}, contextFactory(cfg)())
}
