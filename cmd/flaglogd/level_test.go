package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/loglevel"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/repository"
)

type failingStore struct{}

func (failingStore) Read(context.Context, string) (string, bool, error) {
	return "", false, errors.New("unavailable")
}

func (failingStore) Write(context.Context, string, string) error {
	return errors.New("read-only")
}

func TestRunLevelGet(t *testing.T) {
	ctx := context.Background()

	t.Run("prints default when nothing is stored", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runLevelGet(ctx, &out, repository.NewMemoryLevelStore()))
		assert.Equal(t, "info\n", out.String())
	})

	t.Run("prints stored level", func(t *testing.T) {
		store := repository.NewMemoryLevelStore()
		require.NoError(t, store.Write(ctx, loglevel.StorageKey, "debug"))

		var out bytes.Buffer
		require.NoError(t, runLevelGet(ctx, &out, store))
		assert.Equal(t, "debug\n", out.String())
	})

	t.Run("prints default when store fails", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runLevelGet(ctx, &out, failingStore{}))
		assert.Equal(t, "info\n", out.String())
	})
}

func TestRunLevelSet(t *testing.T) {
	ctx := context.Background()

	t.Run("persists valid level", func(t *testing.T) {
		store := repository.NewMemoryLevelStore()
		var out bytes.Buffer

		require.NoError(t, runLevelSet(ctx, &out, store, "warn"))

		value, found, err := store.Read(ctx, loglevel.StorageKey)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "warn", value)
		assert.Equal(t, "SDK log level set to warn\n", out.String())
	})

	t.Run("rejects invalid level", func(t *testing.T) {
		store := repository.NewMemoryLevelStore()

		err := runLevelSet(ctx, &bytes.Buffer{}, store, "WARN")
		assert.ErrorContains(t, err, "invalid SDK log level")

		_, found, _ := store.Read(ctx, loglevel.StorageKey)
		assert.False(t, found)
	})

	t.Run("reports store failure", func(t *testing.T) {
		err := runLevelSet(ctx, &bytes.Buffer{}, failingStore{}, "info")
		assert.ErrorIs(t, err, errs.ErrPersistence)
	})
}
