package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/time"
)

func TestLevelRepository_Integration(t *testing.T) {
	log := logger.NewNoopLogger()
	testDB := database.NewTestDBManager(t, log)
	repo := NewLevelRepository(testDB.Manager, timeprovider.NewRealTimeProvider(), log)
	ctx := context.Background()

	_, found, err := repo.Read(ctx, "ld_sdk_log_level")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Write(ctx, "ld_sdk_log_level", "warn"))
	require.NoError(t, repo.Write(ctx, "ld_sdk_log_level", "debug"))

	value, found, err := repo.Read(ctx, "ld_sdk_log_level")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "debug", value)
}
