package repository

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LevelRepository implements persistence.LevelStore using GORM
type LevelRepository struct {
	manager      *database.Manager
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	retry        database.RetryConfig
}

// NewLevelRepository creates a new LevelRepository instance
func NewLevelRepository(manager *database.Manager, timeProvider coreport.TimeProvider, logger coreport.Logger) *LevelRepository {
	return &LevelRepository{
		manager:      manager,
		timeProvider: timeProvider,
		logger:       logger,
		retry:        database.DefaultRetryConfig(),
	}
}

// Read returns the value stored under key
func (r *LevelRepository) Read(ctx context.Context, key string) (string, bool, error) {
	var setting model.LevelSetting
	found := true

	err := r.withRetry(ctx, func(ctx context.Context) error {
		err := r.manager.DB().WithContext(ctx).Where("key = ?", key).Take(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return "", false, r.handleDatabaseError("reading level", key, err)
	}
	if !found {
		return "", false, nil
	}
	return setting.Value, true, nil
}

// Write upserts value under key; the last writer wins
func (r *LevelRepository) Write(ctx context.Context, key, value string) error {
	now := r.timeProvider.Now()
	setting := model.LevelSetting{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.manager.DB().WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&setting).Error
	})
	if err != nil {
		return r.handleDatabaseError("writing level", key, err)
	}

	r.logger.Debug("Level stored", map[string]any{
		"key":   key,
		"value": value,
	})
	return nil
}

func (r *LevelRepository) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	return database.RetryOnTransientError(ctx, r.retry, func() error {
		opCtx, cancel := r.manager.WithTimeout(ctx)
		defer cancel()
		return op(opCtx)
	}, r.manager.ErrorMapper(), r.logger)
}

// handleDatabaseError logs and maps a database error to a persistence error
func (r *LevelRepository) handleDatabaseError(operation, key string, err error) error {
	r.logger.Error("Database error when "+operation, map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return r.manager.ErrorMapper().MapError(err, operation)
}
