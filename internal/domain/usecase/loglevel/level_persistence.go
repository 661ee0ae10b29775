package loglevel

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/persistence"
)

// StorageKey is the slot holding the last validated SDK log level
const StorageKey = "ld_sdk_log_level"

// LevelPersistence reads and writes the last known-good SDK log level
type LevelPersistence struct {
	store  persistence.LevelStore
	logger coreport.Logger
}

// NewLevelPersistence creates a new LevelPersistence over the given store
func NewLevelPersistence(store persistence.LevelStore, logger coreport.Logger) *LevelPersistence {
	return &LevelPersistence{
		store:  store,
		logger: logger,
	}
}

// Load returns the persisted level, or the default when nothing valid is stored
func (p *LevelPersistence) Load(ctx context.Context) entity.SDKLogLevel {
	value, found, err := p.store.Read(ctx, StorageKey)
	if err != nil {
		p.logger.Warn("Failed to read persisted SDK log level, using default", map[string]any{
			"key":     StorageKey,
			"default": entity.DefaultSDKLogLevel.String(),
			"error":   err.Error(),
		})
		return entity.DefaultSDKLogLevel
	}

	if !found {
		return entity.DefaultSDKLogLevel
	}

	level, ok := entity.ParseRemoteLevel(value)
	if !ok {
		p.logger.Warn("Ignoring invalid persisted SDK log level", map[string]any{
			"key":   StorageKey,
			"value": value,
		})
		return entity.DefaultSDKLogLevel
	}

	return level
}

// Save persists value only when it is a valid SDK log level.
// It reports whether a write happened.
func (p *LevelPersistence) Save(ctx context.Context, value any) (bool, error) {
	level, ok := entity.ParseRemoteLevel(value)
	if !ok {
		p.logger.Debug("Not persisting invalid SDK log level", map[string]any{
			"key":   StorageKey,
			"value": value,
		})
		return false, nil
	}

	if err := p.store.Write(ctx, StorageKey, level.String()); err != nil {
		return false, fmt.Errorf("%w: failed to persist SDK log level: %s", errs.ErrPersistence, err.Error())
	}

	p.logger.Debug("Persisted SDK log level", map[string]any{
		"key":   StorageKey,
		"level": level.String(),
	})
	return true, nil
}
