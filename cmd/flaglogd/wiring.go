package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"go.uber.org/zap"

	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/console"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/flagclient"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/launchdarkly"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/sqlite"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/config"
)

// newAppLogger builds the operational logger at the configured level
func newAppLogger(cfg *config.Config) (coreport.Logger, error) {
	level, err := logger.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	appLogger := logger.NewZapLogger(cfg.Logger.Format == "json")
	appLogger.SetLevel(level)
	return appLogger, nil
}

// newSink builds the console sink of the flag-gated logger. The sink itself
// accepts everything; gating happens in the logger.
func newSink(cfg *config.Config, tp coreport.TimeProvider) (coreport.Sink, error) {
	switch cfg.Logger.Sink {
	case config.SinkCharm:
		return console.NewCharmSink(log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flaglogd",
		}), tp), nil
	default:
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zcfg.DisableStacktrace = true
		z, err := zcfg.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build console sink: %w", err)
		}
		return console.NewZapSink(z, tp), nil
	}
}

// newLevelStore opens the configured persistence backend. The returned
// close function is never nil.
func newLevelStore(ctx context.Context, cfg *config.Config, tp coreport.TimeProvider, appLogger coreport.Logger) (persistence.LevelStore, func() error, error) {
	switch cfg.Persistence.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Persistence.Path, tp, appLogger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.DriverPostgres:
		manager := database.NewManager(databaseConfig(cfg), appLogger, tp)
		if _, err := manager.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return repository.NewLevelRepository(manager, tp, appLogger), manager.Close, nil

	default:
		return repository.NewMemoryLevelStore(), func() error { return nil }, nil
	}
}

func databaseConfig(cfg *config.Config) *database.Config {
	db := cfg.Database
	return &database.Config{
		Driver:          "postgres",
		Host:            db.Host,
		Port:            db.Port,
		Username:        db.Username,
		Password:        db.Password,
		Database:        db.Database,
		SSLMode:         db.SSLMode,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime,
		QueryTimeout:    db.QueryTimeout,
		LogLevel:        db.LogLevel,
		RetryAttempts:   db.RetryAttempts,
		RetryDelay:      db.RetryDelay,
	}
}

// newFactory returns the flag client factory for the configured source
func newFactory(cfg *config.Config, appLogger coreport.Logger) flags.Factory {
	switch cfg.Flags.Source {
	case config.SourceFile:
		return flagclient.NewFileFactory(cfg.Flags.File, cfg.Flags.Debounce, appLogger)
	case config.SourceLaunchDarkly:
		return launchdarkly.NewFactory(launchdarkly.Config{
			SDKKey:  cfg.Flags.SDKKey,
			Offline: cfg.Flags.Offline,
		}, appLogger)
	default:
		return flagclient.NewMemoryFactory(cfg.Flags.Values, appLogger)
	}
}

// contextFactory builds the evaluation context from configuration
func contextFactory(cfg *config.Config) flags.ContextFactory {
	return func() flags.EvaluationContext {
		return flags.EvaluationContext{
			Kind:       cfg.Flags.ContextKind,
			Key:        cfg.Flags.ContextKey,
			Attributes: cfg.Flags.ContextAttributes,
		}
	}
}
