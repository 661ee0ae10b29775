package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBManager provides utilities for integration tests against PostgreSQL.
// Tests using it are skipped unless FL_TEST_DB_HOST is set.
type TestDBManager struct {
	Manager *Manager
	Config  *Config
}

// NewTestDBManager connects to the test database and empties the level table
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("FL_TEST_DB_HOST")
	if !ok {
		t.Skip("FL_TEST_DB_HOST not set, skipping database integration test")
	}

	config := DefaultConfig()
	config.Host = host
	config.Port = getEnvIntOrDefault("FL_TEST_DB_PORT", 5432)
	config.Username = getEnvOrDefault("FL_TEST_DB_USERNAME", "postgres")
	config.Password = getEnvOrDefault("FL_TEST_DB_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("FL_TEST_DB_DATABASE", "flag_logger_test")
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.QueryTimeout = 5 * time.Second

	manager := NewManager(config, logger, timeprovider.NewRealTimeProvider())
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	m := &TestDBManager{Manager: manager, Config: config}
	m.Truncate(t)
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})
	return m
}

// Truncate removes all stored levels
func (m *TestDBManager) Truncate(t *testing.T) {
	t.Helper()

	if err := m.Manager.DB().Session(&gormAllowGlobal).Delete(&model.LevelSetting{}).Error; err != nil {
		t.Fatalf("Failed to truncate level settings: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

var gormAllowGlobal = gorm.Session{AllowGlobalUpdate: true}
