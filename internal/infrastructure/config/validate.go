package config

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
)

// Flag sources
const (
	SourceMemory       = "memory"
	SourceFile         = "file"
	SourceLaunchDarkly = "launchdarkly"
)

// Persistence drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Console sinks
const (
	SinkZap   = "zap"
	SinkCharm = "charm"
)

// Validate ensures all required configuration values are present and that
// enumerated values are known
func Validate(cfg *Config) error {
	var missing []string

	if cfg.Environment == "" {
		missing = append(missing, "environment")
	} else if cfg.Environment != Development && cfg.Environment != Production && cfg.Environment != Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, Development, Production, Test)
	}

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	if cfg.Flags.ConsoleLogFlagKey == "" {
		missing = append(missing, "flags.consoleLogFlagKey")
	}
	if cfg.Flags.ClientID == "" {
		missing = append(missing, "flags.clientId")
	}
	if cfg.Flags.Source == SourceFile && cfg.Flags.File == "" {
		missing = append(missing, "flags.file")
	}
	if cfg.Flags.ContextKey == "" {
		missing = append(missing, "flags.contextKey")
	}

	switch cfg.Persistence.Driver {
	case DriverSQLite:
		if cfg.Persistence.Path == "" {
			missing = append(missing, "persistence.path")
		}
	case DriverPostgres:
		if cfg.Database.Host == "" {
			missing = append(missing, "database.host (or FL_DB_HOST environment variable)")
		}
		if cfg.Database.Username == "" {
			missing = append(missing, "database.username (or FL_DB_USERNAME environment variable)")
		}
		if cfg.Database.Database == "" {
			missing = append(missing, "database.database (or FL_DB_NAME environment variable)")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	if _, err := entity.ParseReactionMode(cfg.Flags.Mode); err != nil {
		return err
	}
	if err := oneOf("flags.source", cfg.Flags.Source, SourceMemory, SourceFile, SourceLaunchDarkly); err != nil {
		return err
	}
	if err := oneOf("persistence.driver", cfg.Persistence.Driver, DriverMemory, DriverSQLite, DriverPostgres); err != nil {
		return err
	}
	if err := oneOf("logger.sink", cfg.Logger.Sink, SinkZap, SinkCharm); err != nil {
		return err
	}
	if err := oneOf("logger.format", cfg.Logger.Format, "json", "console"); err != nil {
		return err
	}

	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s value: %s, must be one of: %s", key, value, strings.Join(allowed, ", "))
}
