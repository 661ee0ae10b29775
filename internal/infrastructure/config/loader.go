package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable read by the loader
const EnvPrefix = "FL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

var errNoDotEnv = errors.New("no .env file found in search paths")

// LoadConfig loads configuration for the environment named by FL_ENV
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, errNoDotEnv) {
		fmt.Fprintln(os.Stderr, "Warning: Could not load .env file:", err)
	}

	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first path that has it, then applies
// defaults and FL_ environment overrides
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(v, &config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errNoDotEnv
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.sink", "zap")

	v.SetDefault("flags.initTimeout", 2000)
	v.SetDefault("flags.mode", "notify")
	v.SetDefault("flags.source", "memory")
	v.SetDefault("flags.debounce", 100)
	v.SetDefault("flags.contextKind", "user")

	v.SetDefault("persistence.driver", "memory")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 5)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.connMaxLifetime", 5)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2)
}

// getEnvironment determines the environment from FL_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes the usual deployment variables win over the file
func processEnvOverrides(v *viper.Viper) {
	overrides := map[string]string{
		"FL_SERVER_HOST":        "server.host",
		"FL_LOGGER_LEVEL":       "logger.level",
		"FL_LOGGER_SINK":        "logger.sink",
		"FL_FLAGS_CLIENT_ID":    "flags.clientId",
		"FL_FLAGS_SDK_KEY":      "flags.sdkKey",
		"FL_FLAGS_SOURCE":       "flags.source",
		"FL_FLAGS_FILE":         "flags.file",
		"FL_FLAGS_MODE":         "flags.mode",
		"FL_PERSISTENCE_DRIVER": "persistence.driver",
		"FL_PERSISTENCE_PATH":   "persistence.path",
		"FL_DB_HOST":            "database.host",
		"FL_DB_USERNAME":        "database.username",
		"FL_DB_PASSWORD":        "database.password",
		"FL_DB_NAME":            "database.database",
		"FL_DB_SSL_MODE":        "database.sslMode",
	}
	for env, key := range overrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	if port := getEnvInt("FL_SERVER_PORT", 0); port > 0 {
		v.Set("server.port", port)
	}
	if port := getEnvInt("FL_DB_PORT", 0); port > 0 {
		v.Set("database.port", port)
	}
	if timeout := getEnvInt("FL_FLAGS_INIT_TIMEOUT_MS", 0); timeout > 0 {
		v.Set("flags.initTimeout", timeout)
	}
	if offline := os.Getenv("FL_FLAGS_OFFLINE"); offline != "" {
		if b, err := strconv.ParseBool(offline); err == nil {
			v.Set("flags.offline", b)
		}
	}
}

// getEnvInt reads an environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts durations written as bare numbers into their
// units. Values with a unit suffix ("2s", "500ms") are taken as written.
func processDurations(v *viper.Viper, config *Config) {
	config.Server.ReadTimeout = durationOf(v, "server.readTimeout", time.Second)
	config.Server.WriteTimeout = durationOf(v, "server.writeTimeout", time.Second)
	config.Server.IdleTimeout = durationOf(v, "server.idleTimeout", time.Second)
	config.Server.ReadHeaderTimeout = durationOf(v, "server.readHeaderTimeout", time.Second)
	config.Server.ShutdownTimeout = durationOf(v, "server.shutdownTimeout", time.Second)

	config.Flags.InitTimeout = durationOf(v, "flags.initTimeout", time.Millisecond)
	config.Flags.Debounce = durationOf(v, "flags.debounce", time.Millisecond)

	config.Database.ConnMaxLifetime = durationOf(v, "database.connMaxLifetime", time.Minute)
	config.Database.QueryTimeout = durationOf(v, "database.queryTimeout", time.Second)
	config.Database.RetryDelay = durationOf(v, "database.retryDelay", time.Second)
}

func durationOf(v *viper.Viper, key string, unit time.Duration) time.Duration {
	if raw, ok := v.Get(key).(string); ok {
		raw = strings.TrimSpace(raw)
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.Duration(n) * unit
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0
		}
		return d
	}
	return time.Duration(v.GetInt64(key)) * unit
}
