package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Flags       FlagsConfig       `mapstructure:"flags"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// LoggerConfig contains settings for the operational logger and the
// console sink of the flag-gated logger
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	Sink   string `mapstructure:"sink"`   // zap or charm
}

// FlagsConfig describes the flag client and the flags the logger evaluates
type FlagsConfig struct {
	ClientID          string         `mapstructure:"clientId"`
	ConsoleLogFlagKey string         `mapstructure:"consoleLogFlagKey"`
	SDKLogFlagKey     string         `mapstructure:"sdkLogFlagKey"`
	InitTimeout       time.Duration  `mapstructure:"initTimeout"` // milliseconds
	Mode              string         `mapstructure:"mode"`        // notify or recreate
	Source            string         `mapstructure:"source"`      // memory, file or launchdarkly
	File              string         `mapstructure:"file"`
	Debounce          time.Duration  `mapstructure:"debounce"` // milliseconds
	Values            map[string]any `mapstructure:"values"`
	ContextKind       string         `mapstructure:"contextKind"`
	ContextKey        string         `mapstructure:"contextKey"`
	ContextAttributes map[string]any `mapstructure:"contextAttributes"`
	SDKKey            string         `mapstructure:"sdkKey"`
	Offline           bool           `mapstructure:"offline"`
}

// PersistenceConfig selects where the SDK log level is persisted
type PersistenceConfig struct {
	Driver string `mapstructure:"driver"` // memory, sqlite or postgres
	Path   string `mapstructure:"path"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	LogLevel        string        `mapstructure:"logLevel"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}
