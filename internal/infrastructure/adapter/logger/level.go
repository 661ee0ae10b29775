package logger

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

// ParseLevel converts a configuration string into an operational log level
func ParseLevel(s string) (core.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return core.LogLevelDebug, nil
	case "info", "":
		return core.LogLevelInfo, nil
	case "warn", "warning":
		return core.LogLevelWarn, nil
	case "error":
		return core.LogLevelError, nil
	default:
		return core.LogLevelInfo, fmt.Errorf("invalid log level: %s, must be one of: debug, info, warn, error", s)
	}
}

// FromSDKLevel maps an SDK log level onto the operational levels
func FromSDKLevel(level entity.SDKLogLevel) core.LogLevel {
	switch level {
	case entity.SDKLogLevelDebug:
		return core.LogLevelDebug
	case entity.SDKLogLevelWarn:
		return core.LogLevelWarn
	case entity.SDKLogLevelError:
		return core.LogLevelError
	default:
		return core.LogLevelInfo
	}
}

// LevelFilter drops messages below its own level before they reach the base
// logger. Each flag client gets one so its verbosity follows its SDK level
// without changing the shared logger.
type LevelFilter struct {
	base   core.Logger
	level  core.LogLevel
	fields map[string]any
}

// NewLevelFilter wraps base; fields are merged into every message
func NewLevelFilter(base core.Logger, level core.LogLevel, fields map[string]any) *LevelFilter {
	return &LevelFilter{base: base, level: level, fields: fields}
}

// SetLevel sets the filter level; the base logger is untouched
func (f *LevelFilter) SetLevel(level core.LogLevel) {
	f.level = level
}

// GetLevel returns the filter level
func (f *LevelFilter) GetLevel() core.LogLevel {
	return f.level
}

func (f *LevelFilter) merge(fields map[string]any) map[string]any {
	if len(f.fields) == 0 {
		return fields
	}
	merged := make(map[string]any, len(f.fields)+len(fields))
	for k, v := range f.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// Debug logs debug messages
func (f *LevelFilter) Debug(message string, fields map[string]any) {
	if f.level <= core.LogLevelDebug {
		f.base.Debug(message, f.merge(fields))
	}
}

// Info logs informational messages
func (f *LevelFilter) Info(message string, fields map[string]any) {
	if f.level <= core.LogLevelInfo {
		f.base.Info(message, f.merge(fields))
	}
}

// Warn logs warning messages
func (f *LevelFilter) Warn(message string, fields map[string]any) {
	if f.level <= core.LogLevelWarn {
		f.base.Warn(message, f.merge(fields))
	}
}

// Error logs error messages
func (f *LevelFilter) Error(message string, fields map[string]any) {
	f.base.Error(message, f.merge(fields))
}

// Flush flushes the base logger
func (f *LevelFilter) Flush() error {
	return f.base.Flush()
}

// ForFlagClient returns the logger a flag client writes through; it follows
// the client's SDK level without changing base
func ForFlagClient(base core.Logger, level entity.SDKLogLevel, clientID string) core.Logger {
	return NewLevelFilter(base, FromSDKLevel(level), map[string]any{
		"client_id": clientID,
	})
}
