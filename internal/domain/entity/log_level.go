package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LogLevel is the console severity threshold. Lower values are more severe
// and are always shown before less severe ones.
type LogLevel int

const (
	// LogLevelFatal for unrecoverable errors
	LogLevelFatal LogLevel = iota
	// LogLevelError for error conditions that should be addressed
	LogLevelError
	// LogLevelWarn for potentially harmful situations
	LogLevelWarn
	// LogLevelInfo for general informational messages
	LogLevelInfo
	// LogLevelDebug for detailed debug information
	LogLevelDebug
	// LogLevelTrace for fine-grained debugging
	LogLevelTrace
)

// FallbackLogLevel is the threshold used whenever no flag value is available
const FallbackLogLevel = LogLevelError

var logLevelNames = map[LogLevel]string{
	LogLevelFatal: "FATAL",
	LogLevelError: "ERROR",
	LogLevelWarn:  "WARN",
	LogLevelInfo:  "INFO",
	LogLevelDebug: "DEBUG",
	LogLevelTrace: "TRACE",
}

var logLevelGlyphs = map[LogLevel]string{
	LogLevelFatal: "💀",
	LogLevelError: "🔴",
	LogLevelWarn:  "🟡",
	LogLevelInfo:  "🔵",
	LogLevelDebug: "⚪",
	LogLevelTrace: "🟣",
}

// AllLogLevels lists the levels from most to least severe
func AllLogLevels() []LogLevel {
	return []LogLevel{LogLevelFatal, LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug, LogLevelTrace}
}

// String returns the upper-case level name
func (l LogLevel) String() string {
	if name, ok := logLevelNames[l]; ok {
		return name
	}
	return "LEVEL(" + strconv.Itoa(int(l)) + ")"
}

// Glyph returns the marker printed in front of every message of this level
func (l LogLevel) Glyph() string {
	return logLevelGlyphs[l]
}

// IsValid reports whether the level is one of the six known levels
func (l LogLevel) IsValid() bool {
	_, ok := logLevelNames[l]
	return ok
}

// ShouldEmit reports whether a message at candidate passes the current threshold
func ShouldEmit(candidate, current LogLevel) bool {
	return candidate <= current
}

// ParseLogLevel converts a level name (case-insensitive) to a LogLevel
func ParseLogLevel(s string) (LogLevel, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for level, levelName := range logLevelNames {
		if levelName == name {
			return level, true
		}
	}
	return FallbackLogLevel, false
}

// LevelFromValue converts a raw flag value into a LogLevel.
// Flag services deliver numbers as int or float64 depending on the transport,
// and some teams configure the level by name; both are accepted.
func LevelFromValue(value any, fallback LogLevel) LogLevel {
	switch v := value.(type) {
	case nil:
		return fallback
	case LogLevel:
		return v
	case int:
		return LogLevel(v)
	case int32:
		return LogLevel(v)
	case int64:
		return LogLevel(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return fallback
		}
		return LogLevel(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return fallback
		}
		return LogLevel(n)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return LogLevel(n)
		}
		if level, ok := ParseLogLevel(v); ok {
			return level
		}
		return fallback
	default:
		return fallback
	}
}
