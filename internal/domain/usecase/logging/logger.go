package logging

import (
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
)

// Config holds the flag keys the logger evaluates
type Config struct {
	// ConsoleLogFlagKey selects the console threshold; required
	ConsoleLogFlagKey string
	// SDKLogFlagKey selects the flag client's own log level
	SDKLogFlagKey string
}

// Logger writes level-gated messages to a sink. The threshold is evaluated
// from the attached flag client on every call, so flag changes apply to the
// next statement.
type Logger struct {
	cfg  Config
	sink coreport.Sink

	mu     sync.RWMutex
	client flags.Evaluator
}

// NewLogger creates a logger; the console flag key and the sink are required
func NewLogger(cfg Config, sink coreport.Sink) (*Logger, error) {
	if cfg.ConsoleLogFlagKey == "" {
		return nil, errs.NewConfigurationError("consoleLogFlagKey")
	}
	if sink == nil {
		return nil, errs.NewConfigurationError("sink")
	}

	return &Logger{
		cfg:  cfg,
		sink: sink,
	}, nil
}

// SetClient attaches the client used for flag evaluation; nil detaches it and
// forces the fallback threshold
func (l *Logger) SetClient(client flags.Evaluator) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.client = client
}

// Client returns the currently attached client, or nil
func (l *Logger) Client() flags.Evaluator {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.client
}

// Config returns the flag keys this logger was built with
func (l *Logger) Config() Config {
	return l.cfg
}

// ConsoleLevel returns the threshold the next log call will use
func (l *Logger) ConsoleLevel() (entity.LogLevel, error) {
	if l.cfg.ConsoleLogFlagKey == "" {
		return entity.FallbackLogLevel, errs.NewConfigurationError("consoleLogFlagKey")
	}

	client := l.Client()
	if client == nil {
		return entity.FallbackLogLevel, nil
	}

	value := client.Evaluate(l.cfg.ConsoleLogFlagKey, int(entity.FallbackLogLevel))
	return entity.LevelFromValue(value, entity.FallbackLogLevel), nil
}

// Enabled reports whether a message at level would currently be written
func (l *Logger) Enabled(level entity.LogLevel) (bool, error) {
	current, err := l.ConsoleLevel()
	if err != nil {
		return false, err
	}
	return entity.ShouldEmit(level, current), nil
}

// Emit writes values at level when the current threshold allows it
func (l *Logger) Emit(level entity.LogLevel, values ...any) error {
	_, err := l.Write(level, values...)
	return err
}

// Write is Emit reporting whether the statement was written. The threshold
// is evaluated once, so the result matches what reached the sink.
func (l *Logger) Write(level entity.LogLevel, values ...any) (bool, error) {
	ok, err := l.Enabled(level)
	if err != nil || !ok {
		return false, err
	}

	args := make([]any, 0, len(values)+1)
	args = append(args, level.Glyph())
	args = append(args, values...)

	switch level {
	case entity.LogLevelFatal, entity.LogLevelError:
		l.sink.Error(args...)
	case entity.LogLevelWarn:
		l.sink.Warn(args...)
	case entity.LogLevelInfo:
		l.sink.Info(args...)
	case entity.LogLevelDebug:
		l.sink.Debug(args...)
	default:
		l.sink.Trace(args...)
	}
	return true, nil
}

// mustEmit panics on a zero-value Logger, which has no console flag key
func (l *Logger) mustEmit(level entity.LogLevel, values []any) {
	if err := l.Emit(level, values...); err != nil {
		panic(err)
	}
}

// Fatal logs an unrecoverable error (💀)
func (l *Logger) Fatal(values ...any) { l.mustEmit(entity.LogLevelFatal, values) }

// Error logs an error (🔴)
func (l *Logger) Error(values ...any) { l.mustEmit(entity.LogLevelError, values) }

// Warn logs a warning (🟡)
func (l *Logger) Warn(values ...any) { l.mustEmit(entity.LogLevelWarn, values) }

// Info logs an informational message (🔵)
func (l *Logger) Info(values ...any) { l.mustEmit(entity.LogLevelInfo, values) }

// Log is an alias for Info
func (l *Logger) Log(values ...any) { l.Info(values...) }

// Debug logs debug detail (⚪)
func (l *Logger) Debug(values ...any) { l.mustEmit(entity.LogLevelDebug, values) }

// Trace logs fine-grained detail with the caller stack (🟣)
func (l *Logger) Trace(values ...any) { l.mustEmit(entity.LogLevelTrace, values) }

// debugEnabled gates the grouping and timing helpers
func (l *Logger) debugEnabled() bool {
	ok, err := l.Enabled(entity.LogLevelDebug)
	if err != nil {
		panic(err)
	}
	return ok
}

// Group opens a sink group. Unbalanced calls are forwarded as-is.
func (l *Logger) Group(label string) {
	if l.debugEnabled() {
		l.sink.Group(label)
	}
}

// GroupEnd closes the innermost sink group
func (l *Logger) GroupEnd() {
	if l.debugEnabled() {
		l.sink.GroupEnd()
	}
}

// Time starts a sink timer
func (l *Logger) Time(label string) {
	if l.debugEnabled() {
		l.sink.Time(label)
	}
}

// TimeEnd stops a sink timer
func (l *Logger) TimeEnd(label string) {
	if l.debugEnabled() {
		l.sink.TimeEnd(label)
	}
}

// SDKLogLevel evaluates the SDK log level flag. The value is returned as
// received; callers decide whether it is a valid level.
func (l *Logger) SDKLogLevel(fallback ...string) (string, error) {
	client := l.Client()
	if client == nil {
		return "", errs.ErrNotInitialized
	}
	if l.cfg.SDKLogFlagKey == "" {
		return "", errs.NewConfigurationError("sdkLogFlagKey")
	}

	var fallbackValue any
	if len(fallback) > 0 {
		fallbackValue = fallback[0]
	}

	value := client.Evaluate(l.cfg.SDKLogFlagKey, fallbackValue)
	if value == nil {
		if len(fallback) == 0 {
			return "", errs.ErrMissingFallback
		}
		return fallback[0], nil
	}

	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprint(value), nil
}
