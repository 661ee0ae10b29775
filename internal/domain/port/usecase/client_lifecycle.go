package usecase

import (
	"context"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
)

// ClientLifecycle exposes the observable side of a flag client lifecycle
type ClientLifecycle interface {
	// State returns the current lifecycle state
	State() entity.LifecycleState

	// Err returns the error that moved the lifecycle to Failed, if any
	Err() error

	// Client returns the installed client, or nil while none is ready
	Client() flags.Client

	// Level returns the SDK log level the current client was created with.
	// It is empty for an adopted client until a valid change arrives.
	Level() entity.SDKLogLevel

	// Wait blocks until the first initialization settles
	Wait(ctx context.Context) (flags.Client, error)
}

// LogUseCase defines the flag-gated logging operations exposed to adapters
type LogUseCase interface {
	// Emit writes the values when the current threshold allows the level
	Emit(level entity.LogLevel, values ...any) error

	// Write is Emit reporting whether the values were written
	Write(level entity.LogLevel, values ...any) (bool, error)

	// Enabled reports whether a message at level would currently be written
	Enabled(level entity.LogLevel) (bool, error)

	// ConsoleLevel returns the threshold the next log call will use
	ConsoleLevel() (entity.LogLevel, error)

	// SDKLogLevel evaluates the SDK log level flag
	SDKLogLevel(fallback ...string) (string, error)
}
