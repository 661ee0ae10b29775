// Package binding connects a flag client lifecycle to the flag-gated logger.
package binding

import (
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/lifecycle"
)

// ClientSetter is implemented by loggers that evaluate against a flag client
type ClientSetter interface {
	SetClient(client flags.Evaluator)
}

// LoggerBinding attaches every ready client to the logger and detaches it
// before teardown, so the logger never evaluates against a closed client.
type LoggerBinding struct {
	target   ClientSetter
	onChange func(value any)
	logger   coreport.Logger
}

// NewLoggerBinding creates a binding. onChange may be nil.
func NewLoggerBinding(target ClientSetter, onChange func(value any), logger coreport.Logger) *LoggerBinding {
	if target == nil {
		panic("Binding target cannot be nil")
	}
	return &LoggerBinding{
		target:   target,
		onChange: onChange,
		logger:   logger,
	}
}

// Hooks returns lifecycle hooks wired to the target. Hooks already set in
// extra run after the binding's own.
func (b *LoggerBinding) Hooks(extra lifecycle.Hooks) lifecycle.Hooks {
	return lifecycle.Hooks{
		OnReady: func(client flags.Client) {
			b.target.SetClient(client)
			b.logger.Debug("Logger attached to flag client", nil)
			if extra.OnReady != nil {
				extra.OnReady(client)
			}
		},
		OnTeardown: func(client flags.Client) {
			b.target.SetClient(nil)
			b.logger.Debug("Logger detached from flag client", nil)
			if extra.OnTeardown != nil {
				extra.OnTeardown(client)
			}
		},
		OnLogLevelChange: func(value any) {
			if b.onChange != nil {
				b.onChange(value)
			}
			if extra.OnLogLevelChange != nil {
				extra.OnLogLevelChange(value)
			}
		},
	}
}
