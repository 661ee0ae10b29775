package binding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/lifecycle"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
)

type recordingSetter struct {
	clients []flags.Evaluator
}

func (s *recordingSetter) SetClient(client flags.Evaluator) {
	s.clients = append(s.clients, client)
}

type nopClient struct{}

func (nopClient) Evaluate(string, any) any      { return nil }
func (nopClient) Close(context.Context) error { return nil }

func TestLoggerBinding_Hooks(t *testing.T) {
	setter := &recordingSetter{}
	var changes []any
	var order []string

	b := NewLoggerBinding(setter, func(value any) {
		changes = append(changes, value)
		order = append(order, "binding")
	}, logger.NewNoopLogger())

	hooks := b.Hooks(lifecycle.Hooks{
		OnReady:          func(flags.Client) { order = append(order, "extra-ready") },
		OnLogLevelChange: func(any) { order = append(order, "extra-change") },
	})

	client := nopClient{}
	hooks.OnReady(client)
	hooks.OnLogLevelChange("warn")
	hooks.OnLogLevelChange(42)
	hooks.OnTeardown(client)

	assert.Equal(t, []flags.Evaluator{client, nil}, setter.clients)
	assert.Equal(t, []any{"warn", 42}, changes)
	assert.Equal(t, []string{"extra-ready", "binding", "extra-change", "binding", "extra-change"}, order)
}

func TestLoggerBinding_NilCallbacks(t *testing.T) {
	setter := &recordingSetter{}
	hooks := NewLoggerBinding(setter, nil, logger.NewNoopLogger()).Hooks(lifecycle.Hooks{})

	assert.NotPanics(t, func() {
		hooks.OnReady(nopClient{})
		hooks.OnLogLevelChange("info")
		hooks.OnTeardown(nopClient{})
	})
	assert.Len(t, setter.clients, 2)
}

func TestNewLoggerBinding_NilTarget(t *testing.T) {
	assert.Panics(t, func() { NewLoggerBinding(nil, nil, logger.NewNoopLogger()) })
}
