package flags

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
)

// ChangeEventPrefix prefixes the flag key in change event names
const ChangeEventPrefix = "change:"

// ChangeEvent returns the subscription event name for a flag key
func ChangeEvent(flagKey string) string {
	return ChangeEventPrefix + flagKey
}

// Evaluator evaluates flags for the client's evaluation context.
// Evaluate never fails; it returns fallback when the flag is unset.
type Evaluator interface {
	Evaluate(flagKey string, fallback any) any
}

// Client is a flag-evaluation handle owned by a lifecycle
type Client interface {
	Evaluator
	// Close releases the handle; no events are delivered afterwards
	Close(ctx context.Context) error
}

// Subscriber is implemented by clients that deliver flag change events.
// The callback receives the raw new value without any validation.
type Subscriber interface {
	Subscribe(event string, callback func(value any)) (unsubscribe func())
}

// EvaluationContext identifies who flags are evaluated for
type EvaluationContext struct {
	Kind       string
	Key        string
	Attributes map[string]any
}

// ContextFactory builds the evaluation context for a new client
type ContextFactory func() EvaluationContext

// Bootstrap tells a new client where to hydrate initial flag state from
type Bootstrap string

const (
	// BootstrapNone starts the client without local state
	BootstrapNone Bootstrap = ""
	// BootstrapPersisted hydrates the client from locally persisted state
	BootstrapPersisted Bootstrap = "persisted"
)

// ClientOptions are passed to a Factory for every client it creates
type ClientOptions struct {
	ClientID  string
	Context   EvaluationContext
	LogLevel  entity.SDKLogLevel
	Bootstrap Bootstrap
	Timeout   time.Duration
}

// Factory creates a flag client; ctx carries the initialization deadline
type Factory func(ctx context.Context, opts ClientOptions) (Client, error)
