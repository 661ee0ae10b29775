// Package launchdarkly adapts the LaunchDarkly server-side SDK to the flag
// client ports.
package launchdarkly

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	ld "github.com/launchdarkly/go-server-sdk/v6"
	"github.com/launchdarkly/go-server-sdk/v6/interfaces"
	"github.com/launchdarkly/go-server-sdk/v6/ldcomponents"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
)

// Config holds the SDK settings shared by every client the factory creates
type Config struct {
	SDKKey  string
	Offline bool
}

// Client wraps an LDClient bound to a single evaluation context
type Client struct {
	sdk     *ld.LDClient
	context ldcontext.Context
	logger  core.Logger
}

// NewFactory returns a factory that creates LaunchDarkly clients. The
// client id from ClientOptions is used as the SDK key unless cfg sets one.
func NewFactory(cfg Config, base core.Logger) flags.Factory {
	return func(ctx context.Context, opts flags.ClientOptions) (flags.Client, error) {
		return NewClient(ctx, cfg, opts, base)
	}
}

// NewClient creates a client and waits for it to initialize until the
// earlier of opts.Timeout and the ctx deadline. A timeout is not an error:
// the returned client keeps connecting and serves fallbacks meanwhile.
func NewClient(ctx context.Context, cfg Config, opts flags.ClientOptions, base core.Logger) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	evalContext, err := BuildContext(opts.Context)
	if err != nil {
		return nil, err
	}

	sdkKey := cfg.SDKKey
	if sdkKey == "" {
		sdkKey = opts.ClientID
	}

	log := logger.ForFlagClient(base, opts.LogLevel, opts.ClientID)
	if opts.Bootstrap == flags.BootstrapPersisted {
		log.Debug("Persisted bootstrap is not supported by the server SDK, starting from the data source", nil)
	}

	sdkConfig := ld.Config{
		Offline: cfg.Offline,
		Logging: ldcomponents.Logging().
			Loggers(Loggers(log)).
			MinLevel(MinLevel(opts.LogLevel)),
	}

	waitFor := opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < waitFor || waitFor <= 0 {
			waitFor = remaining
		}
	}
	if waitFor < 0 {
		waitFor = 0
	}

	sdk, err := ld.MakeCustomClient(sdkKey, sdkConfig, waitFor)
	switch {
	case err == nil:
	case errors.Is(err, ld.ErrInitializationTimeout):
		log.Warn("LaunchDarkly client did not initialize in time, continuing with fallbacks", map[string]any{
			"timeout_ms": waitFor.Milliseconds(),
		})
	default:
		if sdk != nil {
			_ = sdk.Close()
		}
		return nil, fmt.Errorf("launchdarkly client: %w", err)
	}

	return &Client{sdk: sdk, context: evalContext, logger: log}, nil
}

// BuildContext converts an evaluation context into an LD context
func BuildContext(c flags.EvaluationContext) (ldcontext.Context, error) {
	builder := ldcontext.NewBuilder(c.Key)
	if c.Kind != "" {
		builder.Kind(ldcontext.Kind(c.Kind))
	}
	for name, value := range c.Attributes {
		builder.SetValue(name, ldvalue.CopyArbitraryValue(value))
	}

	ldc := builder.Build()
	if err := ldc.Err(); err != nil {
		return ldcontext.Context{}, fmt.Errorf("invalid evaluation context: %w", err)
	}
	return ldc, nil
}

// Evaluate returns the flag value as a plain Go value; JSON numbers arrive as float64
func (c *Client) Evaluate(flagKey string, fallback any) any {
	value, err := c.sdk.JSONVariation(flagKey, c.context, ldvalue.CopyArbitraryValue(fallback))
	if err != nil {
		c.logger.Debug("Flag evaluation fell back", map[string]any{
			"flag_key": flagKey,
			"error":    err.Error(),
		})
	}
	return value.AsArbitraryValue()
}

// Subscribe listens for "change:<key>" events through the SDK flag tracker
func (c *Client) Subscribe(event string, callback func(value any)) func() {
	if !strings.HasPrefix(event, flags.ChangeEventPrefix) {
		return func() {}
	}
	flagKey := strings.TrimPrefix(event, flags.ChangeEventPrefix)

	tracker := c.sdk.GetFlagTracker()
	ch := tracker.AddFlagValueChangeListener(flagKey, c.context, ldvalue.Null())

	l := &listener{callback: callback}
	go l.forward(ch)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.stop()
			tracker.RemoveFlagValueChangeListener(ch)
		})
	}
}

// listener delivers tracker events to a callback until it is stopped.
// Events still buffered in the channel after stop are drained unseen.
type listener struct {
	callback func(value any)
	stopped  atomic.Bool
}

func (l *listener) stop() {
	l.stopped.Store(true)
}

func (l *listener) forward(ch <-chan interfaces.FlagValueChangeEvent) {
	for event := range ch {
		if l.stopped.Load() {
			continue
		}
		l.callback(event.NewValue.AsArbitraryValue())
	}
}

// Close shuts the SDK client down
func (c *Client) Close(context.Context) error {
	return c.sdk.Close()
}

// Initialized reports whether the SDK has received flag data
func (c *Client) Initialized() bool {
	return c.sdk.Initialized()
}

// MinLevel maps an SDK log level onto ldlog
func MinLevel(level entity.SDKLogLevel) ldlog.LogLevel {
	switch level {
	case entity.SDKLogLevelDebug:
		return ldlog.Debug
	case entity.SDKLogLevelWarn:
		return ldlog.Warn
	case entity.SDKLogLevelError:
		return ldlog.Error
	default:
		return ldlog.Info
	}
}
