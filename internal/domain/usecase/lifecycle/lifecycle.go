package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/loglevel"
)

// DefaultInitTimeout bounds client creation when Options.InitTimeout is zero
const DefaultInitTimeout = 2 * time.Second

// changeQueueSize is the number of pending recreates buffered for the worker
const changeQueueSize = 16

// Hooks are invoked as the installed client changes
type Hooks struct {
	// OnReady runs after a client is installed and subscribed
	OnReady func(client flags.Client)
	// OnTeardown runs before a client is closed or released
	OnTeardown func(client flags.Client)
	// OnLogLevelChange receives every raw SDK log level change, valid or not
	OnLogLevelChange func(value any)
}

// Options configure a Lifecycle
type Options struct {
	ExistingClient flags.Client
	ClientID       string
	ContextFactory flags.ContextFactory
	Factory        flags.Factory
	SDKLogFlagKey  string
	Mode           entity.ReactionMode
	InitTimeout    time.Duration
	Hooks          Hooks
}

// Lifecycle owns at most one flag client at a time. It either adopts a
// caller-supplied client or creates one in the background, and in recreate
// mode replaces the client whenever the SDK log level flag changes.
type Lifecycle struct {
	opts   Options
	levels *loglevel.LevelPersistence
	tp     coreport.TimeProvider
	logger coreport.Logger

	mu          sync.Mutex
	state       entity.LifecycleState
	client      flags.Client
	owned       bool
	level       entity.SDKLogLevel
	unsubscribe func()
	err         error
	started     bool
	// generation is bumped by Stop; background work from an older generation is discarded
	generation uint64
	// serial identifies the installed client; change events from any other are dropped
	serial uint64
	// pending holds a level that arrived before the current install finished
	pending entity.SDKLogLevel

	// swapMu serializes installs with recreates
	swapMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once

	changes  chan entity.SDKLogLevel
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a lifecycle in the Idle state
func New(opts Options, levels *loglevel.LevelPersistence, tp coreport.TimeProvider, logger coreport.Logger) *Lifecycle {
	if levels == nil {
		panic("Level persistence cannot be nil")
	}
	if opts.Mode == "" {
		opts.Mode = entity.ReactionNotify
	}
	if opts.InitTimeout <= 0 {
		opts.InitTimeout = DefaultInitTimeout
	}

	return &Lifecycle{
		opts:    opts,
		levels:  levels,
		tp:      tp,
		logger:  logger,
		state:   entity.LifecycleIdle,
		done:    make(chan struct{}),
		changes: make(chan entity.SDKLogLevel, changeQueueSize),
		stopCh:  make(chan struct{}),
	}
}

// Start adopts or creates the client. Configuration errors are returned
// synchronously; creation happens in the background and is observed through
// Done, Wait and State. ctx bounds all background work of the lifecycle.
// Calling Start again is a no-op.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.state == entity.LifecycleStopped {
		l.mu.Unlock()
		return errs.ErrLifecycleStopped
	}
	if l.started {
		l.mu.Unlock()
		return nil
	}
	l.started = true
	l.ctx, l.cancel = context.WithCancel(ctx)

	if l.opts.ExistingClient == nil || l.opts.Mode == entity.ReactionRecreate {
		l.state = entity.LifecycleValidatingInputs
		if err := l.validate(); err != nil {
			l.state = entity.LifecycleFailed
			l.err = err
			l.mu.Unlock()
			l.logger.Error("Flag client lifecycle configuration is invalid", fieldsOf(err))
			l.closeDone()
			return err
		}
	}

	if l.opts.Mode == entity.ReactionRecreate {
		l.wg.Add(1)
		go l.processChanges()
	}

	gen := l.generation
	if existing := l.opts.ExistingClient; existing != nil {
		l.state = entity.LifecycleAdoptingExisting
		l.mu.Unlock()
		l.adopt(gen, existing)
		return nil
	}

	l.state = entity.LifecycleCreating
	l.mu.Unlock()

	level := l.levels.Load(l.ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.create(gen, level)
	}()
	return nil
}

// validate checks the inputs needed to create a client; l.mu must be held
func (l *Lifecycle) validate() error {
	if l.opts.ClientID == "" {
		return errs.NewConfigurationError("clientID")
	}
	if l.opts.ContextFactory == nil {
		return errs.NewConfigurationError("contextFactory")
	}
	if l.opts.Factory == nil {
		return errs.NewConfigurationError("factory")
	}
	return nil
}

func (l *Lifecycle) adopt(gen uint64, client flags.Client) {
	l.logger.Info("Adopting existing flag client", map[string]any{
		"mode": string(l.opts.Mode),
	})

	if !l.install(gen, client, false, "") {
		return
	}

	// the current value goes through the change path once, without recreating
	if _, ok := client.(flags.Subscriber); ok && l.opts.SDKLogFlagKey != "" {
		if value := client.Evaluate(l.opts.SDKLogFlagKey, nil); value != nil {
			l.handleChange(value, false)
		}
	}
}

// create builds a client at level and installs it, or fails the lifecycle
func (l *Lifecycle) create(gen uint64, level entity.SDKLogLevel) {
	start := l.tp.Now()
	client, err := l.newClient(level)
	if err != nil {
		l.fail(gen, err)
		return
	}

	l.logger.Info("Flag client created", map[string]any{
		"client_id":   l.opts.ClientID,
		"sdk_level":   level.String(),
		"duration_ms": l.tp.Since(start).Std().Milliseconds(),
	})
	l.install(gen, client, true, level)
}

func (l *Lifecycle) newClient(level entity.SDKLogLevel) (flags.Client, error) {
	ctx, cancel := l.tp.WithTimeout(l.ctx, coreport.Duration(l.opts.InitTimeout))
	defer cancel()

	client, err := l.opts.Factory(ctx, flags.ClientOptions{
		ClientID:  l.opts.ClientID,
		Context:   l.opts.ContextFactory(),
		LogLevel:  level,
		Bootstrap: flags.BootstrapPersisted,
		Timeout:   l.opts.InitTimeout,
	})
	if err != nil {
		return nil, errs.NewInitializationError(l.opts.ClientID, err)
	}
	if client == nil {
		return nil, errs.NewInitializationError(l.opts.ClientID, errors.New("factory returned no client"))
	}
	return client, nil
}

// install makes client current and then subscribes to it, so a change
// delivered during Subscribe already sees the client it came from. It reports
// false when the lifecycle was stopped meanwhile, in which case an owned
// client is closed.
func (l *Lifecycle) install(gen uint64, client flags.Client, owned bool, level entity.SDKLogLevel) bool {
	l.swapMu.Lock()
	defer l.swapMu.Unlock()

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		l.discard(client, owned)
		return false
	}
	l.serial++
	serial := l.serial
	l.client = client
	l.owned = owned
	l.level = level
	l.state = entity.LifecycleReady
	l.mu.Unlock()

	unsubscribe := l.subscribe(client, serial)

	l.mu.Lock()
	if !l.current(serial) || gen != l.generation {
		// Stop took the client and released it
		l.mu.Unlock()
		if unsubscribe != nil {
			unsubscribe()
		}
		return false
	}
	l.unsubscribe = unsubscribe
	l.mu.Unlock()

	if hook := l.opts.Hooks.OnReady; hook != nil {
		hook(client)
	}
	l.closeDone()
	l.replayPending()
	return true
}

// current reports whether serial is the installed client; l.mu must be held
func (l *Lifecycle) current(serial uint64) bool {
	return l.client != nil && l.serial == serial
}

// replayPending enqueues a level held back while an install was in progress
func (l *Lifecycle) replayPending() {
	l.mu.Lock()
	level := l.pending
	l.pending = ""
	l.mu.Unlock()
	if level != "" {
		l.enqueue(level)
	}
}

func (l *Lifecycle) subscribe(client flags.Client, serial uint64) func() {
	if l.opts.SDKLogFlagKey == "" {
		return nil
	}
	sub, ok := client.(flags.Subscriber)
	if !ok {
		l.logger.Debug("Flag client does not support subscriptions, SDK log level changes are ignored", nil)
		return nil
	}
	return sub.Subscribe(flags.ChangeEvent(l.opts.SDKLogFlagKey), func(value any) {
		l.mu.Lock()
		ok := l.current(serial)
		l.mu.Unlock()
		if !ok {
			l.logger.Debug("Dropping change from a released flag client", map[string]any{
				"value": value,
			})
			return
		}
		l.handleChange(value, true)
	})
}

func (l *Lifecycle) fail(gen uint64, err error) {
	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		return
	}
	l.state = entity.LifecycleFailed
	l.err = err
	l.mu.Unlock()

	l.logger.Error("Flag client initialization failed", fieldsOf(err))
	l.closeDone()
}

// discard closes a client created for a generation that no longer exists
func (l *Lifecycle) discard(client flags.Client, owned bool) {
	if !owned {
		return
	}
	l.logger.Debug("Discarding flag client created after stop", nil)
	l.closeClient(context.Background(), client)
}

// handleChange runs on the client's event goroutine. Every value is passed
// to the callback; only valid levels are persisted or trigger a recreate.
func (l *Lifecycle) handleChange(value any, recreate bool) {
	l.logger.Debug("SDK log level flag changed", map[string]any{
		"flag_key": l.opts.SDKLogFlagKey,
		"value":    value,
	})

	if _, err := l.levels.Save(l.ctx, value); err != nil {
		l.logger.Error("Failed to persist SDK log level", map[string]any{
			"error": err.Error(),
		})
	}

	if cb := l.opts.Hooks.OnLogLevelChange; cb != nil {
		cb(value)
	}

	if !recreate || l.opts.Mode != entity.ReactionRecreate {
		return
	}
	level, ok := entity.ParseRemoteLevel(value)
	if !ok {
		return
	}
	l.enqueue(level)
}

func (l *Lifecycle) enqueue(level entity.SDKLogLevel) {
	select {
	case l.changes <- level:
		l.logger.Debug("Client recreate enqueued", map[string]any{
			"sdk_level": level.String(),
		})
	case <-l.stopCh:
	}
}

// processChanges is the single worker that serializes recreates
func (l *Lifecycle) processChanges() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopCh:
			return
		case level := <-l.changes:
			l.recreate(level)
		}
	}
}

// recreate closes the current client and creates a new one at level. While
// no client is installed yet the level is held and replayed by install.
func (l *Lifecycle) recreate(level entity.SDKLogLevel) {
	l.swapMu.Lock()
	l.mu.Lock()
	if l.state.IsTerminal() {
		l.mu.Unlock()
		l.swapMu.Unlock()
		return
	}
	if l.state != entity.LifecycleReady || l.client == nil {
		l.pending = level
		l.mu.Unlock()
		l.swapMu.Unlock()
		l.logger.Debug("Holding SDK log level until the client is installed", map[string]any{
			"sdk_level": level.String(),
		})
		return
	}
	gen := l.generation
	old := l.client
	unsubscribe := l.unsubscribe
	l.client = nil
	l.owned = false
	l.unsubscribe = nil
	l.state = entity.LifecycleCreating
	l.mu.Unlock()

	l.logger.Info("Recreating flag client for new SDK log level", map[string]any{
		"sdk_level": level.String(),
	})

	l.release(old, unsubscribe, true)
	l.swapMu.Unlock()

	l.create(gen, level)
}

// release unsubscribes, runs the teardown hook and optionally closes client
func (l *Lifecycle) release(client flags.Client, unsubscribe func(), closeIt bool) {
	if unsubscribe != nil {
		unsubscribe()
	}
	if client == nil {
		return
	}
	if hook := l.opts.Hooks.OnTeardown; hook != nil {
		hook(client)
	}
	if closeIt {
		l.closeClient(l.ctx, client)
	}
}

func (l *Lifecycle) closeClient(ctx context.Context, client flags.Client) {
	if err := client.Close(ctx); err != nil {
		l.logger.Warn("Failed to close flag client", map[string]any{
			"error": err.Error(),
		})
	}
}

// Stop releases the current client and stops background work. Clients the
// lifecycle created are closed; an adopted client is left to its owner.
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.mu.Lock()
	if l.state == entity.LifecycleStopped {
		l.mu.Unlock()
		return nil
	}
	l.generation++
	l.state = entity.LifecycleStopped
	client, owned, unsubscribe := l.client, l.owned, l.unsubscribe
	l.client = nil
	l.owned = false
	l.unsubscribe = nil
	l.mu.Unlock()

	l.logger.Info("Stopping flag client lifecycle", nil)

	l.stopOnce.Do(func() { close(l.stopCh) })
	l.release(client, unsubscribe, false)
	if client != nil && owned {
		l.closeClient(ctx, client)
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.closeDone()

	finished := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Lifecycle) closeDone() {
	l.doneOnce.Do(func() { close(l.done) })
}

// Done is closed once the first initialization settles or the lifecycle stops
func (l *Lifecycle) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until Done and returns the installed client
func (l *Lifecycle) Wait(ctx context.Context) (flags.Client, error) {
	select {
	case <-l.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.err != nil:
		return nil, l.err
	case l.state == entity.LifecycleStopped:
		return nil, errs.ErrLifecycleStopped
	case l.client == nil:
		return nil, errs.ErrNotInitialized
	}
	return l.client, nil
}

// State returns the current lifecycle state
func (l *Lifecycle) State() entity.LifecycleState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err returns the error that failed the lifecycle, if any
func (l *Lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Client returns the installed client, or nil
func (l *Lifecycle) Client() flags.Client {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.client
}

// Level returns the SDK log level the current client was created with
func (l *Lifecycle) Level() entity.SDKLogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// fieldsOf extracts structured log fields from typed domain errors
func fieldsOf(err error) map[string]any {
	var cfgErr *errs.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.LogFields()
	}
	var initErr *errs.InitializationError
	if errors.As(err, &initErr) {
		return initErr.LogFields()
	}
	return map[string]any{"error": err.Error()}
}
