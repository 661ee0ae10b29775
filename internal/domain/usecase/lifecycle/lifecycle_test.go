package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/flag-logger/internal/domain/error"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/loglevel"
	mockcore "github.com/amirhossein-jamali/flag-logger/mocks/port/core"
)

const sdkKey = "sdk-log-level"

// eventLog records lifecycle side effects in the order they happen
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (e *eventLog) add(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, fmt.Sprintf(format, args...))
}

func (e *eventLog) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

// memoryStore is a LevelStore backed by a map
type memoryStore struct {
	mu       sync.Mutex
	values   map[string]string
	writes   []string
	writeErr error
}

func newMemoryStore(seed map[string]string) *memoryStore {
	if seed == nil {
		seed = map[string]string{}
	}
	return &memoryStore{values: seed}
}

func (s *memoryStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = value
	s.writes = append(s.writes, value)
	return nil
}

func (s *memoryStore) written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

// fakeClient is a subscribable flag client driven by the test
type fakeClient struct {
	name   string
	log    *eventLog
	values map[string]any

	mu        sync.Mutex
	listeners map[int]func(any)
	nextID    int
	closed    bool
}

func newFakeClient(name string, log *eventLog, values map[string]any) *fakeClient {
	return &fakeClient{name: name, log: log, values: values, listeners: map[int]func(any){}}
}

func (c *fakeClient) Evaluate(flagKey string, fallback any) any {
	if v, ok := c.values[flagKey]; ok {
		return v
	}
	return fallback
}

func (c *fakeClient) Close(context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.log.add("close:%s", c.name)
	return nil
}

func (c *fakeClient) Subscribe(event string, callback func(any)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if event != flags.ChangeEvent(sdkKey) {
		return func() {}
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = callback
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *fakeClient) emit(value any) {
	c.mu.Lock()
	callbacks := make([]func(any), 0, len(c.listeners))
	for _, cb := range c.listeners {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()
	for _, cb := range callbacks {
		cb(value)
	}
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeClient) subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// plainClient cannot deliver change events
type plainClient struct{}

func (plainClient) Evaluate(_ string, fallback any) any { return fallback }
func (plainClient) Close(context.Context) error         { return nil }

// recordingFactory creates fakeClients and remembers every request
type recordingFactory struct {
	log *eventLog
	err error

	mu      sync.Mutex
	calls   []flags.ClientOptions
	clients []*fakeClient
}

func (f *recordingFactory) create(_ context.Context, opts flags.ClientOptions) (flags.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	f.log.add("create:%s", opts.LogLevel)
	if f.err != nil {
		return nil, f.err
	}
	client := newFakeClient(fmt.Sprintf("created-%d", len(f.clients)), f.log, nil)
	f.clients = append(f.clients, client)
	return client, nil
}

func (f *recordingFactory) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *recordingFactory) client(i int) *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients[i]
}

func quietLogger(t *testing.T) *mockcore.MockLogger {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func realTime(t *testing.T) *mockcore.MockTimeProvider {
	tp := mockcore.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(time.Unix(0, 0)).Maybe()
	tp.EXPECT().Since(mock.Anything).Return(core.Duration(0)).Maybe()
	tp.EXPECT().WithTimeout(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, d core.Duration) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, d.Std())
		}).Maybe()
	return tp
}

func newLifecycle(t *testing.T, opts Options, store *memoryStore) *Lifecycle {
	t.Helper()
	logger := quietLogger(t)
	lc := New(opts, loglevel.NewLevelPersistence(store, logger), realTime(t), logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = lc.Stop(ctx)
	})
	return lc
}

func creationOptions(factory *recordingFactory) Options {
	return Options{
		ClientID: "client-123",
		ContextFactory: func() flags.EvaluationContext {
			return flags.EvaluationContext{Kind: "user", Key: "user-1"}
		},
		Factory:       factory.create,
		SDKLogFlagKey: sdkKey,
	}
}

func waitReady(t *testing.T, lc *Lifecycle) flags.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	client, err := lc.Wait(ctx)
	require.NoError(t, err)
	return client
}

func TestLifecycle_AdoptsExistingClient(t *testing.T) {
	log := &eventLog{}
	existing := newFakeClient("existing", log, nil)
	factory := &recordingFactory{log: log}
	var readyWith flags.Client

	opts := creationOptions(factory)
	opts.ExistingClient = existing
	opts.Hooks.OnReady = func(c flags.Client) { readyWith = c }
	lc := newLifecycle(t, opts, newMemoryStore(nil))

	require.NoError(t, lc.Start(context.Background()))

	assert.Equal(t, entity.LifecycleReady, lc.State())
	assert.Same(t, existing, waitReady(t, lc))
	assert.Same(t, existing, readyWith)
	assert.Equal(t, 0, factory.callCount())
	assert.Equal(t, 1, existing.subscribers())
}

func TestLifecycle_AdoptionNeedsNoCreationInputsInNotifyMode(t *testing.T) {
	existing := newFakeClient("existing", &eventLog{}, nil)
	lc := newLifecycle(t, Options{ExistingClient: existing}, newMemoryStore(nil))

	require.NoError(t, lc.Start(context.Background()))
	assert.Same(t, existing, lc.Client())
	assert.Empty(t, lc.Level())
}

func TestLifecycle_AdoptedClientInitialValue(t *testing.T) {
	t.Run("should route current value through the change path", func(t *testing.T) {
		existing := newFakeClient("existing", &eventLog{}, map[string]any{sdkKey: "debug"})
		store := newMemoryStore(nil)
		var received []any

		opts := Options{ExistingClient: existing, SDKLogFlagKey: sdkKey}
		opts.Hooks.OnLogLevelChange = func(v any) { received = append(received, v) }
		lc := newLifecycle(t, opts, store)

		require.NoError(t, lc.Start(context.Background()))

		assert.Equal(t, []any{"debug"}, received)
		assert.Equal(t, []string{"debug"}, store.written())
	})

	t.Run("should skip an unset flag", func(t *testing.T) {
		existing := newFakeClient("existing", &eventLog{}, nil)
		called := false

		opts := Options{ExistingClient: existing, SDKLogFlagKey: sdkKey}
		opts.Hooks.OnLogLevelChange = func(any) { called = true }
		lc := newLifecycle(t, opts, newMemoryStore(nil))

		require.NoError(t, lc.Start(context.Background()))
		assert.False(t, called)
	})

	t.Run("should not evaluate a client without subscriptions", func(t *testing.T) {
		called := false
		opts := Options{ExistingClient: plainClient{}, SDKLogFlagKey: sdkKey}
		opts.Hooks.OnLogLevelChange = func(any) { called = true }
		lc := newLifecycle(t, opts, newMemoryStore(nil))

		require.NoError(t, lc.Start(context.Background()))
		assert.Equal(t, entity.LifecycleReady, lc.State())
		assert.False(t, called)
	})
}

func TestLifecycle_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"missing client id", func(o *Options) { o.ClientID = "" }, "clientID"},
		{"missing context factory", func(o *Options) { o.ContextFactory = nil }, "contextFactory"},
		{"missing factory", func(o *Options) { o.Factory = nil }, "factory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := &recordingFactory{log: &eventLog{}}
			opts := creationOptions(factory)
			tt.mutate(&opts)
			lc := newLifecycle(t, opts, newMemoryStore(nil))

			err := lc.Start(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrConfiguration)
			field, ok := errs.ConfigurationField(err)
			assert.True(t, ok)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, entity.LifecycleFailed, lc.State())
			assert.Equal(t, 0, factory.callCount())

			select {
			case <-lc.Done():
			default:
				t.Fatal("Done should be closed after a configuration error")
			}
		})
	}

	t.Run("recreate mode validates even when adopting", func(t *testing.T) {
		lc := newLifecycle(t, Options{
			ExistingClient: newFakeClient("existing", &eventLog{}, nil),
			Mode:           entity.ReactionRecreate,
		}, newMemoryStore(nil))

		err := lc.Start(context.Background())
		field, _ := errs.ConfigurationField(err)
		assert.Equal(t, "clientID", field)
	})
}

func TestLifecycle_CreatesWithPersistedLevel(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	store := newMemoryStore(map[string]string{loglevel.StorageKey: "debug"})
	lc := newLifecycle(t, creationOptions(factory), store)

	require.NoError(t, lc.Start(context.Background()))
	client := waitReady(t, lc)

	require.Equal(t, 1, factory.callCount())
	opts := factory.calls[0]
	assert.Equal(t, "client-123", opts.ClientID)
	assert.Equal(t, entity.SDKLogLevelDebug, opts.LogLevel)
	assert.Equal(t, flags.BootstrapPersisted, opts.Bootstrap)
	assert.Equal(t, DefaultInitTimeout, opts.Timeout)
	assert.Equal(t, flags.EvaluationContext{Kind: "user", Key: "user-1"}, opts.Context)
	assert.Same(t, factory.client(0), client)
	assert.Equal(t, entity.SDKLogLevelDebug, lc.Level())
	assert.Equal(t, entity.LifecycleReady, lc.State())
}

func TestLifecycle_CreatesWithDefaultLevel(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	store := newMemoryStore(map[string]string{loglevel.StorageKey: "verbose"})
	lc := newLifecycle(t, creationOptions(factory), store)

	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)

	assert.Equal(t, entity.SDKLogLevelInfo, factory.calls[0].LogLevel)
}

func TestLifecycle_InitializationFailure(t *testing.T) {
	cause := errors.New("stream refused")
	factory := &recordingFactory{log: &eventLog{}, err: cause}
	lc := newLifecycle(t, creationOptions(factory), newMemoryStore(nil))

	require.NoError(t, lc.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	client, err := lc.Wait(ctx)

	assert.Nil(t, client)
	assert.ErrorIs(t, err, errs.ErrInitialization)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, entity.LifecycleFailed, lc.State())
	assert.Equal(t, err, lc.Err())
}

func TestLifecycle_StartIsIdempotent(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	lc := newLifecycle(t, creationOptions(factory), newMemoryStore(nil))

	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)

	assert.Equal(t, 1, factory.callCount())
}

func TestLifecycle_NotifyMode(t *testing.T) {
	log := &eventLog{}
	factory := &recordingFactory{log: log}
	store := newMemoryStore(nil)
	var mu sync.Mutex
	var received []any

	opts := creationOptions(factory)
	opts.Hooks.OnLogLevelChange = func(v any) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, v)
	}
	lc := newLifecycle(t, opts, store)
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)
	client := factory.client(0)

	client.emit("LOUD")
	client.emit(3)
	client.emit(nil)
	client.emit("warn")

	mu.Lock()
	assert.Equal(t, []any{"LOUD", 3, nil, "warn"}, received)
	mu.Unlock()
	assert.Equal(t, []string{"warn"}, store.written())
	assert.Equal(t, 1, factory.callCount())
	assert.False(t, client.isClosed())
}

func TestLifecycle_PersistenceFailureStillCallsBack(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	store := newMemoryStore(nil)
	store.writeErr = errors.New("read-only")
	called := make(chan any, 1)

	opts := creationOptions(factory)
	opts.Hooks.OnLogLevelChange = func(v any) { called <- v }
	lc := newLifecycle(t, opts, store)
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)

	factory.client(0).emit("error")

	assert.Equal(t, "error", <-called)
}

func TestLifecycle_RecreateMode(t *testing.T) {
	log := &eventLog{}
	factory := &recordingFactory{log: log}
	store := newMemoryStore(nil)
	var teardowns []flags.Client
	var mu sync.Mutex

	opts := creationOptions(factory)
	opts.Mode = entity.ReactionRecreate
	opts.Hooks.OnTeardown = func(c flags.Client) {
		mu.Lock()
		defer mu.Unlock()
		teardowns = append(teardowns, c)
	}
	lc := newLifecycle(t, opts, store)
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)
	first := factory.client(0)

	first.emit("warn")

	require.Eventually(t, func() bool {
		return factory.callCount() == 2 && factory.client(1).subscribers() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"create:info", "close:created-0", "create:warn"}, log.all())
	assert.True(t, first.isClosed())
	assert.Equal(t, 0, first.subscribers())
	second := factory.client(1)
	assert.Same(t, second, lc.Client())
	assert.Equal(t, entity.SDKLogLevelWarn, lc.Level())
	assert.Equal(t, 1, second.subscribers())
	assert.Equal(t, []string{"warn"}, store.written())

	mu.Lock()
	assert.Equal(t, []flags.Client{first}, teardowns)
	mu.Unlock()

	second.emit("debug")
	require.Eventually(t, func() bool {
		return factory.callCount() == 3 && lc.State() == entity.LifecycleReady
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, entity.SDKLogLevelDebug, factory.calls[2].LogLevel)
	assert.True(t, second.isClosed())
}

// eagerClient delivers changes from inside Subscribe, before the
// subscription is handed back
type eagerClient struct {
	*fakeClient
	changes []any
	delay   time.Duration
}

func (c *eagerClient) Subscribe(event string, callback func(any)) func() {
	unsubscribe := c.fakeClient.Subscribe(event, callback)
	for _, v := range c.changes {
		callback(v)
	}
	time.Sleep(c.delay)
	return unsubscribe
}

// eagerFactory makes the first client an eagerClient and the rest fakeClients
type eagerFactory struct {
	log     *eventLog
	changes []any

	mu    sync.Mutex
	fakes []*fakeClient
	made  []flags.Client
}

func (f *eagerFactory) create(_ context.Context, opts flags.ClientOptions) (flags.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log.add("create:%s", opts.LogLevel)
	base := newFakeClient(fmt.Sprintf("created-%d", len(f.fakes)), f.log, nil)
	var client flags.Client = base
	if len(f.fakes) == 0 {
		client = &eagerClient{fakeClient: base, changes: f.changes, delay: 50 * time.Millisecond}
	}
	f.fakes = append(f.fakes, base)
	f.made = append(f.made, client)
	return client, nil
}

func (f *eagerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fakes)
}

func (f *eagerFactory) fake(i int) *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fakes[i]
}

func (f *eagerFactory) client(i int) flags.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.made[i]
}

func TestLifecycle_RecreateModeChangeDuringInstall(t *testing.T) {
	tests := []struct {
		name      string
		changes   []any
		wantLevel entity.SDKLogLevel
		wantLog   []string
	}{
		{
			name:      "single change",
			changes:   []any{"warn"},
			wantLevel: entity.SDKLogLevelWarn,
			wantLog:   []string{"create:info", "close:created-0", "create:warn"},
		},
		{
			name:      "two changes",
			changes:   []any{"warn", "debug"},
			wantLevel: entity.SDKLogLevelDebug,
			wantLog: []string{
				"create:info", "close:created-0", "create:warn",
				"close:created-1", "create:debug",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &eventLog{}
			factory := &eagerFactory{log: log, changes: tt.changes}
			store := newMemoryStore(nil)
			opts := creationOptions(&recordingFactory{log: log})
			opts.Factory = factory.create
			opts.Mode = entity.ReactionRecreate
			lc := newLifecycle(t, opts, store)
			require.NoError(t, lc.Start(context.Background()))

			last := len(tt.changes)
			require.Eventually(t, func() bool {
				return factory.count() == last+1 && factory.fake(last).subscribers() == 1
			}, 2*time.Second, 5*time.Millisecond)
			assert.Never(t, func() bool { return factory.count() > last+1 }, 50*time.Millisecond, 5*time.Millisecond)

			assert.Equal(t, tt.wantLog, log.all())
			for i := 0; i < last; i++ {
				assert.True(t, factory.fake(i).isClosed(), "client %d should be closed", i)
				assert.Equal(t, 0, factory.fake(i).subscribers(), "client %d should be unsubscribed", i)
			}
			assert.False(t, factory.fake(last).isClosed())
			assert.Same(t, factory.client(last), lc.Client())
			assert.Equal(t, tt.wantLevel, lc.Level())
			assert.Equal(t, entity.LifecycleReady, lc.State())
		})
	}
}

func TestLifecycle_RecreateHeldUntilInstalled(t *testing.T) {
	log := &eventLog{}
	factory := &recordingFactory{log: log}
	release := make(chan struct{})
	opts := creationOptions(factory)
	opts.Mode = entity.ReactionRecreate
	opts.Factory = func(ctx context.Context, o flags.ClientOptions) (flags.Client, error) {
		if o.LogLevel == entity.SDKLogLevelInfo {
			<-release
		}
		return factory.create(ctx, o)
	}
	lc := newLifecycle(t, opts, newMemoryStore(nil))
	require.NoError(t, lc.Start(context.Background()))
	require.Equal(t, entity.LifecycleCreating, lc.State())

	lc.recreate(entity.SDKLogLevelWarn)
	assert.Equal(t, 0, factory.callCount())

	close(release)
	require.Eventually(t, func() bool {
		return factory.callCount() == 2 && factory.client(1).subscribers() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"create:info", "close:created-0", "create:warn"}, log.all())
	assert.Equal(t, entity.SDKLogLevelWarn, lc.Level())
}

func TestLifecycle_DropsChangesFromReleasedClient(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	called := make(chan any, 4)
	opts := creationOptions(factory)
	opts.Mode = entity.ReactionRecreate
	opts.Hooks.OnLogLevelChange = func(v any) { called <- v }
	lc := newLifecycle(t, opts, newMemoryStore(nil))
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)

	first := factory.client(0)
	var late func(any)
	first.mu.Lock()
	for _, cb := range first.listeners {
		late = cb
	}
	first.mu.Unlock()
	require.NotNil(t, late)

	first.emit("warn")
	require.Eventually(t, func() bool {
		return factory.callCount() == 2 && factory.client(1).subscribers() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "warn", <-called)

	// a callback the released client still held
	late("debug")

	assert.Never(t, func() bool { return factory.callCount() > 2 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Empty(t, called)
}

func TestLifecycle_RecreateModeIgnoresInvalidValues(t *testing.T) {
	factory := &recordingFactory{log: &eventLog{}}
	opts := creationOptions(factory)
	opts.Mode = entity.ReactionRecreate
	lc := newLifecycle(t, opts, newMemoryStore(nil))
	require.NoError(t, lc.Start(context.Background()))
	waitReady(t, lc)

	factory.client(0).emit("Warn")
	factory.client(0).emit(42)

	assert.Never(t, func() bool { return factory.callCount() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, factory.client(0).isClosed())
}

func TestLifecycle_RecreateReplacesAdoptedClient(t *testing.T) {
	log := &eventLog{}
	existing := newFakeClient("existing", log, nil)
	factory := &recordingFactory{log: log}

	opts := creationOptions(factory)
	opts.ExistingClient = existing
	opts.Mode = entity.ReactionRecreate
	lc := newLifecycle(t, opts, newMemoryStore(nil))
	require.NoError(t, lc.Start(context.Background()))

	existing.emit("error")
	require.Eventually(t, func() bool {
		return lc.State() == entity.LifecycleReady && factory.callCount() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"close:existing", "create:error"}, log.all())

	require.NoError(t, lc.Stop(context.Background()))
	assert.True(t, factory.client(0).isClosed())
}

func TestLifecycle_Stop(t *testing.T) {
	t.Run("should close created client", func(t *testing.T) {
		factory := &recordingFactory{log: &eventLog{}}
		var tornDown flags.Client
		opts := creationOptions(factory)
		opts.Hooks.OnTeardown = func(c flags.Client) { tornDown = c }
		lc := newLifecycle(t, opts, newMemoryStore(nil))
		require.NoError(t, lc.Start(context.Background()))
		client := waitReady(t, lc)

		require.NoError(t, lc.Stop(context.Background()))

		assert.True(t, factory.client(0).isClosed())
		assert.Equal(t, 0, factory.client(0).subscribers())
		assert.Same(t, client, tornDown)
		assert.Equal(t, entity.LifecycleStopped, lc.State())
		assert.Nil(t, lc.Client())

		_, err := lc.Wait(context.Background())
		assert.ErrorIs(t, err, errs.ErrLifecycleStopped)
	})

	t.Run("should leave adopted client open", func(t *testing.T) {
		existing := newFakeClient("existing", &eventLog{}, nil)
		lc := newLifecycle(t, Options{ExistingClient: existing, SDKLogFlagKey: sdkKey}, newMemoryStore(nil))
		require.NoError(t, lc.Start(context.Background()))

		require.NoError(t, lc.Stop(context.Background()))

		assert.False(t, existing.isClosed())
		assert.Equal(t, 0, existing.subscribers())
	})

	t.Run("should refuse to start after stop", func(t *testing.T) {
		lc := newLifecycle(t, Options{ExistingClient: plainClient{}}, newMemoryStore(nil))
		require.NoError(t, lc.Stop(context.Background()))

		assert.ErrorIs(t, lc.Start(context.Background()), errs.ErrLifecycleStopped)
	})

	t.Run("should discard a creation that finishes after stop", func(t *testing.T) {
		release := make(chan struct{})
		created := newFakeClient("late", &eventLog{}, nil)
		opts := creationOptions(&recordingFactory{log: &eventLog{}})
		opts.Factory = func(context.Context, flags.ClientOptions) (flags.Client, error) {
			<-release
			return created, nil
		}
		lc := newLifecycle(t, opts, newMemoryStore(nil))
		require.NoError(t, lc.Start(context.Background()))
		assert.Equal(t, entity.LifecycleCreating, lc.State())

		stopped := make(chan error, 1)
		go func() { stopped <- lc.Stop(context.Background()) }()
		require.Eventually(t, func() bool {
			return lc.State() == entity.LifecycleStopped
		}, time.Second, 5*time.Millisecond)

		close(release)
		require.NoError(t, <-stopped)

		assert.True(t, created.isClosed())
		assert.Equal(t, 0, created.subscribers())
		assert.Equal(t, entity.LifecycleStopped, lc.State())
		assert.Nil(t, lc.Client())
	})
}

func TestLifecycle_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	opts := creationOptions(&recordingFactory{log: &eventLog{}})
	opts.Factory = func(ctx context.Context, _ flags.ClientOptions) (flags.Client, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil, ctx.Err()
	}
	lc := newLifecycle(t, opts, newMemoryStore(nil))
	require.NoError(t, lc.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := lc.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
