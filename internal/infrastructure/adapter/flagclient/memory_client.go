package flagclient

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
)

// MemoryClient serves flags from an in-process table and dispatches
// change events when values are replaced
type MemoryClient struct {
	logger core.Logger

	mu        sync.RWMutex
	values    map[string]any
	listeners map[string]map[int]func(any)
	nextID    int
	closed    bool
}

// NewMemoryClient creates a client seeded with a copy of values
func NewMemoryClient(values map[string]any, logger core.Logger) *MemoryClient {
	return &MemoryClient{
		logger:    logger,
		values:    copyValues(values),
		listeners: make(map[string]map[int]func(any)),
	}
}

func copyValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// Evaluate returns the flag value, or fallback when the flag is unset
func (c *MemoryClient) Evaluate(flagKey string, fallback any) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if v, ok := c.values[flagKey]; ok && v != nil {
		return v
	}
	return fallback
}

// Subscribe registers callback for an event of the form "change:<key>"
func (c *MemoryClient) Subscribe(event string, callback func(value any)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextID
	c.nextID++
	if c.listeners[event] == nil {
		c.listeners[event] = make(map[int]func(any))
	}
	c.listeners[event][id] = callback

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[event], id)
	}
}

// Set updates a single flag and notifies listeners when the value changed
func (c *MemoryClient) Set(flagKey string, value any) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	old, existed := c.values[flagKey]
	if existed && reflect.DeepEqual(old, value) {
		c.mu.Unlock()
		return
	}
	c.values[flagKey] = value
	callbacks := c.callbacksFor(flagKey)
	c.mu.Unlock()

	c.dispatch(flagKey, value, callbacks)
}

// Replace swaps the whole table. Listeners of every added, changed or
// removed key are notified; removed keys deliver nil.
func (c *MemoryClient) Replace(values map[string]any) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	type change struct {
		key       string
		value     any
		callbacks []func(any)
	}

	var changes []change
	for key, value := range values {
		if old, ok := c.values[key]; ok && reflect.DeepEqual(old, value) {
			continue
		}
		changes = append(changes, change{key: key, value: value})
	}
	for key := range c.values {
		if _, ok := values[key]; !ok {
			changes = append(changes, change{key: key})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].key < changes[j].key })

	c.values = copyValues(values)
	for i := range changes {
		changes[i].callbacks = c.callbacksFor(changes[i].key)
	}
	c.mu.Unlock()

	for _, ch := range changes {
		c.dispatch(ch.key, ch.value, ch.callbacks)
	}
}

// Snapshot returns a copy of the current table
func (c *MemoryClient) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyValues(c.values)
}

// callbacksFor collects listeners for a key; c.mu must be held
func (c *MemoryClient) callbacksFor(flagKey string) []func(any) {
	registered := c.listeners[flags.ChangeEvent(flagKey)]
	ids := make([]int, 0, len(registered))
	for id := range registered {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	callbacks := make([]func(any), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, registered[id])
	}
	return callbacks
}

func (c *MemoryClient) dispatch(flagKey string, value any, callbacks []func(any)) {
	if len(callbacks) == 0 {
		return
	}
	c.logger.Debug("Dispatching flag change", map[string]any{
		"flag_key":  flagKey,
		"listeners": len(callbacks),
	})
	for _, cb := range callbacks {
		cb(value)
	}
}

// Close drops all listeners; later changes are not delivered
func (c *MemoryClient) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.listeners = make(map[string]map[int]func(any))
	return nil
}
