package flagclient

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/core"
)

// DefaultDebounce coalesces bursts of file events into a single reload
const DefaultDebounce = 100 * time.Millisecond

// LoadFlagFile decodes a TOML flag file; each top-level key is a flag
func LoadFlagFile(path string) (map[string]any, error) {
	values := make(map[string]any)
	if _, err := toml.DecodeFile(path, &values); err != nil {
		return nil, fmt.Errorf("failed to decode flag file %s: %w", path, err)
	}
	return values, nil
}

// FileClient serves flags from a TOML file and reloads it when it changes
type FileClient struct {
	*MemoryClient

	path     string
	debounce time.Duration
	logger   core.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFileClient loads path and starts watching it for changes
func NewFileClient(path string, debounce time.Duration, logger core.Logger) (*FileClient, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flag file path: %w", err)
	}

	values, err := LoadFlagFile(abs)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// the directory is watched so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	c := &FileClient{
		MemoryClient: NewMemoryClient(values, logger),
		path:         abs,
		debounce:     debounce,
		logger:       logger,
		watcher:      watcher,
		done:         make(chan struct{}),
	}

	c.wg.Add(1)
	go c.watch()

	logger.Info("Flag file loaded", map[string]any{
		"path":  abs,
		"flags": len(values),
	})
	return c, nil
}

func (c *FileClient) watch() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != c.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c.schedule()

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("Flag file watcher error", map[string]any{
				"path":  c.path,
				"error": err.Error(),
			})
		}
	}
}

// schedule debounces reloads
func (c *FileClient) schedule() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.reload)
}

// reload keeps the previous values when the file cannot be parsed
func (c *FileClient) reload() {
	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if stopped {
		return
	}

	values, err := LoadFlagFile(c.path)
	if err != nil {
		c.logger.Warn("Failed to reload flag file, keeping previous values", map[string]any{
			"path":  c.path,
			"error": err.Error(),
		})
		return
	}

	c.logger.Debug("Flag file reloaded", map[string]any{
		"path":  c.path,
		"flags": len(values),
	})
	c.Replace(values)
}

// Path returns the absolute path being watched
func (c *FileClient) Path() string {
	return c.path
}

// Close stops watching and releases listeners
func (c *FileClient) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()

	close(c.done)
	err := c.watcher.Close()
	c.wg.Wait()

	if closeErr := c.MemoryClient.Close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
