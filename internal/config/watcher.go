// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a config file must be quiet before it is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// =============================================================================
// RELOAD EVENTS
// =============================================================================

// Reload is sent when a watched config file changed on disk.
// Exactly one of Config and Err is set.
type Reload struct {
	Path   string
	Config *Config
	Err    error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// Watcher reloads config files when they change.
type Watcher struct {
	dir      string
	names    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	events   chan Reload

	mu      sync.Mutex
	pending map[string]time.Time // file path -> last change time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewWatcher creates a watcher for config.toml and config.json in dir.
// A debounce <= 0 uses DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		dir:      dir,
		names:    map[string]bool{"config.toml": true, "config.json": true},
		watcher:  fsw,
		debounce: debounce,
		events:   make(chan Reload, 4),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// NewDefaultWatcher watches the standard config directory, creating it if needed.
func NewDefaultWatcher() (*Watcher, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewWatcher(dir, DefaultDebounce)
}

// Events returns the reload channel. It is closed by Close.
func (w *Watcher) Events() <-chan Reload {
	return w.events
}

// Watch starts watching. The directory is watched rather than the files so
// that editors which replace files on save are still seen.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processPending()

	log.Printf("CONFIG_WATCH | dir=%s debounce=%s", w.dir, w.debounce)
	return nil
}

// processEvents queues changes to config files.
func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending[event.Name] = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | error=%v", err)
		}
	}
}

// processPending reloads files once they have been quiet for the debounce period.
func (w *Watcher) processPending() {
	defer w.wg.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var ready []string
			for path, changed := range w.pending {
				if now.Sub(changed) >= w.debounce {
					ready = append(ready, path)
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()

			for _, path := range ready {
				w.reload(path)
			}
		}
	}
}

// reload parses path and publishes the result.
// Files that were renamed away are skipped.
func (w *Watcher) reload(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	ev := Reload{Path: path}
	cfg, err := LoadFromPath(path)
	if err != nil {
		ev.Err = err
		log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", path, err)
	} else {
		ev.Config = cfg
		log.Printf("CONFIG_RELOAD | path=%s", path)
	}

	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}

// Close stops watching and closes the event channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}
