package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-reader/internal/logger"
)

var watchLog = logger.Scope("config")

// DefaultReloadDelay debounces bursts of writes from editors.
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher reloads a ConfigStore whenever its file changes.
// The directory is watched rather than the file, so editors that replace
// the file by rename are still seen.
type Watcher struct {
	store    *ConfigStore
	delay    time.Duration
	onReload func(err error)

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for store. onReload runs after every reload
// attempt with the load error, if any. A zero delay uses DefaultReloadDelay.
func NewWatcher(store *ConfigStore, delay time.Duration, onReload func(err error)) (*Watcher, error) {
	if store == nil {
		return nil, fmt.Errorf("config store is required")
	}
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	return &Watcher{store: store, delay: delay, onReload: onReload}, nil
}

// Start watches until ctx is cancelled. It blocks.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.store.Path())
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	watchLog.Debug("watching %s", w.store.Path())

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			watchLog.Warn("watcher error: %v", err)
		}
	}
}

// handleEvent schedules a reload for changes to the config file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	watchLog.Debug("event %s", event.Op)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.reload)
}

func (w *Watcher) reload() {
	err := w.store.Load()
	if err != nil {
		watchLog.Warn("reload failed: %v", err)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
