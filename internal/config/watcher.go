package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quickcard/internal/logging"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the outcome of a reload. On error cfg is the zero Config.
type Handler func(cfg Config, err error)

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched instead of the file itself so that
// editors which save by rename keep triggering reloads.
type Watcher struct {
	path     string
	loader   *Loader
	handler  Handler
	debounce time.Duration
	logger   *logging.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLoader sets the loader used for reloads.
func WithLoader(l *Loader) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.loader = l
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, handler Handler, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     absPath,
		loader:   NewLoader(),
		handler:  handler,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrNop(w.logger).WithComponent("config-watcher")
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Debug("watching %s", w.path)

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(ev) {
				w.schedule(ctx)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

// relevant reports whether ev touches the watched file in a way that changes its content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load(w.path)
	if err != nil {
		w.logger.Warn("reload %s: %v", w.path, err)
		if w.handler != nil {
			w.handler(Config{}, err)
		}
		return
	}
	w.logger.Info("reloaded %s", w.path)
	if w.handler != nil {
		w.handler(cfg, nil)
	}
}
