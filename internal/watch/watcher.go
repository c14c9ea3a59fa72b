// Package watch reruns a callback when a model description file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Path is the file to watch.
	Path string
	// Debounce is the quiet period after the last change before the
	// callback runs.
	Debounce time.Duration
}

// Watcher watches one file. Editors that save by replacing the file are
// handled by watching the parent directory and filtering on the file name.
type Watcher struct {
	fs       *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	debounce *Debouncer

	mu      sync.Mutex
	running bool
}

// New creates a watcher. The file does not have to exist yet, but its
// directory does once Watch is called.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	if config.Path == "" {
		return nil, errors.New("watch: no path given")
	}

	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	if logger == nil {
		logger = slog.Default()
	}

	path, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", config.Path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fs:       fs,
		logger:   logger,
		path:     path,
		debounce: NewDebouncer(config.Debounce),
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch calls onChange after each burst of changes to the file until ctx is
// cancelled. Calls run on the caller's goroutine one at a time. A failing
// onChange is logged and watching continues. The watcher cannot be reused
// after Watch returns.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watch: already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.fs.Close()
	}()

	dir := filepath.Dir(w.path)
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	w.logger.Info("watching model description", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			w.debounce.Trigger()

		case <-w.debounce.C():
			w.logger.Info("model description changed", "path", w.path)

			if err := onChange(); err != nil {
				w.logger.Error("recompilation failed", "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}

			w.logger.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
