package keymap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
)

// DefaultDebounce coalesces the burst of events editors produce on save
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a keymap file whenever it changes
type Watcher struct {
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher
	path      string
}

// NewWatcher starts watching the directory that holds path. Editors often
// replace files on save, so the directory is watched rather than the file.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	return &Watcher{
		debounce:  debounce,
		fsWatcher: fsWatcher,
		path:      absPath,
	}, nil
}

// Run blocks until ctx is done. After each settled change it reloads the file
// and calls onChange with the new mapping. Reload failures are logged and the
// previous mapping stays in effect. Callbacks run on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(domain.ShortcutMap)) error {
	defer w.fsWatcher.Close()

	var timer *time.Timer
	var settled <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settled = timer.C

		case <-settled:
			settled = nil
			m, err := Load(w.path)
			if err != nil {
				logging.Logger.Warn("Keymap reload failed", "path", w.path, "error", err)
				continue
			}
			logging.Logger.Info("Keymap reloaded", "path", w.path, "count", len(m))
			onChange(m)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Error("Keymap watcher error", "path", w.path, "error", err)
		}
	}
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}
