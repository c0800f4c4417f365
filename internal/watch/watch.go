// Package watch re-runs an action whenever a single file changes on disk.
//
// The containing directory is watched rather than the file itself so that
// editors which save by writing a temporary file and renaming it over the
// original are still noticed. Bursts of events are collapsed: the action runs
// once per debounce interval at most.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long changes are collected before the action runs.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches one file.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   bool
}

// New creates a watcher for path. Events are observed from the moment New
// returns; call Run to act on them.
//
// Parameters:
//   - path: The file to watch
//   - debounce: Collection interval, DefaultDebounce when zero
//
// Returns:
//   - *Watcher: The watcher
//   - error: Any error creating the watch
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
	}, nil
}

// Run calls onChange after each burst of changes to the file until ctx is
// cancelled. An error from onChange is logged and watching continues.
//
// Run closes the underlying watcher before returning and returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	log.Debug("Watching file", "path", w.path, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher error", "err", err)

		case <-ticker.C:
			if !w.takePending() {
				continue
			}
			if err := onChange(ctx); err != nil {
				log.Warn("Change handler failed", "path", w.path, "err", err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		log.Debug("Ignoring file event", "path", event.Name, "op", event.Op.String())
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()

	log.Debug("File change detected", "path", event.Name, "op", event.Op.String())
}

func (w *Watcher) takePending() bool {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	p := w.pending
	w.pending = false
	return p
}
