package ruleset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store when files in the watched folders change.
//
// Bursts of events are collapsed: a reload runs once no event has arrived for
// the debounce interval.
type Watcher struct {
	store    *Store
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	// OnReload, if set, is called after every reload attempt.
	OnReload func(*Ruleset, error)
}

// NewWatcher watches the JSON directory of each folder for changes to
// ruleset files.
//
// Precondition: store and logger must be non-nil; debounce must be > 0.
// Postcondition: Returns a watcher that must be closed, or a non-nil error.
func NewWatcher(store *Store, folders []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, f := range folders {
		if err := fw.Add(JSONDir(f)); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", f, err)
		}
	}
	return &Watcher{store: store, fs: fw, debounce: debounce, logger: logger}, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run dispatches reloads until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("ruleset file changed",
				zap.String("file", ev.Name),
				zap.Stringer("op", ev.Op),
			)
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			rs, err := w.store.Reload()
			if w.OnReload != nil {
				w.OnReload(rs, err)
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return knownFile(filepath.Base(ev.Name))
}

func knownFile(name string) bool {
	for _, f := range files {
		if f.name == name {
			return true
		}
	}
	return false
}
