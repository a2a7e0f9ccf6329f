package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 500 * time.Millisecond

// Watcher triggers a rebuild callback when anything under the watched paths
// changes. Events are debounced so a burst of editor writes causes one
// rebuild. A failing rebuild is logged and watching continues, so the last
// good output keeps being served.
type Watcher struct {
	fsw     *fsnotify.Watcher
	rebuild func(context.Context) error
	log     *slog.Logger

	// buildMu serializes rebuilds: a debounce timer fires on its own
	// goroutine, and a slow build must not overlap the next one while both
	// rewrite the output directory.
	buildMu sync.Mutex
}

// NewWatcher sets up recursive watches on the given paths. Paths that do not
// exist are skipped.
func NewWatcher(paths []string, rebuild func(context.Context) error, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, rebuild: rebuild, log: log}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if err := fsw.Add(root); err != nil {
				fsw.Close()
				return nil, fmt.Errorf("watch %s: %w", root, err)
			}
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return fsw.Add(p)
			}
			return nil
		})
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", root, err)
		}
	}
	return w, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("change detected", "path", event.Name, "op", event.Op.String())

			// New directories are not covered by existing watches.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				w.doRebuild(ctx)
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) doRebuild(ctx context.Context) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	w.log.Info("rebuilding after change")
	if err := w.rebuild(ctx); err != nil {
		w.log.Error("rebuild failed, keeping previous output", "error", err)
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
