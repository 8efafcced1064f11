package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ontoscout/internal/ontology"
)

// rebuildDelay coalesces bursts of filesystem events (editors write
// several times per save) into a single rebuild.
const rebuildDelay = 250 * time.Millisecond

// Watcher keeps a live Universe snapshot for an ontology directory.
// On any change it rebuilds the universe and publishes the new snapshot
// atomically; readers always observe either the old or the new universe,
// never a partial one. A rebuild that fails validation keeps the previous
// snapshot and only logs the findings.
type Watcher struct {
	dir     string
	log     *zap.Logger
	current atomic.Pointer[ontology.Universe]
	fsw     *fsnotify.Watcher
	done    chan struct{}
	stopped chan struct{}
}

// NewWatcher loads the ontology once and starts watching dir and its
// namespace subdirectories for changes.
func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	initial, err := Load(dir)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting ontology watcher: %w", err)
	}
	w := &Watcher{
		dir:     dir,
		log:     log,
		fsw:     fsw,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.current.Store(initial)

	if err := w.watchTree(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Universe returns the current snapshot.
func (w *Watcher) Universe() *ontology.Universe {
	return w.current.Load()
}

// Close stops watching. The last published snapshot stays readable.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	<-w.stopped
	return err
}

func (w *Watcher) watchTree() error {
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(w.dir, entry.Name())
		if err := w.fsw.Add(sub); err != nil {
			return fmt.Errorf("watching %s: %w", sub, err)
		}
	}
	return nil
}

func (w *Watcher) run() {
	defer close(w.stopped)

	var pending *time.Timer
	var rebuild <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New namespace directories join the watch set.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Warn("failed to watch new namespace dir",
							zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if pending == nil {
				pending = time.NewTimer(rebuildDelay)
				rebuild = pending.C
			} else {
				if !pending.Stop() {
					select {
					case <-pending.C:
					default:
					}
				}
				pending.Reset(rebuildDelay)
			}
		case <-rebuild:
			pending = nil
			rebuild = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("ontology watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	u, err := Load(w.dir)
	if err != nil {
		w.log.Warn("ontology rebuild failed, keeping previous snapshot",
			zap.String("dir", w.dir), zap.Error(err))
		return
	}
	w.current.Store(u)
	w.log.Info("ontology snapshot replaced", zap.String("dir", w.dir))
}
