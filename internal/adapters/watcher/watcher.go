// Package watcher reports content changes under the server directory for --watch restarts.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.goodgym.dev/launcher/internal/core/domain"
	"go.goodgym.dev/launcher/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 300 * time.Millisecond

// skipDirectories are never watched.
var skipDirectories = map[string]bool{
	".git":              true,
	".venv":             true,
	"venv":              true,
	"__pycache__":       true,
	"node_modules":      true,
	".pytest_cache":     true,
	domain.StateDirName: true,
}

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify. Events are debounced and
// only emitted for files whose content fingerprint changed.
type Watcher struct {
	logger       ports.Logger
	fsWatcher    *fsnotify.Watcher
	fingerprints *Fingerprints
	debouncer    *Debouncer
	events       chan ports.WatchEvent
	done         chan struct{}
}

// NewWatcher creates a new file system watcher with the given debounce window.
func NewWatcher(logger ports.Logger, window time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}

	w := &Watcher{
		logger:       logger,
		fsWatcher:    fsWatcher,
		fingerprints: NewFingerprints(),
		events:       make(chan ports.WatchEvent, eventChannelBuffer),
		done:         make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.flush)
	return w, nil
}

// Start fingerprints root and begins watching it recursively until ctx is done.
func (w *Watcher) Start(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", root)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New(domain.ErrWatchFailed.Error()), "path", root)
	}

	if err := w.fingerprints.Prime(root, shouldSkip); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", root)
	}

	for dir := range directories(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
		}
	}
	w.logger.Debug("watching " + root)

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of content changes. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer func() {
		close(w.done)
		w.debouncer.Stop()
		close(w.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !shouldSkip(info.Name()) {
						for dir := range directories(event.Name) {
							_ = w.fsWatcher.Add(dir)
						}
					}
					continue
				}
			}

			w.debouncer.Add(event.Name)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

// flush is the debouncer callback. It forwards only real content changes.
func (w *Watcher) flush(paths []string) {
	for _, path := range w.fingerprints.Changed(paths) {
		event := ports.WatchEvent{Path: path, Operation: operation(path)}
		select {
		case w.events <- event:
		case <-w.done:
			return
		}
	}
}

func operation(path string) ports.WatchOp {
	if _, err := os.Stat(path); err != nil {
		return ports.OpRemove
	}
	return ports.OpWrite
}

// directories yields root and every directory below it that is not skipped.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip directories that cannot be read
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && shouldSkip(d.Name()) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func shouldSkip(name string) bool {
	return skipDirectories[name]
}
