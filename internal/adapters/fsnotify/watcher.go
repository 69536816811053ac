// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It watches a fixed set of files (experiment
// config and dataset CSVs) and debounces rapid events — editors often
// trigger multiple writes per save.
package fsnotify

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses bursts of events for the same file.
const debounceWindow = 250 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring the given files. Parent directories are watched
// rather than the files themselves so atomic-rename saves are still seen.
// onChange receives the absolute path of each changed watched file.
func (w *Watcher) Watch(paths []string, onChange func(path string)) error {
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.fw.Add(dir); err != nil {
			return err
		}
	}

	go w.loop(watched, onChange)
	return nil
}

// loop drains events, filters to watched files, and debounces.
func (w *Watcher) loop(watched map[string]bool, onChange func(path string)) {
	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			mu.Lock()
			if timer, exists := pending[abs]; exists {
				timer.Stop()
			}
			pending[abs] = time.AfterFunc(debounceWindow, func() {
				mu.Lock()
				delete(pending, abs)
				mu.Unlock()
				onChange(abs)
			})
			mu.Unlock()
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// fsnotify errors are transient (e.g. overflow); keep watching.
		}
	}
}

// Stop stops watching and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}
