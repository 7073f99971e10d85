// Package fsnotify implements the ports.Watcher interface using
// github.com/fsnotify/fsnotify. It watches the parent directories of the
// lexical data files (regenerators typically replace files via rename, so
// watching the file inode directly would go stale) and debounces rapid
// events — regeneration writes in bursts.
package fsnotify

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval collapses event bursts from a single regeneration pass.
const debounceInterval = 200 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new data-file watcher.
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

// Watch starts monitoring the given data files. onChange is called with
// the absolute path of each changed file.
func (w *Watcher) Watch(paths []string, onChange func(filePath string)) error {
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
	if len(dirs) == 0 {
		return fmt.Errorf("no files to watch")
	}
	for dir := range dirs {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	// Debounce state: last event time per file
	debounce := make(map[string]time.Time)
	var dmu sync.Mutex

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name
				if abs, err := filepath.Abs(path); err == nil {
					path = abs
				}
				if !watched[path] {
					continue
				}
				// Filter before debouncing: a Chmod must not consume the
				// debounce window and suppress a Write right behind it.
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) {
					continue
				}

				dmu.Lock()
				last, exists := debounce[path]
				now := time.Now()
				if exists && now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				debounce[path] = now
				dmu.Unlock()

				onChange(path)

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
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
