// Package watch re-runs a callback when a query file changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 500 * time.Millisecond

// Watcher watches a single query file and re-invokes a callback on change.
type Watcher struct {
	file     string
	callback func() error
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// New creates a watcher for file. The callback runs once at Start and again
// after each write, debounced so editor save bursts trigger one run.
func New(file string, callback func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	// Watch the directory: editors often replace the file on save, which
	// drops a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the callback once, then blocks re-running it on every change
// until Stop is called. Callback errors are reported to onError and do not
// stop the watch.
func (w *Watcher) Start(onError func(error)) error {
	if err := w.callback(); err != nil {
		onError(err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if eventPath, err := filepath.Abs(event.Name); err == nil && eventPath == w.file {
				timer.Reset(debounce)
				pending = timer.C
			}

		case <-pending:
			pending = nil
			if err := w.callback(); err != nil {
				onError(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)

		case <-w.done:
			return nil
		}
	}
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}
