// Package watch calls back when a single file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce absorbs the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches one file. The parent directory is watched so that editors
// that save by rename are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	deb     *debouncer
}

// New starts watching path. onChange runs after debounce has passed without
// further events; calls never overlap.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:    abs,
		watcher: fw,
		deb:     newDebouncer(debounce, onChange),
	}, nil
}

// Run processes events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.deb.stop()
		_ = w.watcher.Close()
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.deb.add()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "path", w.path, "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// debouncer collapses rapid events into one callback.
type debouncer struct {
	delay    time.Duration
	onChange func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	run sync.Mutex
}

func newDebouncer(delay time.Duration, onChange func()) *debouncer {
	return &debouncer{delay: delay, onChange: onChange}
}

func (d *debouncer) add() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped || d.onChange == nil {
		return
	}
	d.run.Lock()
	defer d.run.Unlock()
	d.onChange()
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
