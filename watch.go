package reel

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// recordingDebounce drops repeated events for the same file; editors and
// gzip writers touch a file several times per save.
const recordingDebounce = 100 * time.Millisecond

// RecordingWatcher reports recording files that are created or rewritten in
// a set of directories. It runs one goroutine; read Events and Errors from
// the game loop without blocking (select with default) and call Close when
// done.
type RecordingWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewRecordingWatcher watches dirs for files ending in RecordingExt.
func NewRecordingWatcher(dirs ...string) (*RecordingWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &RecordingWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *RecordingWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *RecordingWatcher) run() {
	d := newDebouncer(recordingDebounce)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isRecordingFile(event.Name) {
				continue
			}
			if !d.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debugLog("watcher: %v", err)
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isRecordingFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), RecordingExt)
}

// debouncer passes the first event per name within a window.
type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, last: make(map[string]time.Time)}
}

// allow reports whether an event for name at now should be delivered.
// Entries older than the window are dropped.
func (d *debouncer) allow(name string, now time.Time) bool {
	for n, t := range d.last {
		if now.Sub(t) >= d.window {
			delete(d.last, n)
		}
	}
	if _, ok := d.last[name]; ok {
		return false
	}
	d.last[name] = now
	return true
}
