package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches one file using fsnotify.
type FileWatcher struct {
	watcher *fsnotify.Watcher

	path  string
	dir   string
	delay time.Duration

	handler    func(Event)
	handlerMu  sync.Mutex
	errHandler func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending Op
	seq     uint64 // detects stale timer callbacks
	closed  bool

	closeCh  chan struct{}
	closedWg sync.WaitGroup

	startTime time.Time
	rawEvents atomic.Int64
	delivered atomic.Int64
	errors    atomic.Int64
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets the quiet period. Values <= 0 use DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithErrorHandler receives fsnotify errors. They are otherwise only counted.
func WithErrorHandler(fn func(error)) Option {
	return func(w *FileWatcher) {
		w.errHandler = fn
	}
}

// New starts watching path. The file itself may be missing but its directory
// must exist. handler runs on a debounce timer goroutine, never concurrently
// with itself, and never after Close returns.
func New(path string, handler func(Event), opts ...Option) (*FileWatcher, error) {
	if handler == nil {
		return nil, ErrNoHandler
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("watch %s: %w", dir, ErrPathNotExist)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &FileWatcher{
		watcher:   fsw,
		path:      absPath,
		dir:       dir,
		delay:     DefaultDebounce,
		handler:   handler,
		closeCh:   make(chan struct{}),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending notifications are dropped.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = 0
	w.mu.Unlock()

	// Wait out a delivery that is already running.
	w.handlerMu.Lock()
	w.handlerMu.Unlock() //nolint:staticcheck // barrier

	err := w.watcher.Close()
	w.closedWg.Wait()
	return err
}

// Stats returns watcher statistics.
func (w *FileWatcher) Stats() Stats {
	return Stats{
		RawEvents: w.rawEvents.Load(),
		Delivered: w.delivered.Load(),
		Errors:    w.errors.Load(),
		StartTime: w.startTime,
	}
}

// processLoop handles incoming fsnotify events.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.errors.Add(1)
			if w.errHandler != nil {
				w.errHandler(err)
			}
		}
	}
}

// handleFSEvent filters events for other files in the directory and schedules
// a notification.
func (w *FileWatcher) handleFSEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	// Permission changes do not alter content.
	if op == 0 || op == OpChmod {
		return
	}
	w.rawEvents.Add(1)
	w.schedule(op)
}

// schedule merges op into the pending event and restarts the quiet period.
func (w *FileWatcher) schedule(op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.pending |= op
	w.seq++
	seq := w.seq

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() { w.fire(seq) })
}

// fire delivers the pending event if no newer change arrived meanwhile.
func (w *FileWatcher) fire(seq uint64) {
	w.mu.Lock()
	if w.closed || seq != w.seq || w.pending == 0 {
		w.mu.Unlock()
		return
	}
	op := w.pending
	w.pending = 0
	w.mu.Unlock()

	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()
	if w.isClosed() {
		return
	}
	w.delivered.Add(1)
	w.handler(Event{Path: w.path, Op: op, Timestamp: time.Now()})
}

func (w *FileWatcher) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
