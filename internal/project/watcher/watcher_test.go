package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{0, "NONE"},
		{OpCreate | OpWrite, "MULTIPLE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestOpHas(t *testing.T) {
	op := OpCreate | OpWrite
	assert.True(t, op.Has(OpCreate))
	assert.True(t, op.Has(OpWrite))
	assert.False(t, op.Has(OpRemove))
}

func TestConvertOp(t *testing.T) {
	assert.Equal(t, OpCreate, convertOp(fsnotify.Create))
	assert.Equal(t, OpWrite|OpChmod, convertOp(fsnotify.Write|fsnotify.Chmod))
	assert.Equal(t, OpRemove|OpRename, convertOp(fsnotify.Remove|fsnotify.Rename))
	assert.Equal(t, Op(0), convertOp(0))
}

func newTarget(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1\n"), 0o644))
	return path
}

func collect(t *testing.T, path string, opts ...Option) (*FileWatcher, chan Event) {
	t.Helper()
	events := make(chan Event, 16)
	w, err := New(path, func(ev Event) { events <- ev }, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, events
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "file.txt"), func(Event) {})
	assert.ErrorIs(t, err, ErrPathNotExist)

	_, err = New(newTarget(t), nil)
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestNewAllowsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.txt")
	w, events := collect(t, path, WithDebounce(20*time.Millisecond))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, w.Path())

	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	ev := waitEvent(t, events)
	assert.True(t, ev.Op.Has(OpCreate))
}

func TestWriteIsReported(t *testing.T) {
	path := newTarget(t)
	_, events := collect(t, path, WithDebounce(20*time.Millisecond))

	require.NoError(t, os.WriteFile(path, []byte("v2\n"), 0o644))
	ev := waitEvent(t, events)
	assert.Equal(t, filepath.Clean(path), ev.Path)
	assert.True(t, ev.Op.Has(OpWrite))
	assert.False(t, ev.Timestamp.IsZero())
}

func TestRenameOverIsReported(t *testing.T) {
	path := newTarget(t)
	_, events := collect(t, path, WithDebounce(20*time.Millisecond))

	tmp := filepath.Join(filepath.Dir(path), ".target.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	ev := waitEvent(t, events)
	assert.True(t, ev.Op.Has(OpCreate))
}

func TestOtherFilesIgnored(t *testing.T) {
	path := newTarget(t)
	w, events := collect(t, path, WithDebounce(20*time.Millisecond))

	other := filepath.Join(filepath.Dir(path), "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Zero(t, w.Stats().RawEvents)
}

func TestBurstIsCoalesced(t *testing.T) {
	path := newTarget(t)
	w, events := collect(t, path, WithDebounce(time.Hour))

	// Drive the debouncer directly so timing cannot split the burst.
	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})
	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Chmod})

	w.mu.Lock()
	seq := w.seq
	pending := w.pending
	w.mu.Unlock()
	assert.Equal(t, OpCreate|OpWrite, pending)

	w.fire(seq - 1) // stale timer
	assert.Empty(t, events)

	w.fire(seq)
	ev := waitEvent(t, events)
	assert.Equal(t, OpCreate|OpWrite, ev.Op)
	assert.Equal(t, int64(1), w.Stats().Delivered)
	assert.Equal(t, int64(2), w.Stats().RawEvents)
}

func TestCloseDropsPending(t *testing.T) {
	path := newTarget(t)
	w, events := collect(t, path, WithDebounce(time.Hour))

	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.mu.Lock()
	seq := w.seq
	w.mu.Unlock()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	w.fire(seq)
	assert.Empty(t, events)

	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.mu.Lock()
	assert.Zero(t, w.pending)
	w.mu.Unlock()
}

func TestCloseWaitsForRunningHandler(t *testing.T) {
	path := newTarget(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	w, err := New(path, func(Event) {
		close(entered)
		<-release
	}, WithDebounce(time.Hour))
	require.NoError(t, err)

	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.mu.Lock()
	seq := w.seq
	w.mu.Unlock()
	go w.fire(seq)
	<-entered

	closed := make(chan struct{})
	go func() {
		_ = w.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while the handler was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, int64(1), w.Stats().Delivered)
}

func TestNoDeliveryAfterClose(t *testing.T) {
	path := newTarget(t)
	w, events := collect(t, path, WithDebounce(time.Hour))

	w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.mu.Lock()
	seq := w.seq
	w.mu.Unlock()

	// Hold the handler lock so the delivery stalls between its two checks.
	w.handlerMu.Lock()
	fired := make(chan struct{})
	go func() {
		w.fire(seq)
		close(fired)
	}()
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.pending == 0
	}, time.Second, time.Millisecond)

	closed := make(chan struct{})
	go func() {
		_ = w.Close()
		close(closed)
	}()
	require.Eventually(t, w.isClosed, time.Second, time.Millisecond)
	w.handlerMu.Unlock()

	<-fired
	<-closed
	assert.Empty(t, events)
	assert.Zero(t, w.Stats().Delivered)
}
