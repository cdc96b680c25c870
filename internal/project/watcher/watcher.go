// Package watcher reports outside changes to a single file.
//
// The file's parent directory is watched rather than the file itself, so the
// watch survives editors that save by writing a new file and renaming it over
// the old one. Bursts of events are coalesced into one notification after a
// quiet period.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrNoHandler     = errors.New("watcher needs a handler")
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	case 0:
		return "NONE"
	default:
		return "MULTIPLE"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a coalesced change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op is every operation seen during the debounce window.
	Op Op

	// Timestamp is when the event was delivered.
	Timestamp time.Time
}

// Stats provides watcher status information.
type Stats struct {
	// RawEvents counts fsnotify events for the watched file.
	RawEvents int64

	// Delivered counts events passed to the handler.
	Delivered int64

	// Errors counts fsnotify errors.
	Errors int64

	// StartTime is when the watcher was started.
	StartTime time.Time
}
