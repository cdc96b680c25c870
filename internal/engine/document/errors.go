package document

import (
	"errors"
	"fmt"
)

// File operations reported in FileOpenError.
const (
	OpLoad = "load"
	OpSave = "save"
)

var (
	// ErrFileOpen matches any *FileOpenError via errors.Is.
	ErrFileOpen = errors.New("cannot open file")

	// ErrNotLoaded is returned by Save before the first successful Load.
	ErrNotLoaded = errors.New("document not loaded")
)

// FileOpenError reports that the target file could not be read or written.
// It is fatal for the viewer.
type FileOpenError struct {
	Op   string // OpLoad or OpSave
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrFileOpen as well as the wrapped error.
func (e *FileOpenError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrFileOpen {
		return true
	}
	return errors.Is(e.Err, target)
}
