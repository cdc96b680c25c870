package editsession

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/padview/internal/engine/document"
)

// ErrNotLoaded is returned when a session is requested before the document was loaded.
var ErrNotLoaded = errors.New("no document loaded")

// LaunchError means the editor process could not be started.
type LaunchError struct {
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	name := ""
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("launch editor %s: %v", name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Command returns the argv joined with spaces, for display.
func (e *LaunchError) Command() string {
	return strings.Join(e.Argv, " ")
}

// TerminalError means the terminal could not be suspended or resumed.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("%s terminal: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err ends the viewer. Only document load and save
// failures are fatal.
func IsFatal(err error) bool {
	return errors.Is(err, document.ErrFileOpen) || errors.Is(err, ErrNotLoaded)
}
