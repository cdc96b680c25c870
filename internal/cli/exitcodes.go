package cli

import (
	"errors"

	"github.com/dshills/padview/internal/config"
	"github.com/dshills/padview/internal/engine/document"
)

// Exit codes for padview.
const (
	// ExitSuccess indicates a normal quit.
	ExitSuccess = 0

	// ExitFailure indicates any other failure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage, including running
	// without a terminal.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file or environment errors.
	ExitConfigError = 65

	// ExitIOError indicates the target file could not be read or written.
	ExitIOError = 74
)

// ErrUsage marks command-line usage errors.
var ErrUsage = errors.New("usage error")

// ErrNotTerminal is returned when stdin is not a terminal.
var ErrNotTerminal = errors.New("standard input is not a terminal")

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	var parseErr *config.ParseError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, ErrNotTerminal):
		return ExitInvalidUsage
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrFileNotFound),
		errors.Is(err, config.ErrUnsupportedFormat),
		errors.As(err, &parseErr):
		return ExitConfigError
	case errors.Is(err, document.ErrFileOpen):
		return ExitIOError
	default:
		return ExitFailure
	}
}
