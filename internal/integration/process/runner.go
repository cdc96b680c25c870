package process

import (
	"os/exec"

	"github.com/google/uuid"
)

// Runner starts a command and blocks until it exits.
//
// The returned error is non-nil only when the command could not be started.
// The Process is returned in both cases so callers can log its ID.
type Runner interface {
	Run(name string, cmd *exec.Cmd) (*Process, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// NewID generates process IDs. Defaults to random UUIDs.
	NewID func() string
}

// NewExecRunner creates an ExecRunner with UUID process IDs.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{NewID: uuid.NewString}
}

// Run starts cmd and waits for it to exit.
func (r *ExecRunner) Run(name string, cmd *exec.Cmd) (*Process, error) {
	newID := r.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	proc := NewProcess(newID(), name, cmd)
	if err := proc.start(); err != nil {
		return proc, err
	}
	<-proc.Done()
	return proc, nil
}
