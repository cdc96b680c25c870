package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcess(t *testing.T) {
	proc := NewProcess("test-id", "test-process", exec.Command("echo", "hello"))

	assert.Equal(t, "test-id", proc.ID)
	assert.Equal(t, "test-process", proc.Name)
	assert.Equal(t, StateCreated, proc.State())
	assert.Equal(t, -1, proc.ExitCode())
	assert.Equal(t, -1, proc.PID())
	assert.False(t, proc.HasExited())
	assert.Zero(t, proc.Runtime())
}

func TestProcess_StartTwice(t *testing.T) {
	proc := NewProcess("test-id", "test-process", exec.Command("true"))

	require.NoError(t, proc.start())
	assert.ErrorIs(t, proc.start(), ErrProcessAlreadyStarted)
	<-proc.Done()
}

func TestProcess_StartMissingBinary(t *testing.T) {
	proc := NewProcess("test-id", "nope", exec.Command("/nonexistent/padview-editor"))

	err := proc.start()
	require.Error(t, err)
	assert.Equal(t, StateCreated, proc.State())
}

func TestExecRunner_ExitCodes(t *testing.T) {
	tests := []struct {
		name      string
		cmd       *exec.Cmd
		wantCode  int
		wantState State
	}{
		{name: "success", cmd: exec.Command("true"), wantCode: 0, wantState: StateExited},
		{name: "failure", cmd: exec.Command("false"), wantCode: 1, wantState: StateExited},
		{name: "exit 42", cmd: exec.Command("sh", "-c", "exit 42"), wantCode: 42, wantState: StateExited},
		{name: "signaled", cmd: exec.Command("sh", "-c", "kill -KILL $$"), wantCode: -1, wantState: StateKilled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, err := NewExecRunner().Run(tt.name, tt.cmd)
			require.NoError(t, err)

			assert.True(t, proc.HasExited())
			assert.Equal(t, tt.wantCode, proc.ExitCode())
			assert.Equal(t, tt.wantState, proc.State())
			if tt.wantCode == 0 {
				assert.NoError(t, proc.ExitError())
			} else {
				var exitErr *exec.ExitError
				assert.ErrorAs(t, proc.ExitError(), &exitErr)
			}
			assert.False(t, proc.Ended.Before(proc.Started))
		})
	}
}

func TestExecRunner_BlocksUntilExit(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "done")
	cmd := exec.Command("sh", "-c", `sleep 0.1; echo ok > "$0"`, marker)

	_, err := NewExecRunner().Run("writer", cmd)
	require.NoError(t, err)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))
}

func TestExecRunner_StartFailure(t *testing.T) {
	proc, err := NewExecRunner().Run("missing", exec.Command("/nonexistent/padview-editor"))

	require.Error(t, err)
	require.NotNil(t, proc)
	assert.False(t, proc.HasExited())
}

func TestExecRunner_IDs(t *testing.T) {
	proc, err := NewExecRunner().Run("true", exec.Command("true"))
	require.NoError(t, err)
	_, parseErr := uuid.Parse(proc.ID)
	assert.NoError(t, parseErr)

	fixed := &ExecRunner{NewID: func() string { return "fixed" }}
	proc, err = fixed.Run("true", exec.Command("true"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", proc.ID)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "created", StateCreated.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "exited", StateExited.String())
	assert.Equal(t, "killed", StateKilled.String())
	assert.Equal(t, "unknown(9)", State(9).String())
}
