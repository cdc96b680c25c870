package cli_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padview/internal/cli"
	"github.com/dshills/padview/internal/config"
	"github.com/dshills/padview/internal/engine/document"
	"github.com/dshills/padview/internal/integration/process"
	"github.com/dshills/padview/internal/renderer/backend"
)

type fakeRunner struct {
	calls [][]string
}

func (r *fakeRunner) Run(name string, cmd *exec.Cmd) (*process.Process, error) {
	r.calls = append(r.calls, cmd.Args)
	return process.NewProcess("test", name, cmd), nil
}

type harness struct {
	env    cli.Env
	be     *backend.NullBackend
	runner *fakeRunner
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

func newHarness() *harness {
	h := &harness{
		be:     backend.NewNullBackend(80, 24),
		runner: &fakeRunner{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
	}
	h.env = cli.Env{
		Stdin:  bytes.NewReader(nil),
		Stdout: h.stdout,
		Stderr: h.stderr,
		LookupEnv: func(name string) (string, bool) {
			v, ok := h.vars[name]
			return v, ok
		},
		IsTerminal: func() bool { return true },
		NewBackend: func() (backend.Backend, error) { return h.be, nil },
		Runner:     h.runner,

		SkipDefaultConfig: true,
	}
	return h
}

func (h *harness) keys(t *testing.T, keys string) {
	t.Helper()
	for _, r := range keys {
		require.NoError(t, h.be.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}))
	}
}

func (h *harness) run(args ...string) error {
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}, h.env)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeTarget(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand(cli.BuildInfo{}, newHarness().env)
	assert.Equal(t, "padview", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"version", "keys"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "editor", "log-file", "log-level", "watch", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestRunViewerQuits(t *testing.T) {
	h := newHarness()
	h.keys(t, "jq")

	require.NoError(t, h.run(writeTarget(t)))
	assert.True(t, h.be.IsShutdown())
	assert.Contains(t, h.be.Row(23), "Cursor: 1:0")
}

func TestRunViewerEditorFlag(t *testing.T) {
	h := newHarness()
	path := writeTarget(t)
	h.keys(t, "llaq")

	require.NoError(t, h.run("--editor", "nano +{line},{col}", path))
	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"nano", "+1,3", path}, h.runner.calls[0])
}

func TestRunViewerEditorFromEnvironment(t *testing.T) {
	h := newHarness()
	h.vars["EDITOR"] = "micro"
	path := writeTarget(t)
	h.keys(t, "jiq")

	require.NoError(t, h.run(path))
	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"micro", "+2:1", path}, h.runner.calls[0])
}

func TestRunViewerFileFromEnvironment(t *testing.T) {
	h := newHarness()
	h.vars["PADVIEW_FILE"] = writeTarget(t)
	h.keys(t, "q")

	require.NoError(t, h.run())
	assert.Contains(t, h.be.Row(0), "one")
}

func TestRunViewerConfigFile(t *testing.T) {
	h := newHarness()
	path := writeTarget(t)
	cfgPath := filepath.Join(t.TempDir(), "padview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("file: "+path+"\neditor:\n  command: ed {file}\n"), 0o644))
	h.keys(t, "Oq")

	require.NoError(t, h.run("-c", cfgPath))
	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"ed", path}, h.runner.calls[0])
}

func TestRunViewerLogFile(t *testing.T) {
	h := newHarness()
	logPath := filepath.Join(t.TempDir(), "padview.log")
	h.keys(t, "q")

	require.NoError(t, h.run("--debug", "--log-file", logPath, writeTarget(t)))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "viewer started")
	assert.Contains(t, string(data), "configuration loaded")
}

func TestRunViewerWarnsAboutDroppedCursorFields(t *testing.T) {
	h := newHarness()
	h.vars["EDITOR"] = "ed"
	logPath := filepath.Join(t.TempDir(), "padview.log")
	h.keys(t, "q")

	require.NoError(t, h.run("--log-file", logPath, writeTarget(t)))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "editor command drops cursor fields")
	assert.Contains(t, string(data), "{col}")
}

func TestRunViewerKnownEditorKeepsColumn(t *testing.T) {
	h := newHarness()
	h.vars["EDITOR"] = "nano"
	path := writeTarget(t)
	h.keys(t, "jllaq")

	require.NoError(t, h.run(path))
	require.Len(t, h.runner.calls, 1)
	assert.Equal(t, []string{"nano", "+2,3", path}, h.runner.calls[0])
}

func TestRunViewerErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness) []string
		code  int
	}{
		{
			name: "missing file",
			setup: func(*harness) []string {
				return []string{filepath.Join(os.TempDir(), "padview-definitely-missing.txt")}
			},
			code: cli.ExitIOError,
		},
		{
			name: "not a terminal",
			setup: func(h *harness) []string {
				h.env.IsTerminal = func() bool { return false }
				return []string{"README.md"}
			},
			code: cli.ExitInvalidUsage,
		},
		{
			name:  "too many files",
			setup: func(*harness) []string { return []string{"a.txt", "b.txt"} },
			code:  cli.ExitInvalidUsage,
		},
		{
			name:  "unknown flag",
			setup: func(*harness) []string { return []string{"--frobnicate"} },
			code:  cli.ExitInvalidUsage,
		},
		{
			name:  "bad log level",
			setup: func(*harness) []string { return []string{"--log-level", "loud", "README.md"} },
			code:  cli.ExitConfigError,
		},
		{
			name:  "missing config",
			setup: func(*harness) []string { return []string{"-c", "/nonexistent/padview.toml"} },
			code:  cli.ExitConfigError,
		},
		{
			name: "bad environment",
			setup: func(h *harness) []string {
				h.vars["PADVIEW_WATCH"] = "maybe"
				return nil
			},
			code: cli.ExitConfigError,
		},
		{
			name: "backend failure",
			setup: func(h *harness) []string {
				h.env.NewBackend = func() (backend.Backend, error) { return nil, errors.New("no tty") }
				return []string{"README.md"}
			},
			code: cli.ExitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			err := h.run(tt.setup(h)...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(&document.FileOpenError{Op: document.OpSave, Path: "x", Err: fs.ErrPermission}))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(&config.ParseError{Path: "x.toml"}))
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(cli.ErrNotTerminal))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	err := &document.FileOpenError{
		Op:   document.OpLoad,
		Path: "README.md",
		Err:  &fs.PathError{Op: "open", Path: "README.md", Err: fs.ErrNotExist},
	}
	cli.PrintError(&buf, err, cli.NewDiagnosticStyles(false))
	assert.Equal(t, "padview: cannot read README.md: file does not exist\n", buf.String())

	buf.Reset()
	cli.PrintError(&buf, &document.FileOpenError{Op: document.OpSave, Path: "a.txt", Err: fs.ErrPermission}, cli.NewDiagnosticStyles(false))
	assert.Equal(t, "padview: cannot write a.txt: permission denied\n", buf.String())

	buf.Reset()
	cli.PrintError(&buf, errors.New("boom"), cli.NewDiagnosticStyles(false))
	assert.Equal(t, "padview: boom\n", buf.String())
}

func TestIsColorEnabled(t *testing.T) {
	assert.False(t, cli.IsColorEnabled(io.Discard))
	assert.False(t, cli.IsColorEnabled(&bytes.Buffer{}))
}

func TestVersionCommand(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run("version"))
	out := h.stdout.String()
	assert.Contains(t, out, "padview")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestKeysCommand(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.run("keys"))
	out := h.stdout.String()
	for _, want := range []string{"Movement", "Edit", "View", "Move down", "Edit, open line above", "Quit"} {
		assert.Contains(t, out, want)
	}
}
