package editsession

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/padview/internal/engine/document"
	"github.com/dshills/padview/internal/integration/process"
	"github.com/dshills/padview/internal/logging"
	"github.com/dshills/padview/internal/renderer/viewport"
)

// Terminal is the part of the UI backend a session needs.
type Terminal interface {
	Suspend() error
	Resume() error
	Size() (width, height int)
}

// Result describes a finished session.
type Result struct {
	// SessionID identifies the editor process in logs.
	SessionID string

	// Argv is the editor command line that was run.
	Argv []string

	// ExitCode is the editor's exit status, -1 if it never ran or was killed.
	ExitCode int

	// ExitErr is the editor's wait error, set for a non-zero exit or a signal.
	ExitErr error

	// Duration is how long the editor ran.
	Duration time.Duration

	// Bytes is the size of the reloaded document.
	Bytes int
}

// Manager runs edit sessions for one document and viewport.
type Manager struct {
	doc  *document.Document
	view *viewport.Viewport
	term Terminal

	runner   process.Runner
	template Template
	logger   *log.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithRunner sets the process runner.
func WithRunner(r process.Runner) Option {
	return func(m *Manager) {
		m.runner = r
	}
}

// WithTemplate sets the editor command template.
func WithTemplate(t Template) Option {
	return func(m *Manager) {
		if !t.IsZero() {
			m.template = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithStdio sets the editor's standard streams. The process's own streams are
// used by default so the editor can take over the terminal.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(m *Manager) {
		m.stdin = stdin
		m.stdout = stdout
		m.stderr = stderr
	}
}

// NewManager creates a session manager.
func NewManager(doc *document.Document, view *viewport.Viewport, term Terminal, opts ...Option) *Manager {
	m := &Manager{
		doc:      doc,
		view:     view,
		term:     term,
		runner:   process.NewExecRunner(),
		template: MustParseTemplate(DefaultCommand),
		logger:   logging.Default(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Template returns the editor command template in use.
func (m *Manager) Template() Template {
	return m.template
}

// Target returns the editor target for the current cursor.
func (m *Manager) Target(mode Mode) Target {
	cur := m.view.Cursor()
	return Target{
		Line:   cur.Row + 1,
		Column: cur.Col + 1,
		Mode:   mode,
		Path:   m.doc.Path(),
	}
}

// EnterEdit saves the document, runs the editor and reloads the document.
//
// It blocks until the editor exits. Errors matching document.ErrFileOpen are
// fatal. LaunchError and TerminalError are returned only after the document
// was reloaded and the viewport reclamped.
func (m *Manager) EnterEdit(mode Mode) (Result, error) {
	res := Result{ExitCode: -1}

	if !mode.Valid() {
		return res, fmt.Errorf("edit mode %d: invalid", int(mode))
	}
	if !m.doc.Loaded() {
		return res, ErrNotLoaded
	}

	if err := m.doc.Save(); err != nil {
		m.logger.Error("save before edit failed", logging.FieldPath, m.doc.Path(), logging.FieldError, err)
		return res, err
	}

	target := m.Target(mode)
	res.Argv = m.template.Build(target)
	m.logger.Info("edit session starting",
		logging.FieldLine, target.Line,
		logging.FieldColumn, target.Column,
		logging.FieldMode, mode,
		logging.FieldArgv, res.Argv,
	)

	runErr := m.runEditor(&res)
	if runErr != nil {
		m.logger.Warn("edit session failed", logging.FieldSession, res.SessionID, logging.FieldError, runErr)
	} else {
		m.logger.Info("edit session finished",
			logging.FieldSession, res.SessionID,
			logging.FieldExitCode, res.ExitCode,
			logging.FieldDuration, res.Duration,
		)
		if res.ExitErr != nil {
			m.logger.Debug("editor exit", logging.FieldSession, res.SessionID, logging.FieldError, res.ExitErr)
		}
	}

	if err := m.doc.Load(); err != nil {
		m.logger.Error("reload after edit failed", logging.FieldPath, m.doc.Path(), logging.FieldError, err)
		return res, errors.Join(err, runErr)
	}
	res.Bytes = m.doc.Len()
	m.view.Reclamp(viewport.VisibleArea(m.term.Size()))
	m.logger.Debug("document reloaded", logging.FieldBytes, res.Bytes, logging.FieldVersion, m.doc.Version())

	return res, runErr
}

// runEditor suspends the terminal around the editor process. The terminal is
// resumed on every path that suspended it.
func (m *Manager) runEditor(res *Result) (err error) {
	if err := m.term.Suspend(); err != nil {
		return &TerminalError{Op: "suspend", Err: err}
	}
	defer func() {
		if rerr := m.term.Resume(); rerr != nil {
			err = errors.Join(err, &TerminalError{Op: "resume", Err: rerr})
		}
	}()

	cmd := exec.Command(res.Argv[0], res.Argv[1:]...) //nolint:gosec // argv comes from the user's editor setting
	cmd.Stdin = m.stdin
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr

	proc, err := m.runner.Run("editor", cmd)
	if proc != nil {
		res.SessionID = proc.ID
	}
	if err != nil {
		return &LaunchError{Argv: res.Argv, Err: err}
	}
	res.ExitCode = proc.ExitCode()
	res.ExitErr = proc.ExitError()
	res.Duration = proc.Runtime()
	return nil
}
