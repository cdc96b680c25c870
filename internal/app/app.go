// Package app owns the viewer state and runs the event loop.
//
// The Application is the single owner of the Document and the Viewport. Every
// mutation happens on the goroutine that calls Run: key handling, resize
// reclamping, edit sessions and watcher-triggered reloads, which arrive as
// interrupt events posted to the backend queue.
package app

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/padview/internal/engine/document"
	"github.com/dshills/padview/internal/input/keymap"
	"github.com/dshills/padview/internal/integration/editsession"
	"github.com/dshills/padview/internal/integration/process"
	"github.com/dshills/padview/internal/logging"
	"github.com/dshills/padview/internal/project/watcher"
	"github.com/dshills/padview/internal/renderer"
	"github.com/dshills/padview/internal/renderer/backend"
	"github.com/dshills/padview/internal/renderer/core"
	"github.com/dshills/padview/internal/renderer/statusline"
	"github.com/dshills/padview/internal/renderer/viewport"
)

// Options configures the application.
type Options struct {
	// Path is the target file.
	Path string

	// Template is the editor command. Zero means the default vim template.
	Template editsession.Template

	// Runner runs the editor. Nil means os/exec.
	Runner process.Runner

	// TabWidth is the tab stop interval. Zero means renderer.DefaultTabWidth.
	TabWidth int

	// StatusStyle overrides the status line style.
	StatusStyle *core.Style

	// Watch reloads the file when it changes outside the viewer.
	Watch bool

	// WatchDebounce is the watcher's quiet period. Zero means the default.
	WatchDebounce time.Duration

	// Logger receives diagnostics. Nil means logging.Default.
	Logger *log.Logger

	// Stdin, Stdout and Stderr are handed to the editor. Nil means the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// FileSystem overrides disk access for the document.
	FileSystem document.FileSystem
}

// Application is the viewer.
type Application struct {
	backend  backend.Backend
	doc      *document.Document
	view     *viewport.Viewport
	status   *statusline.StatusLine
	renderer *renderer.Renderer
	sessions *editsession.Manager
	keymap   *keymap.Keymap
	logger   *log.Logger

	watcher *watcher.FileWatcher

	running atomic.Bool
	opts    Options
}

// New wires an application around a terminal backend. Nothing touches the
// terminal or the file until Run.
func New(be backend.Backend, opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	var docOpts []document.Option
	if opts.FileSystem != nil {
		docOpts = append(docOpts, document.WithFileSystem(opts.FileSystem))
	}
	doc := document.New(opts.Path, docOpts...)

	status := statusline.New()
	if opts.StatusStyle != nil {
		status.SetStyle(*opts.StatusStyle)
	}
	render := renderer.New(be, status, renderer.WithTabWidth(opts.TabWidth))

	// The real size is applied by the first reclamp in Run.
	view := viewport.New(1, 1)

	sessionOpts := []editsession.Option{
		editsession.WithTemplate(opts.Template),
		editsession.WithLogger(logger),
		editsession.WithStdio(streamOr(opts.Stdin, os.Stdin), writerOr(opts.Stdout, os.Stdout), writerOr(opts.Stderr, os.Stderr)),
	}
	if opts.Runner != nil {
		sessionOpts = append(sessionOpts, editsession.WithRunner(opts.Runner))
	}

	return &Application{
		backend:  be,
		doc:      doc,
		view:     view,
		status:   status,
		renderer: render,
		sessions: editsession.NewManager(doc, view, be, sessionOpts...),
		keymap:   keymap.Default(),
		logger:   logger,
		opts:     opts,
	}
}

// Run takes over the terminal, loads the file and handles events until the
// user quits. The terminal is restored before Run returns, so callers can
// print a returned error directly.
//
// A nil return means a normal quit. Errors matching document.ErrFileOpen are
// load or save failures.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.backend.Shutdown()

	if err := app.start(); err != nil {
		return err
	}
	defer app.stop()

	return app.eventLoop()
}

// start loads the document and draws the first frame.
func (app *Application) start() error {
	if err := app.doc.Load(); err != nil {
		app.logger.Error("load failed", logging.FieldPath, app.doc.Path(), logging.FieldError, err)
		return err
	}
	app.backend.SetCursorStyle(backend.CursorBlock)
	app.reclamp()

	rows, cols := app.view.Size()
	app.logger.Info("viewer started",
		logging.FieldPath, app.doc.Path(),
		logging.FieldBytes, app.doc.Len(),
		logging.FieldRows, rows,
		logging.FieldCols, cols,
	)

	if app.opts.Watch {
		app.startWatcher()
	}

	app.render()
	return nil
}

// stop releases resources acquired by start.
func (app *Application) stop() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("close watcher", logging.FieldError, err)
		}
		app.watcher = nil
	}
	app.logger.Info("viewer stopped", logging.FieldPath, app.doc.Path())
}

// eventLoop handles events until quit or a fatal error.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			// The terminal went away.
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// startWatcher starts the file watcher. Failure only costs the feature.
func (app *Application) startWatcher() {
	w, err := watcher.New(app.doc.Path(), app.requestReload,
		watcher.WithDebounce(app.opts.WatchDebounce),
		watcher.WithErrorHandler(func(err error) {
			app.logger.Warn("watcher error", logging.FieldError, err)
		}),
	)
	if err != nil {
		app.logger.Warn("watch disabled", logging.FieldPath, app.doc.Path(), logging.FieldError, err)
		app.status.SetMessage("watch disabled: "+err.Error(), statusline.MessageError)
		return
	}
	app.watcher = w
	app.logger.Debug("watching file", logging.FieldPath, w.Path())
}

// reclamp fits the viewport to the current terminal size.
func (app *Application) reclamp() {
	app.view.Reclamp(app.renderer.VisibleArea())
}

func (app *Application) render() {
	app.renderer.Render(app.doc, app.view)
}

func streamOr(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
