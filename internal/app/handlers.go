package app

import (
	"fmt"

	"github.com/dshills/padview/internal/input/keymap"
	"github.com/dshills/padview/internal/integration/editsession"
	"github.com/dshills/padview/internal/logging"
	"github.com/dshills/padview/internal/project/watcher"
	"github.com/dshills/padview/internal/renderer/backend"
	"github.com/dshills/padview/internal/renderer/statusline"
)

// reloadRequest is the interrupt payload posted by the file watcher.
type reloadRequest struct {
	op watcher.Op
}

// quitRequest is the interrupt payload posted by RequestQuit.
type quitRequest struct{}

// handleEvent processes a backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		return app.handleResize()
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		return nil
	}
}

// handleKey runs the bound action. Unbound keys are ignored without a redraw.
func (app *Application) handleKey(ev backend.Event) error {
	b, ok := app.keymap.Lookup(ev)
	if !ok {
		return nil
	}
	if b.Action == keymap.ActionQuit {
		return ErrQuit
	}
	app.status.ClearMessage()

	switch b.Action {
	case keymap.ActionMoveLeft:
		app.view.MoveLeft()
	case keymap.ActionMoveRight:
		app.view.MoveRight()
	case keymap.ActionMoveDown:
		app.view.MoveDown()
	case keymap.ActionMoveUp:
		app.view.MoveUp()
	case keymap.ActionEdit:
		if err := app.edit(b.Mode); err != nil {
			return err
		}
	case keymap.ActionRedraw:
		app.reclamp()
	}

	app.render()
	return nil
}

// edit runs an edit session. Only fatal session errors are returned; the rest
// are shown on the status line.
func (app *Application) edit(mode editsession.Mode) error {
	res, err := app.sessions.EnterEdit(mode)
	switch {
	case editsession.IsFatal(err):
		return err
	case err != nil:
		app.status.SetMessage(err.Error(), statusline.MessageError)
	case res.ExitCode > 0:
		app.status.SetMessage(fmt.Sprintf("editor exited with status %d", res.ExitCode), statusline.MessageInfo)
	case res.ExitErr != nil:
		app.status.SetMessage("editor stopped: "+res.ExitErr.Error(), statusline.MessageInfo)
	}
	return nil
}

// handleResize refits the viewport to the new terminal size.
func (app *Application) handleResize() error {
	app.reclamp()
	rows, cols := app.view.Size()
	app.logger.Debug("terminal resized", logging.FieldRows, rows, logging.FieldCols, cols)
	app.render()
	return nil
}

// handleInterrupt reloads the document on behalf of the watcher. A failed
// reload keeps the previous content on screen.
func (app *Application) handleInterrupt(ev backend.Event) error {
	var req reloadRequest
	switch data := ev.Data.(type) {
	case quitRequest:
		return ErrQuit
	case reloadRequest:
		req = data
	default:
		return nil
	}

	if err := app.doc.Load(); err != nil {
		app.logger.Warn("reload failed", logging.FieldPath, app.doc.Path(), logging.FieldError, err)
		app.status.SetMessage("reload failed: "+err.Error(), statusline.MessageError)
	} else {
		app.reclamp()
		app.logger.Info("reloaded after outside change",
			logging.FieldPath, app.doc.Path(),
			logging.FieldBytes, app.doc.Len(),
			logging.FieldOp, req.op,
		)
		app.status.SetMessage("file changed on disk, reloaded", statusline.MessageInfo)
	}

	app.render()
	return nil
}

// requestReload is called on the watcher goroutine. It only posts an event so
// the document is touched by the event loop alone.
func (app *Application) requestReload(ev watcher.Event) {
	err := app.backend.PostEvent(backend.Event{
		Type: backend.EventInterrupt,
		Data: reloadRequest{op: ev.Op},
	})
	if err != nil {
		app.logger.Warn("dropped reload request", logging.FieldError, err)
	}
}

// RequestQuit asks a running event loop to return. Safe to call from any
// goroutine, e.g. a signal handler.
func (app *Application) RequestQuit() error {
	return app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
}
