package keymap

import (
	"github.com/dshills/padview/internal/integration/editsession"
)

// Action is what a key does.
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionMoveUp
	ActionEdit
	ActionRedraw
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionMoveLeft:  "cursor.moveLeft",
	ActionMoveRight: "cursor.moveRight",
	ActionMoveDown:  "cursor.moveDown",
	ActionMoveUp:    "cursor.moveUp",
	ActionEdit:      "edit.enter",
	ActionRedraw:    "view.redraw",
	ActionQuit:      "app.quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Category groups bindings for display.
const (
	CategoryMovement = "Movement"
	CategoryEdit     = "Edit"
	CategoryView     = "View"
)

// Binding is a single key-to-action mapping.
type Binding struct {
	// Keys is the display form of the key, e.g. "j" or "Down".
	Keys string

	// Action is the action to run.
	Action Action

	// Mode is the editor entry mode for ActionEdit.
	Mode editsession.Mode

	// Description is shown by the keys listing.
	Description string

	// Category groups the binding for display.
	Category string
}
