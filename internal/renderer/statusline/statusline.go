// Package statusline renders the one-row status bar below the document.
package statusline

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/padview/internal/renderer/backend"
	"github.com/dshills/padview/internal/renderer/core"
	"github.com/dshills/padview/internal/renderer/viewport"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine shows the cursor and viewport coordinates plus an optional message.
type StatusLine struct {
	cursor viewport.Position
	origin viewport.Position

	message     string
	messageType MessageType

	style      core.Style
	errorStyle core.Style
}

// New creates a status line drawn in reverse video.
func New() *StatusLine {
	return &StatusLine{
		style:      core.DefaultStyle().Reverse(),
		errorStyle: core.DefaultStyle().Reverse().Bold(),
	}
}

// SetStyle sets the style of the bar. Errors are drawn in the same style, bold.
func (s *StatusLine) SetStyle(style core.Style) {
	s.style = style
	s.errorStyle = style.Bold()
}

// SetPositions updates the displayed cursor and viewport origin.
func (s *StatusLine) SetPositions(cursor, origin viewport.Position) {
	s.cursor = cursor
	s.origin = origin
}

// SetMessage displays a status message after the coordinates.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Text returns the bar content padded or truncated to exactly width cells.
func (s *StatusLine) Text(width int) string {
	if width <= 0 {
		return ""
	}
	text := fmt.Sprintf(" Cursor: %d:%d | Position: %d:%d | q: quit",
		s.cursor.Row, s.cursor.Col, s.origin.Row, s.origin.Col)
	if s.message != "" {
		text += " | " + s.message
	}

	text = runewidth.Truncate(text, width, "…")
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	style := s.style
	if s.messageType == MessageError {
		style = s.errorStyle
	}

	x := 0
	for _, r := range s.Text(width) {
		cell := core.NewStyledCell(r, style)
		b.SetCell(x, row, cell)
		x += max(cell.Width, 1)
	}
}
