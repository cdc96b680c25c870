package renderer

import (
	"bytes"

	"github.com/rivo/uniseg"

	"github.com/dshills/padview/internal/engine/document"
	"github.com/dshills/padview/internal/renderer/backend"
	"github.com/dshills/padview/internal/renderer/core"
	"github.com/dshills/padview/internal/renderer/statusline"
	"github.com/dshills/padview/internal/renderer/viewport"
)

// DefaultTabWidth matches curses pads.
const DefaultTabWidth = 8

// Renderer draws a document window and status line onto a backend.
type Renderer struct {
	backend backend.Backend
	status  *statusline.StatusLine

	tabWidth  int
	textStyle core.Style

	// Line index of the last rendered document version.
	cachedDoc     *document.Document
	cachedVersion uint64
	lines         [][]byte
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTabWidth sets the tab stop interval. Values below 1 are ignored.
func WithTabWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.tabWidth = width
		}
	}
}

// New creates a renderer drawing onto b.
func New(b backend.Backend, status *statusline.StatusLine, opts ...Option) *Renderer {
	r := &Renderer{
		backend:   b,
		status:    status,
		tabWidth:  DefaultTabWidth,
		textStyle: core.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status returns the status line drawn by this renderer.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// VisibleArea returns the document area of the backend's current size.
func (r *Renderer) VisibleArea() (rows, cols int) {
	return viewport.VisibleArea(r.backend.Size())
}

// Render redraws the whole screen.
func (r *Renderer) Render(doc *document.Document, view *viewport.Viewport) {
	width, height := r.backend.Size()
	rows, cols := viewport.VisibleArea(width, height)
	origin := view.Origin()

	r.backend.Clear()

	lines := r.linesOf(doc)
	for y := 0; y < rows; y++ {
		n := origin.Row + y
		if n >= len(lines) {
			break
		}
		r.drawLine(y, lines[n], origin.Col, cols)
	}

	r.status.SetPositions(view.Cursor(), origin)
	r.status.Render(r.backend, height-1, width)

	row, col := view.ScreenCursor()
	r.backend.ShowCursor(col, row)
	r.backend.Show()
}

// linesOf splits the document into lines, reusing the previous split when the
// document has not been reloaded.
func (r *Renderer) linesOf(doc *document.Document) [][]byte {
	if doc == nil {
		return nil
	}
	if doc != r.cachedDoc || doc.Version() != r.cachedVersion {
		r.lines = splitLines(doc.Bytes())
		r.cachedDoc = doc
		r.cachedVersion = doc.Version()
	}
	return r.lines
}

// drawLine draws the cells of line that fall in [originCol, originCol+cols).
func (r *Renderer) drawLine(y int, line []byte, originCol, cols int) {
	end := originCol + cols
	col := 0
	state := -1
	rest := line

	for len(rest) > 0 && col < end {
		var cluster []byte
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeCluster(rest, state)

		glyph := []rune(string(cluster))
		switch {
		case len(cluster) == 1 && cluster[0] == '\t':
			width = r.tabWidth - col%r.tabWidth
			glyph = []rune{' '}
		case len(glyph) == 1 && isControl(glyph[0]):
			// Caret notation, like curses: ^@ .. ^_, ^?
			glyph = []rune{'^', caret(glyph[0])}
			width = 2
		}

		start := col
		col += width
		if width == 0 || col <= originCol {
			continue
		}

		// Tabs, caret pairs and glyphs cut by the window edge are drawn cell by cell.
		if glyph[0] == ' ' || glyph[0] == '^' || start < originCol || col > end {
			for c := max(start, originCol); c < min(col, end); c++ {
				ch := ' '
				if glyph[0] == '^' {
					ch = glyph[c-start]
				}
				r.backend.SetCell(c-originCol, y, core.NewStyledCell(ch, r.textStyle))
			}
			continue
		}

		r.backend.SetCell(start-originCol, y, core.Cell{
			Rune:      glyph[0],
			Combining: glyph[1:],
			Width:     width,
			Style:     r.textStyle,
		})
		for c := start + 1; c < col; c++ {
			// Continuation of a wide glyph.
			r.backend.SetCell(c-originCol, y, core.Cell{Style: r.textStyle})
		}
	}
}

// splitLines splits on '\n'. A trailing newline does not start a new line and a
// '\r' before '\n' is dropped.
func splitLines(content []byte) [][]byte {
	if len(content) == 0 {
		return nil
	}
	content = bytes.TrimSuffix(content, []byte("\n"))
	lines := bytes.Split(content, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}
	return lines
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

func caret(r rune) rune {
	if r == 0x7f {
		return '?'
	}
	return r + '@'
}
