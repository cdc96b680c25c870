// Package viewport tracks the cursor position and the visible window over a document.
//
// Coordinates are zero-based cells. The cursor is bounded by MaxRows and MaxCols,
// independent of the document length or the length of the current line. The origin
// is the top-left document cell shown on screen and always keeps the cursor inside
// the visible area.
package viewport

import "github.com/samber/lo"

// Logical cursor bounds.
const (
	MaxRows = 10000
	MaxCols = 200
)

// Position is a zero-based (row, column) pair.
type Position struct {
	Row int
	Col int
}

// Viewport owns the cursor and the viewport origin.
//
// It is not safe for concurrent use; the application mutates it from a single
// control flow.
type Viewport struct {
	cursor Position
	origin Position

	// Visible area in cells, never smaller than 1x1.
	rows int
	cols int
}

// New creates a viewport with the cursor and origin at (0,0).
// Sizes below 1 are treated as 1.
func New(visibleRows, visibleCols int) *Viewport {
	return &Viewport{
		rows: floorDim(visibleRows),
		cols: floorDim(visibleCols),
	}
}

// Cursor returns the cursor position.
func (v *Viewport) Cursor() Position {
	return v.cursor
}

// Origin returns the top-left visible document cell.
func (v *Viewport) Origin() Position {
	return v.origin
}

// Size returns the visible area the viewport was last clamped against.
func (v *Viewport) Size() (rows, cols int) {
	return v.rows, v.cols
}

// ScreenCursor returns the cursor position relative to the origin.
func (v *Viewport) ScreenCursor() (row, col int) {
	return v.cursor.Row - v.origin.Row, v.cursor.Col - v.origin.Col
}

// MoveUp moves the cursor one row up. Returns false if it was already on row 0.
func (v *Viewport) MoveUp() bool {
	return v.move(-1, 0)
}

// MoveDown moves the cursor one row down. Returns false at MaxRows-1.
func (v *Viewport) MoveDown() bool {
	return v.move(1, 0)
}

// MoveLeft moves the cursor one column left. Returns false at column 0.
func (v *Viewport) MoveLeft() bool {
	return v.move(0, -1)
}

// MoveRight moves the cursor one column right. Returns false at MaxCols-1.
func (v *Viewport) MoveRight() bool {
	return v.move(0, 1)
}

// move applies a unit step and scrolls the origin by at most one cell per axis.
func (v *Viewport) move(dRow, dCol int) bool {
	next := Position{
		Row: lo.Clamp(v.cursor.Row+dRow, 0, MaxRows-1),
		Col: lo.Clamp(v.cursor.Col+dCol, 0, MaxCols-1),
	}
	if next == v.cursor {
		return false
	}
	v.cursor = next
	v.origin.Row = step(v.cursor.Row, v.origin.Row, v.rows)
	v.origin.Col = step(v.cursor.Col, v.origin.Col, v.cols)
	return true
}

// SetCursor jumps to pos, clamped to the logical bounds, and reclamps the origin
// against the current visible area.
func (v *Viewport) SetCursor(pos Position) {
	v.cursor = Position{
		Row: lo.Clamp(pos.Row, 0, MaxRows-1),
		Col: lo.Clamp(pos.Col, 0, MaxCols-1),
	}
	v.Reclamp(v.rows, v.cols)
}

// Reclamp records a new visible area and recomputes the origin so the cursor is
// visible. The origin only moves as far as needed, so calling Reclamp again with
// the same size is a no-op.
func (v *Viewport) Reclamp(visibleRows, visibleCols int) {
	v.rows = floorDim(visibleRows)
	v.cols = floorDim(visibleCols)
	v.origin.Row = reveal(v.cursor.Row, v.origin.Row, v.rows)
	v.origin.Col = reveal(v.cursor.Col, v.origin.Col, v.cols)
}

// Contains reports whether pos is inside the visible area.
func (v *Viewport) Contains(pos Position) bool {
	return pos.Row >= v.origin.Row && pos.Row <= v.origin.Row+v.rows-1 &&
		pos.Col >= v.origin.Col && pos.Col <= v.origin.Col+v.cols-1
}

// step is the single-cell scroll applied after a unit cursor move.
func step(cursor, origin, extent int) int {
	switch {
	case cursor < origin:
		return cursor
	case cursor > origin+extent-1:
		return origin + 1
	default:
		return origin
	}
}

// reveal moves origin the minimum distance that puts cursor inside [origin, origin+extent).
func reveal(cursor, origin, extent int) int {
	switch {
	case cursor < origin:
		return cursor
	case cursor > origin+extent-1:
		return cursor - extent + 1
	case origin < 0:
		return 0
	default:
		return origin
	}
}

func floorDim(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// StatusRows is the number of terminal rows reserved below the document area.
const StatusRows = 1

// VisibleArea converts terminal dimensions into the document area, i.e. the
// terminal minus the status row. The result is never smaller than 1x1.
func VisibleArea(termWidth, termHeight int) (rows, cols int) {
	return floorDim(termHeight - StatusRows), floorDim(termWidth)
}
