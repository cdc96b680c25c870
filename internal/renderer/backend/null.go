package backend

import (
	"errors"
	"sync"

	"github.com/dshills/padview/internal/renderer/core"
)

// ErrEventQueueFull is returned by PostEvent when the queue cannot accept more events.
var ErrEventQueueFull = errors.New("event queue full")

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu sync.Mutex

	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	events        chan Event

	initialized bool
	shutdown    bool
	suspended   bool
	suspends    int
	resumes     int
	shows       int

	// SuspendErr and ResumeErr are returned by Suspend and Resume when set.
	SuspendErr error
	ResumeErr  error
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	b.shutdown = false
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = true
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
// Returns an empty cell for positions outside the terminal.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the runes of screen row y as a string, including trailing blanks.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) error {
	select {
	case b.events <- event:
		return nil
	default:
		return ErrEventQueueFull
	}
}

func (b *NullBackend) Suspend() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SuspendErr != nil {
		return b.SuspendErr
	}
	b.suspended = true
	b.suspends++
	return nil
}

func (b *NullBackend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ResumeErr != nil {
		return b.ResumeErr
	}
	b.suspended = false
	b.resumes++
	return nil
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

// Suspended reports whether the backend is currently suspended.
func (b *NullBackend) Suspended() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suspended
}

// SuspendCounts returns how many times Suspend and Resume succeeded.
func (b *NullBackend) SuspendCounts() (suspends, resumes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.suspends, b.resumes
}

// Initialized reports whether Init was called.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// IsShutdown reports whether Shutdown was called after the last Init.
func (b *NullBackend) IsShutdown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown
}

// Shows returns the number of Show calls.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// Resize simulates a terminal resize and queues the matching resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()

	_ = b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// SetSize changes the dimensions without queueing an event, as happens when
// the terminal is resized while another program owns it.
func (b *NullBackend) SetSize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width = width
	b.height = height
	b.allocate()
}
