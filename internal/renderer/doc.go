// Package renderer draws the document window, the status line and the
// hardware cursor.
//
// Rendering is pure presentation: it reads the Document and the Viewport and
// never changes them. The document area is the terminal minus the status row;
// only the lines and columns inside the viewport are drawn, so documents of any
// size are windowed rather than copied onto a full-size canvas.
//
//	┌──────────────────────────────┐
//	│ document window              │ rows 0 .. height-2
//	│ (origin at top-left)         │
//	├──────────────────────────────┤
//	│ status line                  │ row height-1
//	└──────────────────────────────┘
//
// Usage:
//
//	r := renderer.New(term, statusline.New())
//	r.Render(doc, view)
package renderer
