package statusline

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padview/internal/renderer/backend"
	"github.com/dshills/padview/internal/renderer/core"
	"github.com/dshills/padview/internal/renderer/viewport"
)

func TestText(t *testing.T) {
	s := New()
	s.SetPositions(viewport.Position{Row: 12, Col: 3}, viewport.Position{Row: 2, Col: 0})

	text := s.Text(60)
	assert.Equal(t, 60, runewidth.StringWidth(text))
	assert.Equal(t, " Cursor: 12:3 | Position: 2:0 | q: quit", strings.TrimRight(text, " "))
}

func TestTextWithMessage(t *testing.T) {
	s := New()
	s.SetMessage("editor exited with status 1", MessageInfo)

	text := strings.TrimRight(s.Text(200), " ")
	assert.True(t, strings.HasSuffix(text, "| q: quit | editor exited with status 1"))

	s.ClearMessage()
	msg, typ := s.Message()
	assert.Empty(t, msg)
	assert.Equal(t, MessageNone, typ)
}

func TestTextTruncates(t *testing.T) {
	s := New()
	text := s.Text(10)

	assert.Equal(t, 10, runewidth.StringWidth(text))
	assert.True(t, strings.HasSuffix(text, "…"))
	assert.Empty(t, s.Text(0))
}

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(50, 4)
	require.NoError(t, b.Init())

	s := New()
	s.Render(b, 3, 50)

	assert.Equal(t, s.Text(50), b.Row(3))
	assert.True(t, b.GetCell(0, 3).Style.Attributes.Has(core.AttrReverse))
}

func TestRenderErrorIsBold(t *testing.T) {
	b := backend.NewNullBackend(50, 1)
	s := New()
	s.SetMessage("cannot start editor", MessageError)
	s.Render(b, 0, 50)

	assert.True(t, b.GetCell(1, 0).Style.Attributes.Has(core.AttrBold))
}
