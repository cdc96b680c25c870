package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromHex(t *testing.T) {
	c, err := ColorFromHex("#3465a4")
	require.NoError(t, err)
	assert.Equal(t, ColorFromRGB(0x34, 0x65, 0xa4), c)
	assert.Equal(t, "#3465a4", c.String())

	c, err = ColorFromHex("")
	require.NoError(t, err)
	assert.True(t, c.IsDefault())

	c, err = ColorFromHex("default")
	require.NoError(t, err)
	assert.Equal(t, "default", c.String())

	_, err = ColorFromHex("blue-ish")
	assert.Error(t, err)
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().Reverse().Bold().WithForeground(ColorFromRGB(1, 2, 3))

	assert.True(t, s.Attributes.Has(AttrReverse))
	assert.True(t, s.Attributes.Has(AttrBold))
	assert.False(t, s.Attributes.Has(AttrDim))
	assert.Equal(t, ColorFromRGB(1, 2, 3), s.Foreground)
	assert.True(t, s.Background.IsDefault())
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 1, NewStyledCell('x', DefaultStyle()).Width)
	assert.Equal(t, ' ', EmptyCell().Rune)
}
