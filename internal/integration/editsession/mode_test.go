package editsession

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeDirectives(t *testing.T) {
	tests := []struct {
		mode      Mode
		directive string
		name      string
	}{
		{InsertBefore, "i", "insert-before"},
		{InsertAfter, "a", "insert-after"},
		{InsertLineStart, "I", "insert-line-start"},
		{InsertLineEnd, "A", "insert-line-end"},
		{OpenLineBelow, "o", "open-line-below"},
		{OpenLineAbove, "O", "open-line-above"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.mode.Valid())
			assert.Equal(t, tt.directive, tt.mode.Directive())
			assert.Equal(t, tt.name, tt.mode.String())

			got, ok := ModeFromKey([]rune(tt.directive)[0])
			assert.True(t, ok)
			assert.Equal(t, tt.mode, got)
		})
	}
}

func TestModeInvalid(t *testing.T) {
	m := Mode(42)
	assert.False(t, m.Valid())
	assert.Equal(t, "", m.Directive())
	assert.Equal(t, "unknown", m.String())
	assert.False(t, Mode(-1).Valid())

	_, ok := ModeFromKey('x')
	assert.False(t, ok)
}

func TestModesOrder(t *testing.T) {
	assert.Len(t, Modes(), 6)
	for i, m := range Modes() {
		assert.Equal(t, Mode(i), m)
	}
}
