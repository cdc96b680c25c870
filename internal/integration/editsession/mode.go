package editsession

// Mode is the entry mode requested from the external editor.
type Mode int

const (
	// InsertBefore inserts before the cursor (vi "i").
	InsertBefore Mode = iota
	// InsertAfter appends after the cursor (vi "a").
	InsertAfter
	// InsertLineStart inserts at the first non-blank of the line (vi "I").
	InsertLineStart
	// InsertLineEnd appends at the end of the line (vi "A").
	InsertLineEnd
	// OpenLineBelow opens a new line below the cursor (vi "o").
	OpenLineBelow
	// OpenLineAbove opens a new line above the cursor (vi "O").
	OpenLineAbove
)

var modeInfo = [...]struct {
	directive rune
	name      string
}{
	InsertBefore:    {'i', "insert-before"},
	InsertAfter:     {'a', "insert-after"},
	InsertLineStart: {'I', "insert-line-start"},
	InsertLineEnd:   {'A', "insert-line-end"},
	OpenLineBelow:   {'o', "open-line-below"},
	OpenLineAbove:   {'O', "open-line-above"},
}

// Modes lists every entry mode in declaration order.
func Modes() []Mode {
	return []Mode{InsertBefore, InsertAfter, InsertLineStart, InsertLineEnd, OpenLineBelow, OpenLineAbove}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= InsertBefore && int(m) < len(modeInfo)
}

// Directive returns the single-character mode directive passed to the editor.
func (m Mode) Directive() string {
	if !m.Valid() {
		return ""
	}
	return string(modeInfo[m].directive)
}

func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeInfo[m].name
}

// ModeFromKey returns the mode bound to a vi-style entry key.
func ModeFromKey(r rune) (Mode, bool) {
	for _, m := range Modes() {
		if modeInfo[m].directive == r {
			return m, true
		}
	}
	return 0, false
}
