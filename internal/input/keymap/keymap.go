package keymap

import (
	"slices"

	"github.com/samber/lo"

	"github.com/dshills/padview/internal/integration/editsession"
	"github.com/dshills/padview/internal/renderer/backend"
)

// Keymap resolves key events to bindings.
type Keymap struct {
	runes map[rune]Binding
	keys  map[backend.Key]Binding

	// order keeps display order for Bindings.
	order []Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{
		runes: make(map[rune]Binding),
		keys:  make(map[backend.Key]Binding),
	}
}

// BindRune binds a printable key.
func (k *Keymap) BindRune(r rune, b Binding) *Keymap {
	if b.Keys == "" {
		b.Keys = string(r)
	}
	k.runes[r] = b
	k.order = append(k.order, b)
	return k
}

// BindKey binds a special key.
func (k *Keymap) BindKey(key backend.Key, name string, b Binding) *Keymap {
	if b.Keys == "" {
		b.Keys = name
	}
	k.keys[key] = b
	k.order = append(k.order, b)
	return k
}

// Lookup returns the binding for a key event. Alt and Meta chords have no
// binding, nor do Ctrl chords of printable keys.
func (k *Keymap) Lookup(ev backend.Event) (Binding, bool) {
	if ev.Type != backend.EventKey || ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModMeta) {
		return Binding{}, false
	}
	if ev.Key == backend.KeyRune {
		if ev.Mod.Has(backend.ModCtrl) {
			return Binding{}, false
		}
		b, ok := k.runes[ev.Rune]
		return b, ok
	}
	b, ok := k.keys[ev.Key]
	return b, ok
}

// Bindings returns every binding in the order it was added.
func (k *Keymap) Bindings() []Binding {
	return slices.Clone(k.order)
}

// Runes returns the bound printable keys, sorted.
func (k *Keymap) Runes() []rune {
	runes := lo.Keys(k.runes)
	slices.Sort(runes)
	return runes
}

// Categories returns bindings grouped by category, in first-seen order.
func (k *Keymap) Categories() ([]string, map[string][]Binding) {
	groups := lo.GroupBy(k.order, func(b Binding) string { return b.Category })
	names := lo.Uniq(lo.Map(k.order, func(b Binding, _ int) string { return b.Category }))
	return names, groups
}

// Default returns the viewer's key bindings.
func Default() *Keymap {
	k := New()

	move := func(a Action, desc string) Binding {
		return Binding{Action: a, Description: desc, Category: CategoryMovement}
	}
	k.BindRune('h', move(ActionMoveLeft, "Move left"))
	k.BindKey(backend.KeyLeft, "Left", move(ActionMoveLeft, "Move left"))
	k.BindRune('l', move(ActionMoveRight, "Move right"))
	k.BindKey(backend.KeyRight, "Right", move(ActionMoveRight, "Move right"))
	k.BindRune('j', move(ActionMoveDown, "Move down"))
	k.BindKey(backend.KeyDown, "Down", move(ActionMoveDown, "Move down"))
	k.BindRune('k', move(ActionMoveUp, "Move up"))
	k.BindKey(backend.KeyUp, "Up", move(ActionMoveUp, "Move up"))

	edit := func(m editsession.Mode, desc string) Binding {
		return Binding{Action: ActionEdit, Mode: m, Description: desc, Category: CategoryEdit}
	}
	k.BindRune('i', edit(editsession.InsertBefore, "Edit, insert before cursor"))
	k.BindRune('I', edit(editsession.InsertLineStart, "Edit, insert at line start"))
	k.BindRune('a', edit(editsession.InsertAfter, "Edit, append after cursor"))
	k.BindRune('A', edit(editsession.InsertLineEnd, "Edit, append at line end"))
	k.BindRune('o', edit(editsession.OpenLineBelow, "Edit, open line below"))
	k.BindRune('O', edit(editsession.OpenLineAbove, "Edit, open line above"))

	k.BindKey(backend.KeyCtrlL, "C-l", Binding{Action: ActionRedraw, Description: "Redraw screen", Category: CategoryView})
	k.BindRune('q', Binding{Action: ActionQuit, Description: "Quit", Category: CategoryView})

	return k
}
