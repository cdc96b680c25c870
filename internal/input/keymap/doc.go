// Package keymap maps key events to viewer actions.
//
// Bindings are single keys without modifiers: vi movement letters and the
// arrow keys move the cursor, the vi insert keys start an edit session and q
// quits. Any other key has no binding and is ignored by the caller.
package keymap
