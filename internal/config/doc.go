// Package config loads viewer settings.
//
// Settings are layered, lowest precedence first:
//
//  1. built-in defaults (Default)
//  2. a config file: TOML, YAML or JSON by extension
//  3. PADVIEW_* environment variables
//  4. command-line flags, applied by the caller
//
// When no editor command is set by any layer, $VISUAL, then $EDITOR, then vim
// names the editor.
//
// Example config.toml:
//
//	file = "notes.txt"
//	watch = true
//
//	[editor]
//	command = 'nvim "+normal {line}G{col}|{mode}" +startinsert {file}'
//
//	[log]
//	level = "debug"
//	file = "/tmp/padview.log"
//
//	[ui]
//	status_foreground = "#1d2021"
//	status_background = "#a89984"
//	tab_width = 4
package config
