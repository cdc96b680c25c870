package config

import (
	"path/filepath"
	"strings"

	"github.com/dshills/padview/internal/integration/editsession"
)

// LoadEnv applies PADVIEW_* variables to cfg. Set but empty variables are
// ignored.
func LoadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, s := range settings {
		raw, ok := lookup(s.env)
		if !ok || raw == "" {
			continue
		}
		v, err := s.parseString(raw)
		if err != nil {
			return &ParseError{Path: "$" + s.env, Message: err.Error(), Err: err}
		}
		s.set(cfg, v)
	}
	return nil
}

// viFamily editors understand the default "+normal" positioning.
var viFamily = map[string]bool{
	"vi":        true,
	"vim":       true,
	"vim.basic": true,
	"nvim":      true,
	"gvim":      true,
}

// editorPositions holds the line and column arguments of editors without a
// mode directive. The template is appended to the editor command.
var editorPositions = map[string]string{
	"nano":        "+{line},{col} {file}",
	"emacs":       "+{line}:{col} {file}",
	"emacsclient": "+{line}:{col} {file}",
	"micro":       "+{line}:{col} {file}",
	"kak":         "+{line}:{col} {file}",
	"hx":          "{file}:{line}:{col}",
	"helix":       "{file}:{line}:{col}",
	"subl":        "{file}:{line}:{col}",
	"code":        "--goto {file}:{line}:{col}",
	"codium":      "--goto {file}:{line}:{col}",
}

// ResolveEditor fills an empty editor command from $VISUAL, then $EDITOR.
// Without either variable the default vim template is used.
func ResolveEditor(cfg *Config, lookup func(string) (string, bool)) {
	if cfg.Editor.Command != "" {
		return
	}
	editor := ""
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			editor = strings.TrimSpace(v)
			break
		}
	}
	cfg.Editor.Command = EditorCommandFor(editor)
}

// EditorCommandFor returns the template for an editor command such as
// "nvim" or "emacs -nw". vi-family editors get the full positioning template,
// known editors get their line and column syntax, and anything else is opened
// with "+{line}". Use editsession.Template.Missing to see what a template drops.
func EditorCommandFor(editor string) string {
	if editor == "" {
		return editsession.DefaultCommand
	}
	bin := editor
	if i := strings.IndexAny(editor, " \t"); i >= 0 {
		bin = editor[:i]
	}
	name := filepath.Base(bin)
	if viFamily[name] {
		return editor + ` "+normal {line}G{col}|{mode}" +startinsert {file}`
	}
	if pos, ok := editorPositions[name]; ok {
		return editor + " " + pos
	}
	return editor + " +{line} {file}"
}
