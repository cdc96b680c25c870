package config

import (
	"errors"
	"fmt"

	"github.com/dshills/padview/internal/integration/editsession"
	"github.com/dshills/padview/internal/logging"
	"github.com/dshills/padview/internal/renderer/core"
)

// Defaults.
const (
	DefaultFile     = "README.md"
	DefaultLogLevel = "info"
	DefaultTabWidth = 8
	MaxTabWidth     = 32
)

// Config holds every viewer setting.
type Config struct {
	// File is the target file to view and edit.
	File string `toml:"file" yaml:"file"`

	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`

	// Watch reloads the file when it changes outside the viewer.
	Watch bool `toml:"watch" yaml:"watch"`
}

// EditorConfig configures the external editor.
type EditorConfig struct {
	// Command is the editor command template with {line}, {col}, {mode} and
	// {file} placeholders. Empty means derive it from $VISUAL or $EDITOR.
	Command string `toml:"command" yaml:"command"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log lines. Empty discards them.
	File string `toml:"file" yaml:"file"`
}

// UIConfig configures the screen.
type UIConfig struct {
	// StatusForeground and StatusBackground are "#rrggbb" or "default".
	// With both default the status line is drawn in reverse video.
	StatusForeground string `toml:"status_foreground" yaml:"status_foreground"`
	StatusBackground string `toml:"status_background" yaml:"status_background"`
	TabWidth         int    `toml:"tab_width" yaml:"tab_width"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		File: DefaultFile,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		UI: UIConfig{
			StatusForeground: "default",
			StatusBackground: "default",
			TabWidth:         DefaultTabWidth,
		},
	}
}

// Validate checks every setting and reports all failures at once.
func (c Config) Validate() error {
	var errs []error
	add := func(key, msg string, value any) {
		errs = append(errs, &ValidationError{Key: key, Message: msg, Value: value})
	}

	if c.File == "" {
		add("file", "must not be empty", c.File)
	}
	if c.Editor.Command != "" {
		if _, err := editsession.ParseTemplate(c.Editor.Command); err != nil {
			add("editor.command", err.Error(), c.Editor.Command)
		}
	}
	if !logging.ValidLevel(c.Log.Level) {
		add("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.UI.TabWidth < 1 || c.UI.TabWidth > MaxTabWidth {
		add("ui.tab_width", fmt.Sprintf("must be between 1 and %d", MaxTabWidth), c.UI.TabWidth)
	}
	if _, err := core.ColorFromHex(c.UI.StatusForeground); err != nil {
		add("ui.status_foreground", err.Error(), c.UI.StatusForeground)
	}
	if _, err := core.ColorFromHex(c.UI.StatusBackground); err != nil {
		add("ui.status_background", err.Error(), c.UI.StatusBackground)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// EditorTemplate parses the editor command. An empty command means the
// default vim template.
func (c Config) EditorTemplate() (editsession.Template, error) {
	if c.Editor.Command == "" {
		return editsession.ParseTemplate(editsession.DefaultCommand)
	}
	return editsession.ParseTemplate(c.Editor.Command)
}

// StatusStyle returns the status line style. Invalid colors fall back to the
// terminal default; call Validate first to report them.
func (c Config) StatusStyle() core.Style {
	fg, _ := core.ColorFromHex(c.UI.StatusForeground)
	bg, _ := core.ColorFromHex(c.UI.StatusBackground)
	if fg.IsDefault() && bg.IsDefault() {
		return core.DefaultStyle().Reverse()
	}
	return core.DefaultStyle().WithForeground(fg).WithBackground(bg)
}
