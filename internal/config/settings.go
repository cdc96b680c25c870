package config

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// kind is the value type of a setting.
type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
)

// setting describes one key for the JSON and environment sources.
type setting struct {
	key  string // dotted path, also the gjson path
	env  string
	kind kind
	set  func(c *Config, v any)
}

var settings = []setting{
	{"file", "PADVIEW_FILE", kindString, func(c *Config, v any) { c.File = v.(string) }},
	{"editor.command", "PADVIEW_EDITOR", kindString, func(c *Config, v any) { c.Editor.Command = v.(string) }},
	{"log.level", "PADVIEW_LOG_LEVEL", kindString, func(c *Config, v any) { c.Log.Level = v.(string) }},
	{"log.file", "PADVIEW_LOG_FILE", kindString, func(c *Config, v any) { c.Log.File = v.(string) }},
	{"ui.status_foreground", "PADVIEW_STATUS_FOREGROUND", kindString, func(c *Config, v any) { c.UI.StatusForeground = v.(string) }},
	{"ui.status_background", "PADVIEW_STATUS_BACKGROUND", kindString, func(c *Config, v any) { c.UI.StatusBackground = v.(string) }},
	{"ui.tab_width", "PADVIEW_TAB_WIDTH", kindInt, func(c *Config, v any) { c.UI.TabWidth = v.(int) }},
	{"watch", "PADVIEW_WATCH", kindBool, func(c *Config, v any) { c.Watch = v.(bool) }},
}

// Keys returns every setting key.
func Keys() []string {
	return lo.Map(settings, func(s setting, _ int) string { return s.key })
}

// EnvVars returns every environment variable read by LoadEnv.
func EnvVars() []string {
	return lo.Map(settings, func(s setting, _ int) string { return s.env })
}

// parseString converts a raw string to the setting's kind.
func (s setting) parseString(raw string) (any, error) {
	switch s.kind {
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got %q", raw)
		}
		return b, nil
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}
