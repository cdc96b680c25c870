package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// AppName names the config directory.
const AppName = "padview"

// DefaultPath returns $XDG_CONFIG_HOME/padview/config.toml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file. It must exist.
	Path string

	// SkipDefaultPath disables reading DefaultPath when Path is empty.
	SkipDefaultPath bool

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds a Config from defaults, the config file and the environment.
// It returns the config file actually read, or "" if none was.
func Load(opts Options) (Config, string, error) {
	cfg := Default()
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	source := opts.Path
	required := source != ""
	if !required && !opts.SkipDefaultPath {
		if p, err := DefaultPath(); err == nil {
			source = p
		}
	}

	if source != "" {
		err := LoadFile(&cfg, source)
		switch {
		case err == nil:
		case !required && errors.Is(err, ErrFileNotFound):
			source = ""
		default:
			return cfg, source, err
		}
	}

	if err := LoadEnv(&cfg, lookup); err != nil {
		return cfg, source, err
	}
	ResolveEditor(&cfg, lookup)

	return cfg, source, nil
}

// LoadFile merges the file at path into cfg. Keys absent from the file keep
// their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(cfg, path, data)
}

// Decode merges data into cfg using the decoder for path's extension.
func Decode(cfg *Config, path string, data []byte) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return decodeTOML(cfg, path, data)
	case ".yaml", ".yml":
		return decodeYAML(cfg, path, data)
	case ".json":
		return decodeJSON(cfg, path, data)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeTOML(cfg *Config, path string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func decodeYAML(cfg *Config, path string, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty or comment-only document.
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// decodeJSON reads only the known keys; other keys are ignored.
func decodeJSON(cfg *Config, path string, data []byte) error {
	if !gjson.ValidBytes(data) {
		return &ParseError{Path: path, Message: "invalid JSON"}
	}
	for _, s := range settings {
		res := gjson.GetBytes(data, s.key)
		if !res.Exists() {
			continue
		}
		v, err := jsonValue(s, res)
		if err != nil {
			return &ParseError{Path: path, Message: fmt.Sprintf("%s: %v", s.key, err), Err: err}
		}
		s.set(cfg, v)
	}
	return nil
}

func jsonValue(s setting, res gjson.Result) (any, error) {
	switch s.kind {
	case kindBool:
		if !res.IsBool() {
			return nil, fmt.Errorf("expected a boolean, got %s", res.Raw)
		}
		return res.Bool(), nil
	case kindInt:
		if res.Type != gjson.Number || res.Num != float64(int(res.Num)) {
			return nil, fmt.Errorf("expected an integer, got %s", res.Raw)
		}
		return int(res.Int()), nil
	default:
		if res.Type != gjson.String {
			return nil, fmt.Errorf("expected a string, got %s", res.Raw)
		}
		return res.String(), nil
	}
}
