package editsession

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Template placeholders.
const (
	PlaceholderLine   = "{line}"
	PlaceholderColumn = "{col}"
	PlaceholderMode   = "{mode}"
	PlaceholderFile   = "{file}"
)

// DefaultCommand opens vim at the target position and enters insert mode after
// replaying the mode key.
const DefaultCommand = `vim "+normal {line}G{col}|{mode}" +startinsert {file}`

// ErrEmptyTemplate is returned for a command with no words.
var ErrEmptyTemplate = errors.New("editor command is empty")

// Target is where the editor should open: 1-based line and column.
type Target struct {
	Line   int
	Column int
	Mode   Mode
	Path   string
}

// Template is a parsed editor command line.
//
// Words are split with shell quoting rules but never run through a shell, so
// the substituted path is passed to the editor as a single argument.
type Template struct {
	raw     string
	words   []string
	hasFile bool
}

// ParseTemplate splits an editor command into words.
func ParseTemplate(command string) (Template, error) {
	words, err := shlex.Split(command)
	if err != nil {
		return Template{}, fmt.Errorf("parse editor command %q: %w", command, err)
	}
	if len(words) == 0 {
		return Template{}, ErrEmptyTemplate
	}
	return Template{
		raw:     command,
		words:   words,
		hasFile: slices.ContainsFunc(words, func(w string) bool { return strings.Contains(w, PlaceholderFile) }),
	}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(command string) Template {
	t, err := ParseTemplate(command)
	if err != nil {
		panic(err)
	}
	return t
}

// Build substitutes target into the template and returns the argv.
// The path is appended when the template has no {file} placeholder.
func (t Template) Build(target Target) []string {
	r := strings.NewReplacer(
		PlaceholderLine, strconv.Itoa(target.Line),
		PlaceholderColumn, strconv.Itoa(target.Column),
		PlaceholderMode, target.Mode.Directive(),
		PlaceholderFile, target.Path,
	)
	argv := make([]string, 0, len(t.words)+1)
	for _, w := range t.words {
		argv = append(argv, r.Replace(w))
	}
	if !t.hasFile {
		argv = append(argv, target.Path)
	}
	return argv
}

// Missing returns the cursor placeholders ({line}, {col}, {mode}) the
// template never uses, so the editor does not receive them.
func (t Template) Missing() []string {
	var missing []string
	for _, p := range []string{PlaceholderLine, PlaceholderColumn, PlaceholderMode} {
		if !slices.ContainsFunc(t.words, func(w string) bool { return strings.Contains(w, p) }) {
			missing = append(missing, p)
		}
	}
	return missing
}

// IsZero reports whether t was never parsed.
func (t Template) IsZero() bool {
	return len(t.words) == 0
}

func (t Template) String() string {
	return t.raw
}
