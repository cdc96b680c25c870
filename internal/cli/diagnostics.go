package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/dshills/padview/internal/engine/document"
)

// DiagnosticStyles styles fatal error output.
type DiagnosticStyles struct {
	Prefix lipgloss.Style
	Path   lipgloss.Style
	Detail lipgloss.Style
}

// NewDiagnosticStyles returns colored styles, or plain ones when color is off.
func NewDiagnosticStyles(colorEnabled bool) DiagnosticStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return DiagnosticStyles{Prefix: plain, Path: plain, Detail: plain}
	}
	return DiagnosticStyles{
		Prefix: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Detail: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// IsColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func IsColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// PrintError writes a one-line diagnostic for err. File errors name the path
// and the underlying OS error separately.
func PrintError(w io.Writer, err error, styles DiagnosticStyles) {
	prefix := styles.Prefix.Render("padview:")

	var foe *document.FileOpenError
	if errors.As(err, &foe) {
		action := "cannot read"
		if foe.Op == document.OpSave {
			action = "cannot write"
		}
		_, _ = fmt.Fprintf(w, "%s %s %s: %s\n",
			prefix, action, styles.Path.Render(foe.Path), styles.Detail.Render(causeOf(foe.Err)))
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", prefix, err)
}

// causeOf strips the *fs.PathError wrapper, whose path is already printed.
func causeOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
