package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/padview/internal/input/keymap"
)

func newKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List key bindings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			heading := lipgloss.NewStyle()
			key := lipgloss.NewStyle()
			if IsColorEnabled(out) {
				heading = heading.Foreground(lipgloss.Color("11")).Bold(true)
				key = key.Foreground(lipgloss.Color("12"))
			}

			names, groups := keymap.Default().Categories()
			for i, name := range names {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				_, _ = fmt.Fprintln(out, heading.Render(name))
				for _, b := range groups[name] {
					pad := strings.Repeat(" ", max(0, 8-len(b.Keys)))
					_, _ = fmt.Fprintf(out, "  %s%s%s\n", key.Render(b.Keys), pad, b.Description)
				}
			}
		},
	}
}
