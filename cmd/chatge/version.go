package chatge

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/james-coso/chatge.ie/pkg/ui"
)

// Version information
const (
	Version = "1.0.0"
	Site    = "https://chatge.ie"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			labelStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Bold(true)

			valueStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

			linkStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Underline(true)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Logo())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Version:"), valueStyle.Render(Version))
			fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Site:"), linkStyle.Render(Site))
		},
	}
}
