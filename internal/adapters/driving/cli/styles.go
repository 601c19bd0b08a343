package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Output styles shared by the commands.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	answerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// renderTags joins tags into one styled, space-separated line.
func renderTags(tags []string) string {
	if len(tags) == 0 {
		return mutedStyle.Render("(no tags)")
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = tagStyle.Render("#" + tag)
	}
	return strings.Join(parts, " ")
}

// printWarnings prints degradation warnings beneath a command's output.
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, warning := range warnings {
		cmd.Println(warnStyle.Render("warning: " + warning))
	}
}
