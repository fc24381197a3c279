package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	surfaceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			MarginTop(1)
)

// renderView frames the raw surface text and appends the status line and
// the help footer.
func renderView(surface, status, helpView string) string {
	var sb strings.Builder
	sb.WriteString(surfaceStyle.Render(strings.TrimRight(surface, "\n")))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(status))
	sb.WriteString("\n")
	sb.WriteString(helpView)
	sb.WriteString("\n")
	return sb.String()
}
