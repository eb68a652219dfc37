package report

import "github.com/charmbracelet/lipgloss"

// Lipgloss degrades these to what the terminal supports.
var (
	styleCyan   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleRed    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleGreen  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// render applies style when colors are enabled and returns text unchanged
// otherwise.
func render(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
