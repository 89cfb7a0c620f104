package components

import "github.com/charmbracelet/lipgloss"

var toastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("214")).
	Foreground(lipgloss.Color("252")).
	Padding(0, 2)

// Toast renders a notification, or "" when text is empty.
func Toast(text string) string {
	if text == "" {
		return ""
	}
	return toastStyle.Render("🔔 " + text)
}
