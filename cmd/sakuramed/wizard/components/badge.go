package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/internal/summary"
)

var badgeStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true).
	Foreground(lipgloss.Color("16"))

// Badge renders text on a colored pill.
func Badge(text string, color lipgloss.Color) string {
	return badgeStyle.Background(color).Render(text)
}

// SeverityBadge renders the badge of a finding severity.
func SeverityBadge(s summary.Severity) string {
	return Badge(s.String(), TermColor(summary.ColorOf(s)))
}

// AgeBadge renders the age pill of the patient overview.
func AgeBadge(age int, known bool) string {
	if !known {
		return Badge("Age unknown", TermColor(summary.ColorGray))
	}
	return Badge(fmt.Sprintf("%d years", age), lipgloss.Color("63"))
}
