package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/internal/summary"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63")).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		MarginBottom(1)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	FooterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	buttonStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("236"))

	focusedButtonStyle = buttonStyle.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("63")).
		Bold(true)

	disabledButtonStyle = buttonStyle.
		Foreground(lipgloss.Color("240"))
)

// severityColors maps the report colors onto terminal colors.
var severityColors = map[summary.Color]lipgloss.Color{
	summary.ColorGreen:  lipgloss.Color("42"),
	summary.ColorYellow: lipgloss.Color("214"),
	summary.ColorRed:    lipgloss.Color("196"),
	summary.ColorGray:   lipgloss.Color("244"),
}

// TermColor returns the terminal color of a report color.
func TermColor(c summary.Color) lipgloss.Color {
	if tc, ok := severityColors[c]; ok {
		return tc
	}
	return severityColors[summary.ColorGray]
}

// Button renders a button label.
func Button(label string, focused, disabled bool) string {
	switch {
	case disabled:
		return disabledButtonStyle.Render(label)
	case focused:
		return focusedButtonStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

// Footer renders the key hints line.
func Footer(hints string) string {
	return FooterStyle.Render(hints)
}
