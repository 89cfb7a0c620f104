package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/exam"
)

var (
	guideDoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	guideAvoidStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))
)

// renderGuide renders the positioning checklist.
func renderGuide(g exam.Guide, width int) string {
	intro := lipgloss.NewStyle().Width(max(width-8, 40)).Render(g.Intro)

	var do, avoid []string
	do = append(do, components.ValueStyle.Render("Correct positioning"))
	for _, item := range g.Do {
		do = append(do, guideDoStyle.Render("✓ "+item))
	}
	avoid = append(avoid, components.ValueStyle.Render("Avoid"))
	for _, item := range g.Avoid {
		avoid = append(avoid, guideAvoidStyle.Render("✗ "+item))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(strings.Join(do, "\n")),
		strings.Join(avoid, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render(g.Title),
		intro,
		"",
		columns)
}

// PositioningScreen is the standalone positioning page of the route variant.
type PositioningScreen struct {
	outcome
	guide  exam.Guide
	width  int
	height int
}

// NewPositioningScreen creates the positioning page.
func NewPositioningScreen() *PositioningScreen {
	return &PositioningScreen{guide: exam.PositioningGuide(), width: 80}
}

// Init implements tea.Model
func (s *PositioningScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *PositioningScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			s.finish(types.ActionAdvance)
		case "esc":
			s.finish(types.ActionBack)
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *PositioningScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.PanelStyle.Render(renderGuide(s.guide, s.width)),
		"",
		components.Button("Continue to exam", true, false),
		"",
		components.Footer("Enter: Continue | Esc: Back | ctrl+n: Navigate"),
	)
}
