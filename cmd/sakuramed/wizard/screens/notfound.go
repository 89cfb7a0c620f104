package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
)

// NotFoundScreen is shown for unknown routes.
type NotFoundScreen struct {
	outcome
	path string
}

// NewNotFoundScreen creates the page shown for path.
func NewNotFoundScreen(path string) *NotFoundScreen {
	return &NotFoundScreen{path: path}
}

// Init implements tea.Model
func (s *NotFoundScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *NotFoundScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc":
			s.finish(types.ActionHome)
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *NotFoundScreen) View() string {
	body := "Oops! Page not found"
	if s.path != "" {
		body += ": " + s.path
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("404"),
		components.SubtitleStyle.Render(body),
		components.Button("Return to Home", true, false),
		"",
		components.Footer("Enter: Home | ctrl+n: Navigate"),
	)
}
