package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/internal/navigator"
)

// SidebarScreen is the navigation menu opened over any page.
type SidebarScreen struct {
	form      *huh.Form
	route     navigator.Route
	done      bool
	cancelled bool
}

// NewSidebarScreen creates the menu with current preselected.
func NewSidebarScreen(current navigator.Route) *SidebarScreen {
	s := &SidebarScreen{route: current}

	var options []huh.Option[navigator.Route]
	for _, r := range navigator.SidebarRoutes() {
		options = append(options, huh.NewOption(r.String(), r))
	}
	options = append(options, huh.NewOption("Sign out", navigator.RouteLogin))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[navigator.Route]().
				Key("route").
				Title("Go to").
				Options(options...).
				Value(&s.route),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SidebarScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SidebarScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "esc" || km.String() == "ctrl+n") {
		s.cancelled = true
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		s.done = true
	}
	return s, cmd
}

// Done returns true when a route was picked
func (s *SidebarScreen) Done() bool {
	return s.done
}

// Cancelled returns true when the menu was closed without a pick
func (s *SidebarScreen) Cancelled() bool {
	return s.cancelled
}

// Route returns the picked route.
func (s *SidebarScreen) Route() navigator.Route {
	return s.route
}

var sidebarStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(1, 2)

// View implements tea.Model
func (s *SidebarScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		sidebarStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			components.TitleStyle.Render("🌸 SakuraMed"),
			s.form.View())),
		components.Footer("Enter: Go | Esc: Close"),
	)
}
