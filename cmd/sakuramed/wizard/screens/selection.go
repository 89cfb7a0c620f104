package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/intake"
)

const (
	sourceManual  = "manual"
	sourceMyChart = "mychart"
	sourceImport  = "import"
)

// MsgMyChartUnavailable is the toast raised by the MyChart search placeholder.
const MsgMyChartUnavailable = "MyChart integration is not available yet"

// SelectionScreen lets the clinician pick how patient details are entered.
type SelectionScreen struct {
	outcome
	env      types.Env
	form     *huh.Form
	source   string
	imported *intake.Patient
	width    int
	height   int
}

// NewSelectionScreen creates the patient selection page. imported is the
// patient read from an imaging record, or nil.
func NewSelectionScreen(env types.Env, imported *intake.Patient) *SelectionScreen {
	s := &SelectionScreen{env: env, imported: imported}
	s.buildForm()
	return s
}

func (s *SelectionScreen) buildForm() {
	s.source = sourceManual
	options := []huh.Option[string]{
		huh.NewOption("Enter patient details manually", sourceManual),
		huh.NewOption("Search MyChart", sourceMyChart),
	}
	if s.imported != nil {
		s.source = sourceImport
		options = append([]huh.Option[string]{
			huh.NewOption("Use imported record: "+s.imported.FullName(), sourceImport),
		}, options...)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("source").
				Title("How would you like to find the patient?").
				Options(options...).
				Value(&s.source),
		),
	).WithShowHelp(false)
}

// UseImported reports whether the imported record was picked.
func (s *SelectionScreen) UseImported() bool {
	return s.imported != nil && s.source == sourceImport
}

// Init implements tea.Model
func (s *SelectionScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SelectionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.finish(types.ActionBack)
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		if s.source == sourceMyChart {
			s.buildForm()
			return s, tea.Batch(s.env.Notify(MsgMyChartUnavailable), s.form.Init())
		}
		s.finish(types.ActionAdvance)
	}

	return s, cmd
}

// View implements tea.Model
func (s *SelectionScreen) View() string {
	title := components.TitleStyle.Render("Patient Selection")
	subtitle := components.SubtitleStyle.Render("Find the patient in MyChart or enter their details by hand")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		s.form.View(),
		"",
		components.Footer("Enter: Select | Esc: Sign out | ctrl+n: Navigate"),
	)
}
