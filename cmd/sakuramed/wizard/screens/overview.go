package screens

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/intake"
)

// OverviewScreen shows the patient record and the exam-type dialog that
// starts the exam.
type OverviewScreen struct {
	outcome
	env     types.Env
	patient intake.Patient
	data    *intake.Form

	dialogOpen bool
	form       *huh.Form
	examTypes  []string
	start      bool

	width  int
	height int
}

// NewOverviewScreen creates the patient overview. data is the exam-type form.
func NewOverviewScreen(env types.Env, patient intake.Patient, data *intake.Form) *OverviewScreen {
	return &OverviewScreen{env: env, patient: patient, data: data}
}

// DialogOpen reports whether the exam-type dialog is shown.
func (s *OverviewScreen) DialogOpen() bool {
	return s.dialogOpen
}

// Age returns the patient's age today. ok is false when it is unknown.
func (s *OverviewScreen) Age() (int, bool) {
	return s.patient.Age(s.env.Clock.Now())
}

func (s *OverviewScreen) openDialog() tea.Cmd {
	s.dialogOpen = true
	s.examTypes = s.data.Values(intake.FieldExamTypes)
	s.start = true

	spec, _ := s.data.Schema().Spec(intake.FieldExamTypes)
	options := make([]huh.Option[string], 0, len(spec.Options))
	for _, o := range spec.Options {
		options = append(options, huh.NewOption(o.Label, o.Value))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key(string(intake.FieldExamTypes)).
				Title("Select Exam Type *").
				Description("Choose at least one exam to start").
				Options(options...).
				Value(&s.examTypes).
				Validate(func(values []string) error {
					_ = s.data.SetSelected(intake.FieldExamTypes, values)
					if msg := s.data.CheckField(intake.FieldExamTypes); msg != "" {
						return errors.New(msg)
					}
					return nil
				}),
			huh.NewConfirm().
				Key("start").
				Title("Start the exam now?").
				Affirmative("Start Exam").
				Negative("Cancel").
				Value(&s.start),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s.form.Init()
}

// Init implements tea.Model
func (s *OverviewScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *OverviewScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.height = wsm.Height
	}

	if !s.dialogOpen {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "enter", "s":
				return s, s.openDialog()
			case "esc":
				s.finish(types.ActionBack)
			}
		}
		return s, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		s.dialogOpen = false
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	_ = s.data.SetSelected(intake.FieldExamTypes, s.examTypes)

	if s.form.State == huh.StateCompleted {
		s.dialogOpen = false
		if s.start && s.data.Complete() {
			s.finish(types.ActionAdvance)
		}
	}

	return s, cmd
}

var (
	overviewPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		MarginRight(1)

	dialogStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)
)

// View implements tea.Model
func (s *OverviewScreen) View() string {
	p := s.patient
	title := components.TitleStyle.Render("Patient Overview")
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		components.ValueStyle.Render(p.FullName()),
		"  ",
		components.AgeBadge(s.Age()),
		"  ",
		components.LabelStyle.Render(p.MRN))

	if s.dialogOpen {
		start := components.Button("Start Exam", false, !s.data.Complete())
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			header,
			"",
			dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, s.form.View(), "", start)),
			"",
			components.Footer("Space: Toggle | Enter: Submit | Esc: Close"),
		)
	}

	demographics := overviewPanelStyle.Render(strings.Join([]string{
		components.TitleStyle.Render("Demographics"),
		row("Date of Birth", p.DateOfBirth),
		row("Gender", p.Gender),
		row("Home Phone", p.HomePhone),
		row("Cell Phone", p.CellPhone),
		row("Reason for Visit", p.ReasonForVisit),
	}, "\n"))

	history := overviewPanelStyle.Render(strings.Join([]string{
		components.TitleStyle.Render("Medical History"),
		row("Birth Control", p.BirthControl),
		row("Menstrual Cycle", p.MenstrualCycle),
		row("Visit Type", strings.Join(p.VisitTypes, ", ")),
		row("Allergies", strings.Join(p.Allergies, ", ")),
		row("Medications", strings.Join(p.Medications, ", ")),
		row("Notes", p.AdditionalNotes),
	}, "\n"))

	visits := []string{components.TitleStyle.Render("Recent Visits")}
	for _, v := range p.RecentVisits {
		visits = append(visits, row(v.Kind, v.Date))
	}
	visits = append(visits, row("Images on file", fmt.Sprintf("%d", p.Images)))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, demographics, history),
		overviewPanelStyle.Render(strings.Join(visits, "\n")),
		"",
		components.Button("Start Exam", true, false),
		"",
		components.Footer("Enter: Start Exam | Esc: Back | ctrl+n: Navigate"),
	)
}

func row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return components.LabelStyle.Render(label+": ") + components.ValueStyle.Render(value)
}
