package screens

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/help"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/intake"
)

// keyContinue is the final confirmation of an intake step.
const keyContinue = "continue"

// IntakeScreen renders an intake form (patient info or medical history)
// with huh, one group per run of fields. A field offering "Other" is
// followed by a group holding its companion input, hidden while "Other"
// is not selected.
type IntakeScreen struct {
	outcome
	env       types.Env
	title     string
	subtitle  string
	data      *intake.Form
	form      *huh.Form
	helpPanel *components.HelpPanel

	values  map[intake.Field]*string
	multi   map[intake.Field]*[]string
	other   map[intake.Field]*string
	proceed bool

	width  int
	height int
}

// NewPatientInfoScreen creates step 1 of patient intake.
func NewPatientInfoScreen(env types.Env, data *intake.Form) *IntakeScreen {
	return newIntakeScreen(env, data, "Patient Information", "Step 1 of 2: demographics and reason for visit")
}

// NewMedicalHistoryScreen creates step 2 of patient intake.
func NewMedicalHistoryScreen(env types.Env, data *intake.Form) *IntakeScreen {
	return newIntakeScreen(env, data, "Medical History", "Step 2 of 2: history, allergies and medications")
}

func newIntakeScreen(env types.Env, data *intake.Form, title, subtitle string) *IntakeScreen {
	s := &IntakeScreen{
		env:       env,
		title:     title,
		subtitle:  subtitle,
		data:      data,
		helpPanel: components.NewHelpPanel(),
		values:    make(map[intake.Field]*string),
		multi:     make(map[intake.Field]*[]string),
		other:     make(map[intake.Field]*string),
		proceed:   true,
	}
	s.buildForm()
	return s
}

func (s *IntakeScreen) buildForm() {
	var groups []*huh.Group
	var fields []huh.Field

	flush := func() {
		if len(fields) > 0 {
			groups = append(groups, huh.NewGroup(fields...))
			fields = nil
		}
	}

	for _, spec := range s.data.Schema().Fields {
		fields = append(fields, s.field(spec))
		if spec.HasOther() {
			flush()
			groups = append(groups, s.otherGroup(spec))
		}
	}

	fields = append(fields,
		huh.NewConfirm().
			Key(keyContinue).
			Title("Continue?").
			Affirmative("Continue").
			Negative("Back").
			Value(&s.proceed))
	flush()

	s.form = huh.NewForm(groups...).
		WithShowHelp(false).
		WithShowErrors(true)
}

func (s *IntakeScreen) field(spec intake.FieldSpec) huh.Field {
	title := spec.Label
	if spec.Required {
		title += " *"
	}
	name := spec.Name

	switch spec.Kind {
	case intake.KindChoice:
		v := s.data.Value(name)
		s.values[name] = &v
		options := []huh.Option[string]{huh.NewOption("Select an option", "")}
		for _, o := range spec.Options {
			label := o.Label
			if o.Group != "" {
				label = o.Group + ": " + o.Label
			}
			options = append(options, huh.NewOption(label, o.Value))
		}
		return huh.NewSelect[string]().
			Key(string(name)).
			Title(title).
			Options(options...).
			Value(&v).
			Validate(func(value string) error {
				_ = s.data.SetField(name, value)
				return s.check(name)
			})

	case intake.KindMulti:
		vs := s.data.Values(name)
		s.multi[name] = &vs
		options := make([]huh.Option[string], 0, len(spec.Options))
		for _, o := range spec.Options {
			options = append(options, huh.NewOption(o.Label, o.Value))
		}
		return huh.NewMultiSelect[string]().
			Key(string(name)).
			Title(title).
			Options(options...).
			Value(&vs).
			Validate(func(values []string) error {
				_ = s.data.SetSelected(name, values)
				return s.check(name)
			})

	default:
		v := s.data.Value(name)
		s.values[name] = &v
		input := huh.NewInput().
			Key(string(name)).
			Title(title).
			Placeholder(spec.Placeholder).
			Value(&v).
			Validate(func(value string) error {
				_ = s.data.SetField(name, value)
				return s.check(name)
			})
		if spec.Kind == intake.KindDate {
			input.Description(intake.DateLayoutHint)
		}
		return input
	}
}

func (s *IntakeScreen) otherGroup(spec intake.FieldSpec) *huh.Group {
	name := spec.Name
	text := ""
	if sel, ok := s.data.Selection(name); ok {
		text = sel.OtherText()
	}
	s.other[name] = &text

	return huh.NewGroup(
		huh.NewInput().
			Key(string(name)+help.OtherSuffix).
			Title(spec.Label+" (Other)").
			Placeholder("Please specify").
			Value(&text).
			Validate(func(value string) error {
				_ = s.data.SetOtherText(name, value)
				return nil
			}),
	).WithHideFunc(func() bool {
		return !s.data.OtherEnabled(name)
	})
}

func (s *IntakeScreen) check(name intake.Field) error {
	if msg := s.data.CheckField(name); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// sync copies the bound values into the intake form so that completeness
// and the "Other" toggles follow the inputs as they are edited.
func (s *IntakeScreen) sync() {
	for name, v := range s.values {
		if s.data.Value(name) != *v {
			_ = s.data.SetField(name, *v)
		}
	}
	for name, vs := range s.multi {
		_ = s.data.SetSelected(name, *vs)
	}
	for name, t := range s.other {
		if s.data.OtherEnabled(name) {
			_ = s.data.SetOtherText(name, *t)
		}
	}
}

// Init implements tea.Model
func (s *IntakeScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *IntakeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.finish(types.ActionBack)
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/2, msg.Height-10)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	s.sync()

	if field := s.form.GetFocusedField(); field != nil {
		s.helpPanel.SetField(field.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		if !s.proceed {
			s.finish(types.ActionBack)
			return s, nil
		}
		if !s.data.Complete() {
			s.data.Validate()
			s.proceed = true
			s.buildForm()
			return s, s.form.Init()
		}
		s.finish(types.ActionAdvance)
	}

	return s, cmd
}

// View implements tea.Model
func (s *IntakeScreen) View() string {
	title := components.TitleStyle.Render(s.title)
	subtitle := components.SubtitleStyle.Render(s.subtitle)

	status := components.Button("Continue", false, false)
	if missing := s.data.Missing(); len(missing) > 0 {
		status = lipgloss.JoinHorizontal(lipgloss.Center,
			components.Button("Continue", false, true),
			"  ",
			components.ErrorStyle.Render(fmt.Sprintf("Required: %s", strings.Join(missing, ", "))))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		s.form.View(),
		"",
		status,
		"",
		s.helpPanel.View(),
		"",
		components.Footer("Tab: Next field | Enter: Submit | Esc: Back | ctrl+n: Navigate"),
	)
}
