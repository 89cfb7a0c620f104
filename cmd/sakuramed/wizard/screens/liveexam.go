package screens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/exam"
)

// Messages raised by the live exam.
const (
	MsgBiopsyNotTaken = `Turn on "Biopsy taken" before recording a sample`
	MsgDiagnosisSaved = "Diagnosis saved"
)

type examKeyMap struct {
	Settings   key.Binding
	SliderUp   key.Binding
	SliderDown key.Binding
	Decrease   key.Binding
	Increase   key.Binding
	Mode       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	AI         key.Binding
	Guide      key.Binding
	Tool       key.Binding
	NextType   key.Binding
	PrevType   key.Binding
	OpacityUp  key.Binding
	OpacityDn  key.Binding
	Biopsy     key.Binding
	Edit       key.Binding
	Complete   key.Binding
	Back       key.Binding
}

var examKeys = examKeyMap{
	Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
	SliderUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev slider")),
	SliderDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next slider")),
	Decrease:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
	Increase:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
	Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "camera mode")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	AI:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AI suggestions")),
	Guide:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "positioning guide")),
	Tool:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "shape tool")),
	NextType:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next type")),
	PrevType:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev type")),
	OpacityUp:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "opacity")),
	OpacityDn:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "opacity")),
	Biopsy:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "biopsy taken")),
	Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete exam")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// ShortHelp implements help.KeyMap
func (k examKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Settings, k.NextTab, k.AI, k.Guide, k.Edit, k.Complete, k.Back}
}

// FullHelp implements help.KeyMap
func (k examKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Settings, k.SliderUp, k.SliderDown, k.Decrease, k.Increase, k.Mode},
		{k.NextTab, k.PrevTab, k.AI, k.Guide},
		{k.Tool, k.NextType, k.PrevType, k.OpacityUp, k.OpacityDn, k.Biopsy},
		{k.Edit, k.Complete, k.Back},
	}
}

// LiveExamScreen is the imaging page with its camera settings, annotation,
// biopsy and diagnosis tabs.
type LiveExamScreen struct {
	outcome
	env    types.Env
	state  *exam.ViewState
	header exam.PatientHeader

	slider int

	labelInput textinput.Model
	labeling   bool
	form       *huh.Form
	record     bool

	bar  progress.Model
	help help.Model

	width  int
	height int
}

// NewLiveExamScreen creates the live exam over state.
func NewLiveExamScreen(env types.Env, state *exam.ViewState) *LiveExamScreen {
	ti := textinput.New()
	ti.Placeholder = "Annotation label"
	ti.CharLimit = 80
	ti.Width = 30

	return &LiveExamScreen{
		env:        env,
		state:      state,
		header:     exam.MockPatientHeader(),
		labelInput: ti,
		bar:        progress.New(progress.WithSolidFill("63"), progress.WithWidth(24), progress.WithoutPercentage()),
		help:       help.New(),
	}
}

// State returns the exam state driven by the screen.
func (s *LiveExamScreen) State() *exam.ViewState {
	return s.state
}

// Editing reports whether keys go to an inline form.
func (s *LiveExamScreen) Editing() bool {
	return s.labeling || s.form != nil
}

// Init implements tea.Model
func (s *LiveExamScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *LiveExamScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = wsm.Width
		s.height = wsm.Height
		s.help.Width = wsm.Width
	}

	switch {
	case s.state.PositioningOpen():
		return s.updateModal(msg)
	case s.labeling:
		return s.updateLabel(msg)
	case s.form != nil:
		return s.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	v := s.state
	switch {
	case key.Matches(km, examKeys.Back):
		s.finish(types.ActionBack)
	case key.Matches(km, examKeys.Complete):
		s.finish(types.ActionAdvance)
	case key.Matches(km, examKeys.Settings):
		v.ToggleSettings()
	case key.Matches(km, examKeys.NextTab):
		v.SetTab(v.Tab().Next())
	case key.Matches(km, examKeys.PrevTab):
		v.SetTab(v.Tab().Prev())
	case key.Matches(km, examKeys.AI):
		v.ToggleAISuggestions()
	case key.Matches(km, examKeys.Guide):
		v.ShowPositioning()
	case v.SettingsOpen() && s.updateSettings(km):
	default:
		return s, s.updateTab(km)
	}
	return s, nil
}

func (s *LiveExamScreen) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter", "esc", "g":
			s.state.DismissPositioning()
		}
	}
	return s, nil
}

// updateSettings handles the keys of the open settings panel and reports
// whether km was one of them.
func (s *LiveExamScreen) updateSettings(km tea.KeyMsg) bool {
	sliders := s.state.Settings.Sliders()
	switch {
	case key.Matches(km, examKeys.SliderUp):
		s.slider = (s.slider + len(sliders) - 1) % len(sliders)
	case key.Matches(km, examKeys.SliderDown):
		s.slider = (s.slider + 1) % len(sliders)
	case key.Matches(km, examKeys.Decrease):
		sliders[s.slider].Decrement()
	case key.Matches(km, examKeys.Increase):
		sliders[s.slider].Increment()
	case key.Matches(km, examKeys.Mode):
		modes := exam.CameraModes()
		s.state.Settings.Mode = modes[(int(s.state.Settings.Mode)+1)%len(modes)]
	default:
		return false
	}
	return true
}

func (s *LiveExamScreen) updateTab(km tea.KeyMsg) tea.Cmd {
	v := s.state
	switch v.Tab() {
	case exam.TabAnnotate:
		switch {
		case key.Matches(km, examKeys.Tool):
			v.SetTool(v.Tool().Next())
		case key.Matches(km, examKeys.NextType):
			v.SetAnnotationType(cycle(exam.AnnotationTypes, v.AnnotationType(), 1))
		case key.Matches(km, examKeys.PrevType):
			v.SetAnnotationType(cycle(exam.AnnotationTypes, v.AnnotationType(), -1))
		case key.Matches(km, examKeys.OpacityUp):
			v.Opacity.Increment()
		case key.Matches(km, examKeys.OpacityDn):
			v.Opacity.Decrement()
		case key.Matches(km, examKeys.Edit):
			s.labeling = true
			s.labelInput.SetValue("")
			return s.labelInput.Focus()
		}
	case exam.TabBiopsy:
		switch {
		case key.Matches(km, examKeys.Biopsy):
			v.SetBiopsyTaken(!v.BiopsyTaken())
		case key.Matches(km, examKeys.Edit):
			return s.openBiopsyForm()
		}
	case exam.TabDiagnosis:
		if key.Matches(km, examKeys.Edit) {
			return s.openDiagnosisForm()
		}
	}
	return nil
}

func (s *LiveExamScreen) updateLabel(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			s.labeling = false
			s.labelInput.Blur()
			return s, nil
		case "enter":
			s.labeling = false
			s.labelInput.Blur()
			rec := s.state.AddAnnotation(s.labelInput.Value())
			return s, s.env.Notify(fmt.Sprintf("%s annotation added at %s", rec.Type, rec.Clock()))
		}
	}
	var cmd tea.Cmd
	s.labelInput, cmd = s.labelInput.Update(msg)
	return s, cmd
}

func (s *LiveExamScreen) openBiopsyForm() tea.Cmd {
	s.record = true
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("biopsySite").
				Title("Biopsy Site *").
				Options(stringOptions("Select site", exam.BiopsySites)...).
				Value(&s.state.Biopsy.Site),
			huh.NewSelect[string]().
				Key("biopsyMethod").
				Title("Biopsy Method *").
				Options(stringOptions("Select method", exam.BiopsyMethods)...).
				Value(&s.state.Biopsy.Method),
			huh.NewSelect[string]().
				Key("hemostasis").
				Title("Hemostasis Method *").
				Options(stringOptions("Select method", exam.HemostasisMethods)...).
				Value(&s.state.Biopsy.Hemostasis),
			huh.NewText().
				Key("observations").
				Title("Observations").
				Value(&s.state.Biopsy.Observations),
			huh.NewConfirm().
				Key("record").
				Title("Record this biopsy?").
				Affirmative("Record Biopsy").
				Negative("Cancel").
				Value(&s.record),
		),
	).WithShowHelp(false)
	return s.form.Init()
}

func (s *LiveExamScreen) openDiagnosisForm() tea.Cmd {
	s.record = true
	d := &s.state.Diagnosis
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("hpvStatus").
				Title("HPV Status").
				Options(choiceOptions(exam.HPVStatuses)...).
				Value(&d.HPVStatus),
			huh.NewSelect[string]().
				Key("severity").
				Title("Severity").
				Options(choiceOptions(exam.SeverityLevels)...).
				Value(&d.Severity),
			huh.NewSelect[string]().
				Key("followUp").
				Title("Follow-up Plan").
				Options(choiceOptions(exam.FollowUpPlans)...).
				Value(&d.FollowUp),
			huh.NewText().
				Key("diagnosisNotes").
				Title("Notes").
				Value(&d.Notes),
			huh.NewConfirm().
				Key("record").
				Title("Save diagnosis?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&s.record),
		),
	).WithShowHelp(false)
	return s.form.Init()
}

func (s *LiveExamScreen) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State != huh.StateCompleted {
		return s, cmd
	}

	s.form = nil
	if !s.record {
		return s, nil
	}
	if s.state.Tab() == exam.TabDiagnosis {
		return s, s.env.Notify(MsgDiagnosisSaved)
	}
	return s, s.recordBiopsy()
}

func (s *LiveExamScreen) recordBiopsy() tea.Cmd {
	_, err := s.state.RecordBiopsy()
	if errors.Is(err, exam.ErrBiopsyNotTaken) {
		return s.env.Notify(MsgBiopsyNotTaken)
	}
	text := "Biopsy recorded: " + exam.BiopsyCountLabel(s.state.BiopsyCount())
	if missing := exam.MissingBiopsyFields(s.state.Biopsy); len(missing) > 0 {
		text += " (missing " + strings.Join(missing, ", ") + ")"
	}
	return s.env.Notify(text)
}

func stringOptions(prompt string, values []string) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption(prompt, "")}
	for _, v := range values {
		options = append(options, huh.NewOption(v, v))
	}
	return options
}

func choiceOptions(choices []exam.Choice) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Select...", "")}
	for _, c := range choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}
	return options
}

// cycle returns the value d steps away from current in values, wrapping.
func cycle(values []string, current string, d int) string {
	for i, v := range values {
		if v == current {
			return values[(i+d+len(values))%len(values)]
		}
	}
	return values[0]
}

var (
	viewportStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(44).
		Height(12).
		Align(lipgloss.Center, lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color("244"))

	activeTabStyle = tabStyle.
		Foreground(lipgloss.Color("63")).
		Underline(true).
		Bold(true)

	sidePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Width(46)

	selectedSliderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)
)

// View implements tea.Model
func (s *LiveExamScreen) View() string {
	h := s.header
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		components.ValueStyle.Render(h.Name),
		"  ",
		components.LabelStyle.Render(fmt.Sprintf("DOB %s | %s | %s | Allergies: %s", h.DOB, h.MRN, h.Reason, h.Allergies)))

	if s.state.PositioningOpen() {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			components.PanelStyle.Render(renderGuide(exam.PositioningGuide(), 80)),
			"",
			components.Button("I've positioned the cervix", true, false),
			"",
			components.Footer("Enter: Begin exam"),
		)
	}

	left := []string{s.viewport()}
	if s.state.SettingsOpen() {
		left = append(left, s.settingsPanel())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		" ",
		s.tabPanel())

	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Live Exam"),
		header,
		"",
		body,
		"",
		s.help.View(examKeys),
	)
}

func (s *LiveExamScreen) viewport() string {
	v := s.state
	lines := []string{
		components.ValueStyle.Render("📷 " + v.Settings.Mode.Label()),
		components.LabelStyle.Render(v.Settings.Zoom.Label()),
		"",
		fmt.Sprintf("%d annotation(s)", v.AnnotationCount()),
	}
	if v.AISuggestions() {
		lines = append(lines, "", guideDoStyle.Render("AI: possible acetowhite area at 6 o'clock"))
	}
	return viewportStyle.Render(strings.Join(lines, "\n"))
}

func (s *LiveExamScreen) settingsPanel() string {
	rows := []string{components.TitleStyle.Render("Camera Settings")}
	for i, sl := range s.state.Settings.Sliders() {
		label := sl.Label()
		if i == s.slider {
			label = selectedSliderStyle.Render("› " + label)
		} else {
			label = "  " + label
		}
		rows = append(rows, label, "  "+s.bar.ViewAs(sl.Fraction()))
	}
	rows = append(rows, "", components.LabelStyle.Render("Mode: ")+s.state.Settings.Mode.Label())
	return sidePanelStyle.Render(strings.Join(rows, "\n"))
}

func (s *LiveExamScreen) tabPanel() string {
	var tabs []string
	for _, t := range exam.Tabs() {
		if t == s.state.Tab() {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}

	var content string
	switch s.state.Tab() {
	case exam.TabAnnotate:
		content = s.annotateTab()
	case exam.TabBiopsy:
		content = s.biopsyTab()
	case exam.TabDiagnosis:
		content = s.diagnosisTab()
	}

	return sidePanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		content))
}

func (s *LiveExamScreen) annotateTab() string {
	v := s.state
	rows := []string{
		row("Type", v.AnnotationType()),
		row("Tool", v.Tool().String()),
		v.Opacity.Label(),
		s.bar.ViewAs(v.Opacity.Fraction()),
	}
	if s.labeling {
		rows = append(rows, "", s.labelInput.View())
	}

	rows = append(rows, "", components.ValueStyle.Render("This exam"))
	for _, a := range v.Annotations() {
		text := a.Type
		if a.Label != "" {
			text += " - " + a.Label
		}
		rows = append(rows, fmt.Sprintf("%s  %s (%s)", a.Clock(), text, a.Author))
	}

	rows = append(rows, "", components.ValueStyle.Render("Recent"))
	for _, a := range exam.MockRecentAnnotations() {
		rows = append(rows, components.LabelStyle.Render(fmt.Sprintf("%s  %s (%s)", a.Timestamp, a.Type, a.Author)))
	}
	return strings.Join(rows, "\n")
}

func (s *LiveExamScreen) biopsyTab() string {
	v := s.state
	if s.form != nil {
		return s.form.View()
	}
	taken := "No"
	if v.BiopsyTaken() {
		taken = "Yes"
	}
	rows := []string{
		row("Biopsy taken", taken),
		row("Site", v.Biopsy.Site),
		row("Method", v.Biopsy.Method),
		row("Hemostasis", v.Biopsy.Hemostasis),
		"",
		components.LabelStyle.Render(exam.BiopsyCountLabel(v.BiopsyCount())),
	}
	if missing := exam.MissingBiopsyFields(v.Biopsy); len(missing) > 0 {
		rows = append(rows, components.ErrorStyle.Render("* "+strings.Join(missing, ", ")))
	}
	return strings.Join(rows, "\n")
}

func (s *LiveExamScreen) diagnosisTab() string {
	if s.form != nil {
		return s.form.View()
	}
	d := s.state.Diagnosis
	rows := []string{
		row("HPV Status", exam.ChoiceLabel(exam.HPVStatuses, d.HPVStatus)),
		row("Severity", exam.ChoiceLabel(exam.SeverityLevels, d.Severity)),
		row("Follow-up", exam.ChoiceLabel(exam.FollowUpPlans, d.FollowUp)),
		row("Notes", d.Notes),
		"",
		components.ValueStyle.Render("Pattern Recognition"),
	}
	for _, p := range exam.MockPatterns() {
		rows = append(rows, fmt.Sprintf("%-12s %3d%%", p.Name, p.Percentage), s.bar.ViewAs(float64(p.Percentage)/100))
	}
	return strings.Join(rows, "\n")
}
