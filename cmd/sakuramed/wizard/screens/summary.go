package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/summary"
)

const (
	actionBack   = "back"
	actionSave   = "save"
	actionExport = "export"
	actionPrint  = "print"
)

// Toasts raised by the placeholder actions.
const (
	MsgExportUnavailable = "PDF export is not available yet"
	MsgPrintUnavailable  = "Printing is not available yet"
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Width(72)

	summaryTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)
)

// SummaryScreen displays the exam report and its actions
type SummaryScreen struct {
	outcome
	env    types.Env
	report summary.Report
	form   *huh.Form
	choice string
	bar    progress.Model
	width  int
	height int
}

// NewSummaryScreen creates the summary of report
func NewSummaryScreen(env types.Env, report summary.Report) *SummaryScreen {
	s := &SummaryScreen{
		env:    env,
		report: report,
		bar:    progress.New(progress.WithSolidFill("63"), progress.WithWidth(30), progress.WithoutPercentage()),
	}
	s.buildForm()
	return s
}

func (s *SummaryScreen) buildForm() {
	s.choice = actionSave
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Save & Continue", actionSave),
					huh.NewOption("Export PDF", actionExport),
					huh.NewOption("Print", actionPrint),
					huh.NewOption("Back to Exam", actionBack),
				).
				Value(&s.choice),
		),
	).WithShowHelp(false)
}

// Report returns the displayed report.
func (s *SummaryScreen) Report() summary.Report {
	return s.report
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			// Esc goes back to the exam
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

	if s.form.State != huh.StateCompleted {
		return s, cmd
	}

	switch s.choice {
	case actionBack:
		s.finish(types.ActionBack)
	case actionSave:
		s.finish(types.ActionAdvance)
	case actionExport, actionPrint:
		text := MsgExportUnavailable
		if s.choice == actionPrint {
			text = MsgPrintUnavailable
		}
		s.buildForm()
		return s, tea.Batch(s.env.Notify(text), s.form.Init())
	}
	return s, nil
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	r := s.report
	var sections []string

	sections = append(sections, components.TitleStyle.Render("Exam Summary"))

	sections = append(sections, summaryPanelStyle.Render(strings.Join([]string{
		summaryTitleStyle.Render("Patient"),
		row("Name", r.Patient.Name),
		row("DOB", r.Patient.DOB),
		row("MRN", r.Patient.MRN),
		row("Exam Date", r.Patient.ExamDate),
	}, "\n")))

	findings := []string{summaryTitleStyle.Render("AI-Detected Abnormalities")}
	for _, g := range r.GroupBySeverity() {
		for _, f := range g.Findings {
			icon := lipgloss.NewStyle().Foreground(components.TermColor(g.Color)).Render(summary.Icon(f.Severity))
			findings = append(findings, fmt.Sprintf("%s %s  %s  %s",
				icon,
				components.ValueStyle.Render(f.Type),
				components.SeverityBadge(f.Severity),
				components.LabelStyle.Render(fmt.Sprintf("%s | %s | %s", f.Location, f.Timestamp, f.Author))))
		}
	}
	sections = append(sections, summaryPanelStyle.Render(strings.Join(findings, "\n")))

	annotations := []string{summaryTitleStyle.Render("Annotations")}
	for _, a := range r.Annotations {
		annotations = append(annotations, fmt.Sprintf("%s  %s",
			components.ValueStyle.Render(a.Type),
			components.LabelStyle.Render(fmt.Sprintf("%s | %s | %s", a.Location, a.Timestamp, a.Author))))
	}
	sections = append(sections, summaryPanelStyle.Render(strings.Join(annotations, "\n")))

	patterns := []string{summaryTitleStyle.Render("Pattern Recognition")}
	for _, p := range r.Patterns {
		patterns = append(patterns, fmt.Sprintf("%-12s %s %3d%%", p.Name, s.bar.ViewAs(float64(p.Percentage)/100), p.Percentage))
	}
	sections = append(sections, summaryPanelStyle.Render(strings.Join(patterns, "\n")))

	req := r.Requisition
	sections = append(sections, summaryPanelStyle.Render(strings.Join([]string{
		summaryTitleStyle.Render("Exam Details"),
		row("HPV Status", r.Details.HPVStatus),
		row("Severity", r.Details.Severity),
		row("Biopsy Taken", r.Details.BiopsyLabel()),
		"",
		summaryTitleStyle.Render("Pathology Requisition"),
		row("Location", req.Location),
		row("Procedure", req.Procedure),
		row("Clinical Info", req.ClinicalInfo),
		row("ICD-10", strings.Join(req.ICDCodes, "; ")),
		"",
		summaryTitleStyle.Render("Follow-up Recommendations"),
		lipgloss.NewStyle().Width(66).Render(r.FollowUp),
		"",
		row("Signed by", r.Signature.SignedBy),
		row("Signed at", r.Signature.SignedAt),
	}, "\n")))

	sections = append(sections,
		"",
		s.form.View(),
		"",
		components.Footer("Enter: Select | Esc: Back to Exam | ctrl+n: Navigate"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
