// Package wizard runs the clinical workflow as a terminal application.
package wizard

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/screens"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/navigator"
	"github.com/mrsinham/sakuramed/internal/session"
	"github.com/mrsinham/sakuramed/internal/summary"
)

// MsgIncomplete is the toast raised when continuing from an incomplete step.
const MsgIncomplete = "Complete the required fields to continue"

// Phase represents what currently receives input.
type Phase int

const (
	// PhaseScreen routes input to the page of the active route.
	PhaseScreen Phase = iota
	// PhaseSidebar routes input to the navigation menu.
	PhaseSidebar
)

// toastExpiredMsg clears the toast it was scheduled for.
type toastExpiredMsg struct {
	id int
}

// Wizard is the main orchestrator of the terminal interface.
type Wizard struct {
	env      types.Env
	sess     *session.Session
	imported *intake.Patient

	// Current phase
	phase Phase

	screen  screens.Screen
	sidebar *screens.SidebarScreen

	// Path shown by the not found page
	unknownPath string

	toast   string
	toastID int

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
}

// NewWizard creates a wizard positioned on the configured start route.
// imported is the patient read from an imaging record, or nil.
func NewWizard(env types.Env, imported *intake.Patient) (*Wizard, error) {
	env = env.WithDefaults()
	opts, err := toSessionOptions(env, imported)
	if err != nil {
		return nil, err
	}

	w := &Wizard{
		env:      env,
		sess:     session.New(opts),
		imported: imported,
		phase:    PhaseScreen,
	}
	if opts.Start == navigator.RouteNotFound {
		w.unknownPath = env.Config.UI.StartRoute
	}
	w.screen = w.newScreen()

	return w, nil
}

// Route returns the active route.
func (w *Wizard) Route() navigator.Route {
	return w.sess.Route()
}

// Session returns the workflow state.
func (w *Wizard) Session() *session.Session {
	return w.sess
}

// Screen returns the active page.
func (w *Wizard) Screen() screens.Screen {
	return w.screen
}

// Phase returns what currently receives input.
func (w *Wizard) Phase() Phase {
	return w.phase
}

// Toast returns the notification on screen, or "".
func (w *Wizard) Toast() string {
	return w.toast
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.screen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		case "ctrl+n":
			if w.phase == PhaseScreen {
				return w, w.openSidebar()
			}
		}
	case types.ToastMsg:
		return w, w.showToast(msg.Text)
	case toastExpiredMsg:
		if msg.id == w.toastID {
			w.toast = ""
		}
		return w, nil
	}

	switch w.phase {
	case PhaseSidebar:
		return w.updateSidebar(msg)
	default:
		return w.updateScreen(msg)
	}
}

// View implements tea.Model.
func (w *Wizard) View() string {
	crumb := components.Footer("SakuraMed › " + w.sess.Route().String())
	body := w.screen.View()
	if w.phase == PhaseSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, w.sidebar.View(), "  ", body)
	}
	if w.toast != "" {
		return lipgloss.JoinVertical(lipgloss.Left, crumb, components.Toast(w.toast), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, crumb, "", body)
}

// updateScreen handles updates of the active page.
func (w *Wizard) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.screen.Update(msg)
	if sc, ok := model.(screens.Screen); ok {
		w.screen = sc
	}

	if !w.screen.Done() {
		return w, cmd
	}

	switch w.screen.Action() {
	case types.ActionAdvance:
		if sel, ok := w.screen.(*screens.SelectionScreen); ok {
			w.choosePrefill(sel)
		}
		return w, tea.Batch(cmd, w.transitionToNext())
	case types.ActionBack:
		w.sess.Back()
	case types.ActionHome:
		w.sess.Jump(navigator.RouteLogin)
	}
	return w, tea.Batch(cmd, w.transitionToRoute())
}

// transitionToNext advances the session, staying on the step when it is
// incomplete.
func (w *Wizard) transitionToNext() tea.Cmd {
	var err error
	if w.sess.Route() == navigator.RouteLogin {
		err = w.sess.SignInWithMyChart()
	} else {
		err = w.sess.Advance()
	}
	if errors.Is(err, navigator.ErrAdvanceDisabled) {
		w.env.Log.Debug("advance refused", zap.String("route", w.sess.Route().Path()))
		return tea.Batch(w.transitionToRoute(), w.env.Notify(MsgIncomplete))
	}
	if err != nil {
		w.env.Log.Error("advance failed", zap.Error(err))
	}
	return w.transitionToRoute()
}

// choosePrefill seeds the patient info step with the imported record only
// when the clinician picked it.
func (w *Wizard) choosePrefill(sel *screens.SelectionScreen) {
	if sel.UseImported() {
		w.sess.SetPrefill(w.imported)
		return
	}
	w.sess.SetPrefill(nil)
}

// transitionToRoute mounts the page of the active route.
func (w *Wizard) transitionToRoute() tea.Cmd {
	w.screen = w.newScreen()
	if w.width > 0 {
		w.screen.Update(tea.WindowSizeMsg{Width: w.width, Height: w.height})
	}
	return w.screen.Init()
}

func (w *Wizard) newScreen() screens.Screen {
	env := w.env
	switch w.sess.Route() {
	case navigator.RouteLogin:
		return screens.NewLoginScreen(env, w.sess)
	case navigator.RoutePatientSelection:
		return screens.NewSelectionScreen(env, w.imported)
	case navigator.RoutePatientInfoEntry:
		return screens.NewPatientInfoScreen(env, w.sess.Form())
	case navigator.RouteMedicalHistory:
		return screens.NewMedicalHistoryScreen(env, w.sess.Form())
	case navigator.RoutePatientOverview:
		return screens.NewOverviewScreen(env, intake.MockPatient(), w.sess.Form())
	case navigator.RouteCervixPositioning:
		return screens.NewPositioningScreen()
	case navigator.RouteLiveExam:
		return screens.NewLiveExamScreen(env, w.sess.Exam())
	case navigator.RouteExamSummary:
		return screens.NewSummaryScreen(env, summary.MockReport())
	default:
		path := w.unknownPath
		w.unknownPath = ""
		return screens.NewNotFoundScreen(path)
	}
}

func (w *Wizard) openSidebar() tea.Cmd {
	w.phase = PhaseSidebar
	w.sidebar = screens.NewSidebarScreen(w.sess.Route())
	return w.sidebar.Init()
}

// updateSidebar handles updates while the navigation menu is open.
func (w *Wizard) updateSidebar(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.sidebar.Update(msg)
	if sb, ok := model.(*screens.SidebarScreen); ok {
		w.sidebar = sb
	}

	if w.sidebar.Cancelled() {
		w.phase = PhaseScreen
		w.sidebar = nil
		return w, nil
	}

	if w.sidebar.Done() {
		route := w.sidebar.Route()
		w.phase = PhaseScreen
		w.sidebar = nil
		w.sess.Jump(route)
		return w, w.transitionToRoute()
	}

	return w, cmd
}

func (w *Wizard) showToast(text string) tea.Cmd {
	w.toastID++
	w.toast = text
	id := w.toastID

	d := w.env.Config.UI.ToastDuration
	if d <= 0 {
		d = DefaultToastDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Run starts the interactive application with cfg.
func Run(cfg types.Config, imported *intake.Patient, log *zap.Logger) error {
	w, err := NewWizard(types.Env{Log: log, Config: cfg}, imported)
	if err != nil {
		return err
	}

	p := tea.NewProgram(w, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if fw, ok := finalModel.(*Wizard); ok && fw.cancelled {
		fw.env.Log.Info("session closed", zap.String("route", fw.Route().Path()))
	}

	return nil
}
