package wizard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/screens"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/auth"
	"github.com/mrsinham/sakuramed/internal/exam"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/navigator"
)

func newTestWizard(t *testing.T, start string, clk clockwork.Clock) *Wizard {
	t.Helper()
	cfg := DefaultConfig()
	cfg.UI.StartRoute = start
	w, err := NewWizard(types.Env{Clock: clk, Config: cfg}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	return w
}

func press(w *Wizard, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = w.Update(k)
	}
	return cmd
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWizard_StartsOnLogin(t *testing.T) {
	w := newTestWizard(t, "", clockwork.NewFakeClock())
	if w.Route() != navigator.RouteLogin {
		t.Fatalf("Expected login route, got %v", w.Route())
	}
	if _, ok := w.Screen().(*screens.LoginScreen); !ok {
		t.Fatalf("Expected login screen, got %T", w.Screen())
	}
	if !strings.Contains(w.View(), "Sign in with MyChart") {
		t.Error("Expected MyChart button in view")
	}
}

func TestWizard_SignInWithEmptyFields(t *testing.T) {
	w := newTestWizard(t, "/", clockwork.NewFakeClock())

	cmd := press(w, keyType(tea.KeyTab), keyType(tea.KeyTab), keyType(tea.KeyEnter))
	if cmd != nil {
		t.Error("Expected no pending sign-in for empty fields")
	}

	login := w.Screen().(*screens.LoginScreen)
	if login.Loading() {
		t.Error("Expected sign-in not to start")
	}
	form := w.Session().Form()
	if got := form.Error(intake.FieldUsername); got != intake.MsgRequired {
		t.Errorf("Expected username error %q, got %q", intake.MsgRequired, got)
	}
	if got := form.Error(intake.FieldPassword); got != intake.MsgRequired {
		t.Errorf("Expected password error %q, got %q", intake.MsgRequired, got)
	}
	if !strings.Contains(w.View(), intake.MsgRequired) {
		t.Error("Expected field errors in view")
	}
}

func TestWizard_SignInFailsAfterDelay(t *testing.T) {
	clk := clockwork.NewFakeClock()
	w := newTestWizard(t, "/", clk)

	press(w, runes("drsmith"), keyType(tea.KeyTab), runes("secret"))
	cmd := press(w, keyType(tea.KeyTab), keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("Expected a pending sign-in command")
	}

	login := w.Screen().(*screens.LoginScreen)
	if !login.Loading() {
		t.Fatal("Expected loading state while signing in")
	}

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()

	clk.BlockUntil(1)
	clk.Advance(auth.DefaultDelay)

	select {
	case msg := <-msgs:
		w.Update(msg)
	case <-time.After(time.Second):
		t.Fatal("sign-in did not resolve")
	}

	if login.Loading() {
		t.Error("Expected loading to end")
	}
	if got := w.Session().Form().Error(intake.FieldPassword); got != auth.MsgInvalidCredentials {
		t.Errorf("Expected password error %q, got %q", auth.MsgInvalidCredentials, got)
	}
	if login.Err() != "" {
		t.Errorf("Expected no error under the sign-in button, got %q", login.Err())
	}
	if !strings.Contains(w.View(), auth.MsgInvalidCredentials) {
		t.Error("Expected the failure in view")
	}
	if w.Route() != navigator.RouteLogin {
		t.Errorf("Expected to stay on login, got %v", w.Route())
	}
}

func TestWizard_ShowPasswordToggle(t *testing.T) {
	w := newTestWizard(t, "/", clockwork.NewFakeClock())
	login := w.Screen().(*screens.LoginScreen)

	press(w, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !login.ShowPassword() {
		t.Error("Expected password to be shown")
	}
	press(w, tea.KeyMsg{Type: tea.KeyCtrlR})
	if login.ShowPassword() {
		t.Error("Expected password to be hidden")
	}
}

func TestWizard_MyChartOpensPatientSelection(t *testing.T) {
	w := newTestWizard(t, "/", clockwork.NewFakeClock())
	press(w, keyType(tea.KeyTab), keyType(tea.KeyTab), keyType(tea.KeyTab), keyType(tea.KeyEnter))

	if w.Route() != navigator.RoutePatientSelection {
		t.Fatalf("Expected patient selection, got %v", w.Route())
	}
	if _, ok := w.Screen().(*screens.SelectionScreen); !ok {
		t.Errorf("Expected selection screen, got %T", w.Screen())
	}
}

func TestWizard_BackFromPatientInfo(t *testing.T) {
	w := newTestWizard(t, "/patient-info-entry", clockwork.NewFakeClock())
	if w.Session().Form() == nil {
		t.Fatal("Expected a patient info form")
	}
	if !strings.Contains(w.View(), "Step 1 of 2") {
		t.Error("Expected step indicator in view")
	}

	press(w, keyType(tea.KeyEscape))
	if w.Route() != navigator.RoutePatientSelection {
		t.Errorf("Expected patient selection after back, got %v", w.Route())
	}
}

func TestWizard_ToastExpires(t *testing.T) {
	w := newTestWizard(t, "/", clockwork.NewFakeClock())

	_, cmd := w.Update(types.ToastMsg{Text: "Saved"})
	if cmd == nil {
		t.Fatal("Expected an expiry timer")
	}
	if w.Toast() != "Saved" || !strings.Contains(w.View(), "Saved") {
		t.Fatalf("Expected toast on screen, got %q", w.Toast())
	}

	w.Update(toastExpiredMsg{id: w.toastID - 1})
	if w.Toast() == "" {
		t.Error("Stale expiry must not clear the newer toast")
	}

	w.Update(toastExpiredMsg{id: w.toastID})
	if w.Toast() != "" {
		t.Errorf("Expected toast cleared, got %q", w.Toast())
	}
}

func TestWizard_Sidebar(t *testing.T) {
	w := newTestWizard(t, "/patient-selection", clockwork.NewFakeClock())

	press(w, tea.KeyMsg{Type: tea.KeyCtrlN})
	if w.Phase() != PhaseSidebar {
		t.Fatal("Expected sidebar to open")
	}
	if !strings.Contains(w.View(), "Go to") {
		t.Error("Expected sidebar in view")
	}

	press(w, keyType(tea.KeyEscape))
	if w.Phase() != PhaseScreen {
		t.Error("Expected sidebar to close")
	}
	if w.Route() != navigator.RoutePatientSelection {
		t.Errorf("Closing the sidebar must not navigate, got %v", w.Route())
	}
}

func TestWizard_LiveExam(t *testing.T) {
	w := newTestWizard(t, "/live-exam", clockwork.NewFakeClock())
	state := w.Session().Exam()
	if state == nil {
		t.Fatal("Expected live exam state")
	}
	if !state.PositioningOpen() {
		t.Fatal("Expected positioning guide on entry")
	}
	if !strings.Contains(w.View(), exam.PositioningGuide().Title) {
		t.Error("Expected positioning guide in view")
	}

	press(w, keyType(tea.KeyEnter))
	if state.PositioningOpen() {
		t.Fatal("Expected guide dismissed")
	}

	press(w, runes("s"))
	if !state.SettingsOpen() {
		t.Fatal("Expected settings panel open")
	}
	for i := 0; i < 50; i++ {
		press(w, keyType(tea.KeyRight))
	}
	if got := state.Settings.Zoom.Value(); got != exam.ZoomRange.Max {
		t.Errorf("Expected zoom clamped to %v, got %v", exam.ZoomRange.Max, got)
	}

	press(w, runes("m"))
	if state.Settings.Mode != exam.CameraHighSaturation {
		t.Errorf("Expected next camera mode, got %v", state.Settings.Mode)
	}

	press(w, keyType(tea.KeyTab))
	if state.Tab() != exam.TabBiopsy {
		t.Fatalf("Expected biopsy tab, got %v", state.Tab())
	}
	press(w, runes("b"))
	if !state.BiopsyTaken() {
		t.Error("Expected biopsy toggle on")
	}

	press(w, runes("c"))
	if w.Route() != navigator.RouteExamSummary {
		t.Errorf("Expected exam summary, got %v", w.Route())
	}
	if w.Session().Exam() != nil {
		t.Error("Expected exam state dropped on leave")
	}
}

func TestWizard_AddAnnotation(t *testing.T) {
	w := newTestWizard(t, "/live-exam", clockwork.NewFakeClock())
	state := w.Session().Exam()
	press(w, keyType(tea.KeyEnter))

	press(w, runes("]"))
	if state.AnnotationType() == exam.DefaultAnnotationType {
		t.Error("Expected annotation type to change")
	}

	press(w, keyType(tea.KeyEnter), runes("near os"))
	_, cmd := w.Update(keyType(tea.KeyEnter))
	if state.AnnotationCount() != 1 {
		t.Fatalf("Expected 1 annotation, got %d", state.AnnotationCount())
	}
	if got := state.Annotations()[0].Label; got != "near os" {
		t.Errorf("Expected label %q, got %q", "near os", got)
	}
	if cmd == nil {
		t.Fatal("Expected a toast command")
	}
	if _, ok := cmd().(types.ToastMsg); !ok {
		t.Error("Expected a toast message")
	}
}

func TestWizard_SummaryBackToExam(t *testing.T) {
	w := newTestWizard(t, "/exam-summary", clockwork.NewFakeClock())
	view := w.View()
	for _, want := range []string{"Acetowhite Area", "moderate", "low", "Pathology Requisition"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in summary view", want)
		}
	}

	press(w, keyType(tea.KeyEscape))
	if w.Route() != navigator.RouteLiveExam {
		t.Errorf("Expected live exam, got %v", w.Route())
	}
}

func TestWizard_OverviewDialog(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	w := newTestWizard(t, "/patient-overview", clk)
	overview := w.Screen().(*screens.OverviewScreen)

	if age, ok := overview.Age(); !ok || age != 39 {
		t.Errorf("Expected age 39, got %d (known %v)", age, ok)
	}
	if !strings.Contains(w.View(), "39 years") {
		t.Error("Expected age badge in view")
	}

	press(w, keyType(tea.KeyEnter))
	if !overview.DialogOpen() {
		t.Fatal("Expected exam type dialog")
	}
	if w.Session().CanAdvance() {
		t.Error("Expected start disabled without an exam type")
	}

	press(w, keyType(tea.KeyEscape))
	if overview.DialogOpen() {
		t.Error("Expected dialog closed")
	}
	if w.Route() != navigator.RoutePatientOverview {
		t.Errorf("Closing the dialog must not navigate, got %v", w.Route())
	}
}

func TestWizard_NotFound(t *testing.T) {
	w := newTestWizard(t, "/admin", clockwork.NewFakeClock())
	if w.Route() != navigator.RouteNotFound {
		t.Fatalf("Expected not found, got %v", w.Route())
	}
	if !strings.Contains(w.View(), "/admin") {
		t.Error("Expected unknown path in view")
	}

	press(w, keyType(tea.KeyEnter))
	if w.Route() != navigator.RouteLogin {
		t.Errorf("Expected login after returning home, got %v", w.Route())
	}
}

func TestWizard_Quit(t *testing.T) {
	w := newTestWizard(t, "/", clockwork.NewFakeClock())
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if !w.cancelled {
		t.Error("Expected wizard cancelled")
	}
}

func TestToSessionOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exam.Positioning = "route"
	cfg.UI.StartRoute = "/cervix-positioning"
	opts, err := toSessionOptions(types.Env{Config: cfg}.WithDefaults(), nil)
	if err != nil {
		t.Fatalf("toSessionOptions failed: %v", err)
	}
	if opts.Variant != navigator.PositioningRoute {
		t.Errorf("Expected route variant, got %v", opts.Variant)
	}
	if opts.Start != navigator.RouteCervixPositioning {
		t.Errorf("Expected positioning start, got %v", opts.Start)
	}

	cfg.Exam.Positioning = "modal"
	opts, err = toSessionOptions(types.Env{Config: cfg}.WithDefaults(), nil)
	if err != nil {
		t.Fatalf("toSessionOptions failed: %v", err)
	}
	if opts.Start != navigator.RouteLiveExam {
		t.Errorf("Expected live exam start for the modal variant, got %v", opts.Start)
	}

	cfg.Exam.Positioning = "popup"
	if _, err := toSessionOptions(types.Env{Config: cfg}.WithDefaults(), nil); err == nil {
		t.Error("Expected error for invalid variant")
	}
}

var (
	enter = keyType(tea.KeyEnter)
	down  = keyType(tea.KeyDown)
)

func refClock() clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
}

func newImportWizard(t *testing.T, start string) *Wizard {
	t.Helper()
	cfg := DefaultConfig()
	cfg.UI.StartRoute = start
	imported := &intake.Patient{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-04-02",
		Gender:      "Female",
		MRN:         "MRN777",
	}
	w, err := NewWizard(types.Env{Clock: refClock(), Config: cfg}, imported)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())
	return w
}

// enterUntilLeft presses Enter until the wizard leaves route, at most n times.
func enterUntilLeft(w *Wizard, route navigator.Route, n int) {
	for i := 0; i < n && w.Route() == route; i++ {
		send(w, enter)
	}
}

func TestWizard_SelectionUsesImportedRecord(t *testing.T) {
	w := newImportWizard(t, "/patient-selection")
	if sel := w.Screen().(*screens.SelectionScreen); !sel.UseImported() {
		t.Fatal("Expected the imported record preselected")
	}

	send(w, enter)
	if w.Route() != navigator.RoutePatientInfoEntry {
		t.Fatalf("Expected patient info entry, got %v", w.Route())
	}
	form := w.Session().Form()
	if got := form.Value(intake.FieldFirstName); got != "Jane" {
		t.Errorf("Expected imported first name, got %q", got)
	}
	if got := form.Value(intake.FieldGender); got != "female" {
		t.Errorf("Expected imported gender, got %q", got)
	}
}

func TestWizard_SelectionManualEntryStartsEmpty(t *testing.T) {
	w := newImportWizard(t, "/patient-selection")

	send(w, down, enter)
	if w.Route() != navigator.RoutePatientInfoEntry {
		t.Fatalf("Expected patient info entry, got %v", w.Route())
	}
	form := w.Session().Form()
	for _, name := range []intake.Field{intake.FieldFirstName, intake.FieldLastName, intake.FieldDateOfBirth} {
		if got := form.Value(name); got != "" {
			t.Errorf("Expected %s empty after choosing manual entry, got %q", name, got)
		}
	}
	if w.Session().CanAdvance() {
		t.Error("Expected an empty step 1")
	}
}

func TestWizard_SelectionMyChartStays(t *testing.T) {
	w := newImportWizard(t, "/patient-selection")

	send(w, down, down, enter)
	if w.Route() != navigator.RoutePatientSelection {
		t.Fatalf("Expected to stay on patient selection, got %v", w.Route())
	}
	if w.Toast() != screens.MsgMyChartUnavailable {
		t.Errorf("Expected %q toast, got %q", screens.MsgMyChartUnavailable, w.Toast())
	}
}

func TestWizard_PatientInfoThroughForm(t *testing.T) {
	w, err := NewWizard(types.Env{Clock: refClock(), Config: startAt("/patient-info-entry")}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())

	// an empty first name holds the step
	enterUntilLeft(w, navigator.RoutePatientInfoEntry, 15)
	if w.Route() != navigator.RoutePatientInfoEntry {
		t.Fatalf("Expected to stay on patient info entry, got %v", w.Route())
	}

	send(w, runes("Sarah"), enter, runes("Johnson"), enter, runes("1985-03-15"), enter)
	enterUntilLeft(w, navigator.RoutePatientInfoEntry, 15)
	if w.Route() != navigator.RouteMedicalHistory {
		t.Fatalf("Expected medical history, got %v", w.Route())
	}
	if !strings.Contains(w.View(), "Step 2 of 2") {
		t.Error("Expected step 2 in view")
	}
}

func TestWizard_MedicalHistoryThroughForm(t *testing.T) {
	w, err := NewWizard(types.Env{Clock: refClock(), Config: startAt("/medical-history")}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())

	// birth control is required
	enterUntilLeft(w, navigator.RouteMedicalHistory, 20)
	if w.Route() != navigator.RouteMedicalHistory {
		t.Fatalf("Expected to stay on medical history, got %v", w.Route())
	}

	send(w, down)
	enterUntilLeft(w, navigator.RouteMedicalHistory, 20)
	if w.Route() != navigator.RoutePatientOverview {
		t.Fatalf("Expected patient overview, got %v", w.Route())
	}
}

func TestWizard_StartExamFromOverview(t *testing.T) {
	w, err := NewWizard(types.Env{Clock: refClock(), Config: startAt("/patient-overview")}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())

	send(w, enter)
	overview := w.Screen().(*screens.OverviewScreen)
	if !overview.DialogOpen() {
		t.Fatal("Expected exam type dialog")
	}

	// no exam type selected
	send(w, enter, enter)
	if w.Route() != navigator.RoutePatientOverview || !overview.DialogOpen() {
		t.Fatalf("Expected the dialog to hold, got %v", w.Route())
	}

	send(w, runes("x"))
	enterUntilLeft(w, navigator.RoutePatientOverview, 5)
	if w.Route() != navigator.RouteLiveExam {
		t.Fatalf("Expected live exam, got %v", w.Route())
	}
	if w.Session().Exam() == nil {
		t.Error("Expected live exam state")
	}
}

func TestWizard_SummarySaveAndContinue(t *testing.T) {
	w, err := NewWizard(types.Env{Clock: refClock(), Config: startAt("/exam-summary")}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())

	send(w, enter)
	if w.Route() != navigator.RoutePatientOverview {
		t.Fatalf("Expected patient overview, got %v", w.Route())
	}
}

func TestWizard_SummaryExportRaisesToast(t *testing.T) {
	w, err := NewWizard(types.Env{Clock: refClock(), Config: startAt("/exam-summary")}, nil)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	drain(w, w.Init())

	send(w, down, enter)
	if w.Route() != navigator.RouteExamSummary {
		t.Fatalf("Expected to stay on the summary, got %v", w.Route())
	}
	if w.Toast() != screens.MsgExportUnavailable {
		t.Errorf("Expected %q toast, got %q", screens.MsgExportUnavailable, w.Toast())
	}

	// the action list is offered again
	send(w, enter)
	if w.Route() != navigator.RoutePatientOverview {
		t.Errorf("Expected patient overview, got %v", w.Route())
	}
}

func startAt(route string) types.Config {
	cfg := DefaultConfig()
	cfg.UI.StartRoute = route
	return cfg
}
