package screens

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/jonboulle/clockwork"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/exam"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/summary"
)

func testEnv() types.Env {
	return types.Env{
		Clock: clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}.WithDefaults()
}

func TestIntakeScreen_PrefillAndSync(t *testing.T) {
	env := testEnv()
	data := intake.NewForm(intake.PatientInfoSchema(), intake.WithNow(env.Clock.Now))
	intake.PrefillPatientInfo(data, intake.MockPatient())

	s := NewPatientInfoScreen(env, data)
	if got := *s.values[intake.FieldFirstName]; got != "Sarah" {
		t.Errorf("Expected prefilled first name, got %q", got)
	}
	if !strings.Contains(s.View(), "Continue") {
		t.Error("Expected continue status in view")
	}

	*s.values[intake.FieldFirstName] = ""
	s.sync()
	if data.Complete() {
		t.Error("Expected form incomplete after clearing a required field")
	}
	if !strings.Contains(s.View(), "Required: First Name") {
		t.Error("Expected missing field listed in view")
	}
}

func TestIntakeScreen_OtherCompanion(t *testing.T) {
	env := testEnv()
	data := intake.NewForm(intake.MedicalHistorySchema(), intake.WithNow(env.Clock.Now))
	s := NewMedicalHistoryScreen(env, data)

	*s.multi[intake.FieldAllergies] = []string{"Latex", intake.Other}
	*s.other[intake.FieldAllergies] = "Shellfish"
	s.sync()
	if !data.OtherEnabled(intake.FieldAllergies) {
		t.Fatal("Expected companion enabled")
	}

	*s.multi[intake.FieldAllergies] = []string{"Latex"}
	*s.other[intake.FieldAllergies] = "ignored"
	s.sync()
	if data.OtherEnabled(intake.FieldAllergies) {
		t.Error("Expected companion disabled")
	}

	sel, _ := data.Selection(intake.FieldAllergies)
	if sel.OtherText() != "Shellfish" {
		t.Errorf("Expected text kept while disabled, got %q", sel.OtherText())
	}
}

func TestIntakeScreen_EscGoesBack(t *testing.T) {
	env := testEnv()
	s := NewMedicalHistoryScreen(env, intake.NewForm(intake.MedicalHistorySchema()))
	s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !s.Done() || s.Action() != types.ActionBack {
		t.Errorf("Expected back action, got done=%v action=%v", s.Done(), s.Action())
	}
}

func TestLiveExamScreen_RecordBiopsy(t *testing.T) {
	env := testEnv()
	state := exam.NewViewState(exam.WithClock(env.Clock))
	s := NewLiveExamScreen(env, state)

	msg := s.recordBiopsy()()
	toast, ok := msg.(types.ToastMsg)
	if !ok || toast.Text != MsgBiopsyNotTaken {
		t.Fatalf("Expected %q toast, got %#v", MsgBiopsyNotTaken, msg)
	}
	if state.BiopsyCount() != 0 {
		t.Errorf("Expected no biopsy recorded, got %d", state.BiopsyCount())
	}

	state.SetBiopsyTaken(true)
	state.Biopsy.Site = exam.BiopsySites[0]
	toast = s.recordBiopsy()().(types.ToastMsg)
	if state.BiopsyCount() != 1 {
		t.Fatalf("Expected 1 biopsy, got %d", state.BiopsyCount())
	}
	if !strings.Contains(toast.Text, "1 biopsy taken") || !strings.Contains(toast.Text, "Biopsy Method") {
		t.Errorf("Unexpected toast %q", toast.Text)
	}
}

func TestLiveExamScreen_OpacityStaysInRange(t *testing.T) {
	env := testEnv()
	state := exam.NewViewState()
	s := NewLiveExamScreen(env, state)
	state.DismissPositioning()

	for i := 0; i < 120; i++ {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	}
	if state.Opacity.Value() != exam.OpacityRange.Min {
		t.Errorf("Expected opacity %v, got %v", exam.OpacityRange.Min, state.Opacity.Value())
	}
}

func TestLiveExamScreen_DiagnosisTabShowsPatterns(t *testing.T) {
	env := testEnv()
	state := exam.NewViewState()
	state.DismissPositioning()
	state.SetTab(exam.TabDiagnosis)
	s := NewLiveExamScreen(env, state)

	view := s.View()
	for _, p := range exam.MockPatterns() {
		if !strings.Contains(view, p.Name) {
			t.Errorf("Expected pattern %q in view", p.Name)
		}
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !s.Editing() {
		t.Error("Expected diagnosis form open")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if s.Editing() {
		t.Error("Expected diagnosis form closed")
	}
	if s.Done() {
		t.Error("Closing the form must not leave the exam")
	}
}

func TestSummaryScreen_GroupsBySeverity(t *testing.T) {
	env := testEnv()
	s := NewSummaryScreen(env, summary.MockReport())
	view := s.View()

	moderate := strings.Index(view, "Acetowhite Area")
	low := strings.Index(view, "Cervical Polyp")
	if moderate < 0 || low < 0 {
		t.Fatal("Expected both findings in view")
	}
	if moderate > low {
		t.Error("Expected the moderate finding before the low one")
	}
}

func TestNotFoundScreen(t *testing.T) {
	s := NewNotFoundScreen("/admin")
	if !strings.Contains(s.View(), "Page not found") {
		t.Error("Expected not found message")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Action() != types.ActionHome {
		t.Errorf("Expected home action, got %v", s.Action())
	}
}

func TestPositioningScreen(t *testing.T) {
	s := NewPositioningScreen()
	if !strings.Contains(s.View(), "Cervix centered in frame") {
		t.Error("Expected checklist in view")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Action() != types.ActionAdvance {
		t.Errorf("Expected advance action, got %v", s.Action())
	}
}

func TestCycle(t *testing.T) {
	values := []string{"a", "b", "c"}
	if got := cycle(values, "c", 1); got != "a" {
		t.Errorf("Expected wrap to a, got %s", got)
	}
	if got := cycle(values, "a", -1); got != "c" {
		t.Errorf("Expected wrap to c, got %s", got)
	}
	if got := cycle(values, "z", 1); got != "a" {
		t.Errorf("Expected first value for unknown, got %s", got)
	}
}

func TestIntakeScreen_RebuildsWhenStepTurnsIncomplete(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	typed := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	data := intake.NewForm(intake.PatientInfoSchema(), intake.WithNow(func() time.Time { return now }))
	s := NewPatientInfoScreen(testEnv(), data)
	drain(s, s.Init())

	send(s, typed("Sarah"), enter, typed("Johnson"), enter, typed("1985-03-15"), enter)

	// the birth date lies in the future once the step is confirmed
	now = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15 && data.Error(intake.FieldDateOfBirth) == "" && !s.Done(); i++ {
		send(s, enter)
	}

	if s.Done() {
		t.Fatalf("Expected the step to hold, got action %v", s.Action())
	}
	if got := data.Error(intake.FieldDateOfBirth); got != intake.MsgInvalidDate {
		t.Errorf("Expected %q, got %q", intake.MsgInvalidDate, got)
	}
	if s.form.State != huh.StateNormal {
		t.Errorf("Expected a fresh form, got state %v", s.form.State)
	}
	if !strings.Contains(s.View(), "Required: Date of Birth") {
		t.Error("Expected the failing field listed in view")
	}
	if got := *s.values[intake.FieldFirstName]; got != "Sarah" {
		t.Errorf("Expected entries kept across the rebuild, got %q", got)
	}

	now = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15 && !s.Done(); i++ {
		send(s, enter)
	}
	if !s.Done() || s.Action() != types.ActionAdvance {
		t.Errorf("Expected advance, got done=%v action=%v", s.Done(), s.Action())
	}
}

func TestSelectionScreen_ReportsChoice(t *testing.T) {
	p := intake.MockPatient()

	s := NewSelectionScreen(testEnv(), &p)
	drain(s, s.Init())
	send(s, tea.KeyMsg{Type: tea.KeyEnter})
	if !s.Done() || !s.UseImported() {
		t.Errorf("Expected the imported record, got done=%v imported=%v", s.Done(), s.UseImported())
	}

	s = NewSelectionScreen(testEnv(), &p)
	drain(s, s.Init())
	send(s, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if !s.Done() || s.UseImported() {
		t.Errorf("Expected manual entry, got done=%v imported=%v", s.Done(), s.UseImported())
	}

	s = NewSelectionScreen(testEnv(), nil)
	drain(s, s.Init())
	send(s, tea.KeyMsg{Type: tea.KeyEnter})
	if !s.Done() || s.UseImported() {
		t.Errorf("Expected manual entry without a record, got done=%v imported=%v", s.Done(), s.UseImported())
	}
}
