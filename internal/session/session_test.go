package session

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/navigator"
)

func TestSession_StepStateIsFreshOnEntry(t *testing.T) {
	s := New(Options{Start: navigator.RoutePatientInfoEntry})
	require.NoError(t, s.SetField(intake.FieldFirstName, "Sarah"))
	first := s.Form()

	s.Back()
	assert.Equal(t, navigator.RoutePatientSelection, s.Route())
	assert.Nil(t, s.Form())
	assert.ErrorIs(t, s.SetField(intake.FieldFirstName, "x"), ErrNoForm)

	s.Jump(navigator.RoutePatientInfoEntry)
	require.NotNil(t, s.Form())
	assert.NotSame(t, first, s.Form())
	assert.Empty(t, s.Form().Value(intake.FieldFirstName))
}

func TestSession_LiveExamStateOnlyOnLiveExam(t *testing.T) {
	s := New(Options{Start: navigator.RouteLiveExam, Examiner: "Dr. Lee"})
	require.NotNil(t, s.Exam())
	assert.True(t, s.Exam().PositioningOpen())
	assert.True(t, s.CanAdvance())

	require.NoError(t, s.Advance())
	assert.Equal(t, navigator.RouteExamSummary, s.Route())
	assert.Nil(t, s.Exam())
}

func TestSession_PrefillFromImport(t *testing.T) {
	p := intake.MockPatient()
	s := New(Options{
		Start:   navigator.RoutePatientInfoEntry,
		Clock:   clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		Prefill: &p,
	})
	assert.True(t, s.CanAdvance())
}

func TestSession_LeavingLoginCancelsSignIn(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := New(Options{Clock: clk})
	require.NoError(t, s.SetField(intake.FieldUsername, "drsmith"))
	require.NoError(t, s.SetField(intake.FieldPassword, "pw"))

	d, err := s.SignIn()
	require.NoError(t, err)
	require.NoError(t, s.SignInWithMyChart())
	assert.Nil(t, s.Pending())

	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("pending sign-in was not cancelled")
	}

	_, err = s.SignIn()
	assert.ErrorIs(t, err, ErrNotOnLogin)
}

func TestSession_NotFound(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, navigator.RouteNotFound, s.JumpPath("/admin"))
	assert.Nil(t, s.Form())
	assert.Equal(t, navigator.RouteLogin, s.Back())
}

func TestSession_SetPrefill(t *testing.T) {
	p := intake.MockPatient()
	s := New(Options{
		Start:   navigator.RoutePatientSelection,
		Clock:   clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
		Prefill: &p,
	})

	s.SetPrefill(nil)
	require.NoError(t, s.Advance())
	assert.Equal(t, navigator.RoutePatientInfoEntry, s.Route())
	assert.Empty(t, s.Form().Value(intake.FieldFirstName))
	assert.False(t, s.CanAdvance())

	s.Back()
	s.SetPrefill(&p)
	require.NoError(t, s.Advance())
	assert.Equal(t, "Sarah", s.Form().Value(intake.FieldFirstName))
	assert.True(t, s.CanAdvance())
}
