// Package session ties the navigator to the per-step state of the active
// page. Entering a step builds its state from scratch; leaving drops it.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/mrsinham/sakuramed/internal/auth"
	"github.com/mrsinham/sakuramed/internal/exam"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/navigator"
)

var (
	// ErrNoForm is returned when the active step has no form.
	ErrNoForm = errors.New("step has no form")
	// ErrNotOnLogin is returned by sign-in actions outside the login step.
	ErrNotOnLogin = errors.New("not on the login step")
)

// Options configures a Session.
type Options struct {
	Start       navigator.Route
	Variant     navigator.PositioningVariant
	Clock       clockwork.Clock
	SignInDelay time.Duration
	Examiner    string
	Log         *zap.Logger
	// Prefill seeds the patient info step, e.g. from a DICOM import.
	Prefill *intake.Patient
}

// Session is the workflow state of one clinician.
type Session struct {
	opts    Options
	nav     *navigator.Navigator
	auth    *auth.Authenticator
	form    *intake.Form
	exam    *exam.ViewState
	pending *auth.Delayed[auth.Result]
	log     *zap.Logger
}

// New creates a session positioned on opts.Start.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	s := &Session{
		opts: opts,
		nav:  navigator.New(opts.Start, opts.Variant, opts.Log.Named("navigator")),
		auth: auth.New(opts.Clock, opts.SignInDelay, opts.Log.Named("auth")),
		log:  opts.Log,
	}
	s.enter(opts.Start)
	return s
}

// Route returns the active step.
func (s *Session) Route() navigator.Route { return s.nav.Current() }

// Navigator returns the underlying navigator.
func (s *Session) Navigator() *navigator.Navigator { return s.nav }

// Clock returns the clock driving timers.
func (s *Session) Clock() clockwork.Clock { return s.opts.Clock }

// Form returns the form of the active step, or nil.
func (s *Session) Form() *intake.Form { return s.form }

// Exam returns the live exam state while on the live exam step, or nil.
func (s *Session) Exam() *exam.ViewState { return s.exam }

// CanAdvance reports whether the active step may continue.
func (s *Session) CanAdvance() bool {
	return navigator.CanAdvance(s.Route(), s.completer())
}

// Advance continues to the next step. It returns
// navigator.ErrAdvanceDisabled, leaving everything as is, while the active
// step is incomplete.
func (s *Session) Advance() error {
	from := s.Route()
	to, err := s.nav.Advance(s.completer())
	if err != nil {
		return err
	}
	s.leave(from)
	s.enter(to)
	return nil
}

// Back returns to the previous step.
func (s *Session) Back() navigator.Route {
	from := s.Route()
	to := s.nav.Back()
	s.leave(from)
	s.enter(to)
	return to
}

// Jump moves straight to r, as the sidebar does.
func (s *Session) Jump(r navigator.Route) navigator.Route {
	from := s.Route()
	s.nav.Jump(r)
	s.leave(from)
	s.enter(r)
	return r
}

// JumpPath moves to the route registered under path.
func (s *Session) JumpPath(path string) navigator.Route {
	return s.Jump(navigator.Resolve(path))
}

// SignIn starts a credential sign-in with the login form's values. Field
// errors are recorded on the form and returned as *auth.ValidationError.
func (s *Session) SignIn() (*auth.Delayed[auth.Result], error) {
	if s.Route() != navigator.RouteLogin {
		return nil, ErrNotOnLogin
	}
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	d, err := s.auth.SignIn(s.form.Value(intake.FieldUsername), s.form.Value(intake.FieldPassword))
	if err != nil {
		s.form.Validate()
		return nil, err
	}
	s.pending = d
	return d, nil
}

// Pending returns the sign-in attempt in flight, or nil.
func (s *Session) Pending() *auth.Delayed[auth.Result] { return s.pending }

// SignInWithMyChart skips credentials and opens patient selection.
func (s *Session) SignInWithMyChart() error {
	if s.Route() != navigator.RouteLogin {
		return ErrNotOnLogin
	}
	return s.Advance()
}

// completer returns the gate of the active step. The login form gates
// SignIn, not navigation.
func (s *Session) completer() navigator.Completer {
	if s.form == nil || s.Route() == navigator.RouteLogin {
		return nil
	}
	return s.form
}

func (s *Session) leave(r navigator.Route) {
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	if s.form != nil || s.exam != nil {
		s.log.Debug("step state discarded", zap.String("route", r.Path()))
	}
	s.form = nil
	s.exam = nil
}

func (s *Session) enter(r navigator.Route) {
	now := s.opts.Clock.Now
	switch r {
	case navigator.RouteLogin:
		s.form = intake.NewForm(intake.LoginSchema(), intake.WithNow(now))
	case navigator.RoutePatientInfoEntry:
		s.form = intake.NewForm(intake.PatientInfoSchema(), intake.WithNow(now))
		if s.opts.Prefill != nil {
			intake.PrefillPatientInfo(s.form, *s.opts.Prefill)
		}
	case navigator.RouteMedicalHistory:
		s.form = intake.NewForm(intake.MedicalHistorySchema(), intake.WithNow(now))
	case navigator.RoutePatientOverview:
		s.form = intake.NewForm(intake.ExamTypeSchema(), intake.WithNow(now))
	case navigator.RouteLiveExam:
		s.exam = exam.NewViewState(
			exam.WithClock(s.opts.Clock),
			exam.WithExaminer(s.opts.Examiner),
			exam.WithLogger(s.log.Named("exam")))
		if s.nav.Variant() == navigator.PositioningRoute {
			s.exam.DismissPositioning()
		}
	}
}

// SetPrefill replaces the record seeding the patient info step on its next
// entry. nil leaves the step empty.
func (s *Session) SetPrefill(p *intake.Patient) {
	s.opts.Prefill = p
}

// SetField writes a field of the active form.
func (s *Session) SetField(name intake.Field, value string) error {
	if s.form == nil {
		return fmt.Errorf("%w: %s", ErrNoForm, s.Route())
	}
	return s.form.SetField(name, value)
}
