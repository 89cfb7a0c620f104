// Package auth simulates the clinician sign-in. No credentials are valid:
// every well-formed attempt fails after a fixed delay.
package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/mrsinham/sakuramed/internal/intake"
)

// DefaultDelay is how long a sign-in attempt takes to fail.
const DefaultDelay = time.Second

// MsgInvalidCredentials is the message shown under the password field.
const MsgInvalidCredentials = "Invalid username or password"

// ErrInvalidCredentials is the outcome of every sign-in attempt.
var ErrInvalidCredentials = errors.New(MsgInvalidCredentials)

// ValidationError lists the fields that kept the attempt from starting.
type ValidationError struct {
	Fields map[intake.Field]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return fmt.Sprintf("sign-in form incomplete: %s", strings.Join(names, ", "))
}

// Result is the outcome of a sign-in attempt.
type Result struct {
	Username string
	Err      error
}

// OK reports whether the attempt succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Authenticator runs simulated sign-in attempts.
type Authenticator struct {
	clock clockwork.Clock
	delay time.Duration
	log   *zap.Logger
}

// New creates an Authenticator. A zero delay selects DefaultDelay.
func New(clock clockwork.Clock, delay time.Duration, log *zap.Logger) *Authenticator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{clock: clock, delay: delay, log: log}
}

// Delay returns the configured delay.
func (a *Authenticator) Delay() time.Duration { return a.delay }

// SignIn starts an attempt. Empty fields are reported at once as a
// *ValidationError and no timer is started.
func (a *Authenticator) SignIn(username, password string) (*Delayed[Result], error) {
	form := intake.NewForm(intake.LoginSchema())
	if err := form.SetField(intake.FieldUsername, username); err != nil {
		return nil, err
	}
	if err := form.SetField(intake.FieldPassword, password); err != nil {
		return nil, err
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	a.log.Info("sign-in attempt", zap.String("username", username), zap.Duration("delay", a.delay))
	return After(a.clock, a.delay, Result{Username: username, Err: ErrInvalidCredentials}), nil
}
