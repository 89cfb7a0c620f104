// Package types holds the configuration and the values shared between the
// wizard and its screens.
package types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Config is the YAML configuration of the application.
type Config struct {
	Auth AuthConfig `yaml:"auth"`
	Exam ExamConfig `yaml:"exam"`
	Log  LogConfig  `yaml:"log"`
	UI   UIConfig   `yaml:"ui"`
}

// AuthConfig configures the simulated sign-in.
type AuthConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// ExamConfig configures the live exam.
type ExamConfig struct {
	// Positioning is "modal" or "route".
	Positioning string `yaml:"positioning"`
	Examiner    string `yaml:"examiner"`
}

// LogConfig configures the log file. Logging is off when File is empty.
type LogConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	StartRoute    string        `yaml:"start_route"`
	ToastDuration time.Duration `yaml:"toast_duration"`
}

// Action is what a finished screen asks the wizard to do.
type Action int

const (
	ActionNone Action = iota
	// ActionAdvance moves to the next step.
	ActionAdvance
	// ActionBack moves to the previous step.
	ActionBack
	// ActionHome returns to the sign-in page.
	ActionHome
)

// ToastMsg asks the wizard to show a transient notification.
type ToastMsg struct {
	Text string
}

// Notifier builds the command raising a toast.
type Notifier func(text string) tea.Cmd

// Notify is the default Notifier.
func Notify(text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text} }
}

// Env carries the dependencies handed to every screen.
type Env struct {
	Log    *zap.Logger
	Clock  clockwork.Clock
	Notify Notifier
	Config Config
}

// WithDefaults fills the zero fields of e.
func (e Env) WithDefaults() Env {
	if e.Log == nil {
		e.Log = zap.NewNop()
	}
	if e.Clock == nil {
		e.Clock = clockwork.NewRealClock()
	}
	if e.Notify == nil {
		e.Notify = Notify
	}
	return e
}
