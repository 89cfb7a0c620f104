package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/components"
	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/auth"
	"github.com/mrsinham/sakuramed/internal/intake"
	"github.com/mrsinham/sakuramed/internal/session"
)

// Login focus targets, in tab order.
const (
	focusUsername = iota
	focusPassword
	focusSignIn
	focusMyChart
	focusCount
)

// SignInResultMsg carries the outcome of a delayed sign-in.
type SignInResultMsg struct {
	attempt *auth.Delayed[auth.Result]
	Result  auth.Result
	Err     error
}

// LoginScreen is the sign-in page.
type LoginScreen struct {
	outcome
	env          types.Env
	sess         *session.Session
	inputs       []textinput.Model
	focus        int
	showPassword bool
	loading      bool
	attempt      *auth.Delayed[auth.Result]
	err          string
	width        int
	height       int
}

// NewLoginScreen creates the sign-in page bound to the session's login form.
func NewLoginScreen(env types.Env, sess *session.Session) *LoginScreen {
	s := &LoginScreen{env: env, sess: sess}

	schema := intake.LoginSchema()
	for _, spec := range schema.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = 64
		ti.Width = 32
		if spec.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		s.inputs = append(s.inputs, ti)
	}
	s.inputs[focusUsername].Focus()

	return s
}

// Init implements tea.Model
func (s *LoginScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Loading reports whether a sign-in is in flight.
func (s *LoginScreen) Loading() bool {
	return s.loading
}

// ShowPassword reports whether the password is displayed in clear.
func (s *LoginScreen) ShowPassword() bool {
	return s.showPassword
}

// Err returns the message shown under the sign-in button. Rejected
// credentials are reported on the password field instead.
func (s *LoginScreen) Err() string {
	return s.err
}

// Update implements tea.Model
func (s *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case SignInResultMsg:
		if msg.attempt != s.attempt {
			return s, nil
		}
		s.loading = false
		s.attempt = nil
		if errors.Is(msg.Err, auth.ErrCancelled) {
			return s, nil
		}
		if msg.Err != nil {
			s.err = msg.Err.Error()
			return s, nil
		}
		if !msg.Result.OK() {
			s.failPassword(msg.Result.Err)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % focusCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
		case "ctrl+r":
			s.togglePassword()
			return s, nil
		case "enter":
			if s.focus == focusMyChart {
				s.finish(types.ActionAdvance)
				return s, nil
			}
			return s, s.submit()
		}
	}

	if s.focus > focusPassword {
		return s, nil
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	s.sync()
	return s, cmd
}

// failPassword flags the password field with the sign-in failure.
func (s *LoginScreen) failPassword(err error) {
	form := s.sess.Form()
	if form == nil {
		s.err = err.Error()
		return
	}
	_ = form.SetError(intake.FieldPassword, err.Error())
}

func (s *LoginScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	var cmd tea.Cmd
	for i := range s.inputs {
		if i == f {
			cmd = s.inputs[i].Focus()
		} else {
			s.inputs[i].Blur()
		}
	}
	return cmd
}

func (s *LoginScreen) togglePassword() {
	s.showPassword = !s.showPassword
	if s.showPassword {
		s.inputs[focusPassword].EchoMode = textinput.EchoNormal
	} else {
		s.inputs[focusPassword].EchoMode = textinput.EchoPassword
	}
}

// sync copies the inputs into the login form. Editing a field clears its error.
func (s *LoginScreen) sync() {
	form := s.sess.Form()
	if form == nil {
		return
	}
	if form.Value(intake.FieldUsername) != s.inputs[focusUsername].Value() {
		_ = form.SetField(intake.FieldUsername, s.inputs[focusUsername].Value())
	}
	if form.Value(intake.FieldPassword) != s.inputs[focusPassword].Value() {
		_ = form.SetField(intake.FieldPassword, s.inputs[focusPassword].Value())
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.loading {
		return nil
	}
	s.sync()
	s.err = ""

	d, err := s.sess.SignIn()
	if err != nil {
		var verr *auth.ValidationError
		if !errors.As(err, &verr) {
			s.err = err.Error()
		}
		return nil
	}

	s.sess.Form().Validate()
	s.loading = true
	s.attempt = d
	s.env.Log.Debug("sign-in started", zap.String("username", s.inputs[focusUsername].Value()))
	return waitForSignIn(d)
}

func waitForSignIn(d *auth.Delayed[auth.Result]) tea.Cmd {
	return func() tea.Msg {
		res, err := d.Wait(context.Background())
		return SignInResultMsg{attempt: d, Result: res, Err: err}
	}
}

var (
	loginBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 3)

	inputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	focusedInputStyle = inputStyle.
		BorderForeground(lipgloss.Color("63"))
)

// View implements tea.Model
func (s *LoginScreen) View() string {
	title := components.TitleStyle.Render("🌸 SakuraMed")
	subtitle := components.SubtitleStyle.Render("Sign in to continue to your clinical workspace")

	form := s.sess.Form()
	schema := intake.LoginSchema()

	var rows []string
	for i, spec := range schema.Fields {
		style := inputStyle
		if s.focus == i {
			style = focusedInputStyle
		}
		rows = append(rows, components.LabelStyle.Render(spec.Label), style.Render(s.inputs[i].View()))
		if form != nil {
			if msg := form.Error(spec.Name); msg != "" {
				rows = append(rows, components.ErrorStyle.Render(msg))
			}
		}
	}

	reveal := "ctrl+r: Show password"
	if s.showPassword {
		reveal = "ctrl+r: Hide password"
	}
	rows = append(rows, components.Footer(reveal), "")

	signIn := "Sign in"
	if s.loading {
		signIn = "Signing in..."
	}
	rows = append(rows,
		components.Button(signIn, s.focus == focusSignIn, s.loading),
		"",
		components.Button("Sign in with MyChart", s.focus == focusMyChart, false))

	if s.err != "" {
		rows = append(rows, "", components.ErrorStyle.Render(s.err))
	}

	box := loginBoxStyle.Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		box,
		"",
		components.Footer("Tab: Next | Enter: Submit | ctrl+n: Navigate | ctrl+c: Quit"),
	)
}
