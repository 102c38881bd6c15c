package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// LoginForm is the sign-in screen shown while no session exists.
type LoginForm struct {
	registering bool

	emailInput    textinput.Model
	passwordInput textinput.Model
	nameInput     textinput.Model

	focusIndex int // 0=email, 1=password, 2=name (register only)
	submitting bool
	width      int
}

// NewLoginForm creates the sign-in form.
func NewLoginForm(width int) *LoginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 200
	password.Width = 40

	name := textinput.New()
	name.Placeholder = "display name (optional)"
	name.CharLimit = 200
	name.Width = 40

	lf := &LoginForm{
		emailInput:    email,
		passwordInput: password,
		nameInput:     name,
		width:         width,
	}
	lf.emailInput.Focus()
	return lf
}

// ToggleMode switches between login and register.
func (lf *LoginForm) ToggleMode() {
	lf.registering = !lf.registering
	if !lf.registering && lf.focusIndex > 1 {
		lf.blurAll()
		lf.focusIndex = 0
		lf.emailInput.Focus()
	}
}

// Registering reports whether the form is in register mode.
func (lf *LoginForm) Registering() bool {
	return lf.registering
}

// FocusNext moves to the next field.
func (lf *LoginForm) FocusNext() {
	lf.blurAll()
	fields := 2
	if lf.registering {
		fields = 3
	}
	lf.focusIndex = (lf.focusIndex + 1) % fields
	lf.focusCurrent()
}

func (lf *LoginForm) blurAll() {
	lf.emailInput.Blur()
	lf.passwordInput.Blur()
	lf.nameInput.Blur()
}

func (lf *LoginForm) focusCurrent() {
	switch lf.focusIndex {
	case 0:
		lf.emailInput.Focus()
	case 1:
		lf.passwordInput.Focus()
	case 2:
		lf.nameInput.Focus()
	}
}

// SetSubmitting toggles the in-flight indicator.
func (lf *LoginForm) SetSubmitting(v bool) {
	lf.submitting = v
}

// Email returns the current email value.
func (lf *LoginForm) Email() string {
	return strings.TrimSpace(lf.emailInput.Value())
}

// Password returns the current password value.
func (lf *LoginForm) Password() string {
	return lf.passwordInput.Value()
}

// Name returns the current display name value.
func (lf *LoginForm) Name() string {
	return strings.TrimSpace(lf.nameInput.Value())
}

// FocusedInput returns the focused input model for update forwarding.
func (lf *LoginForm) FocusedInput() *textinput.Model {
	switch lf.focusIndex {
	case 1:
		return &lf.passwordInput
	case 2:
		return &lf.nameInput
	default:
		return &lf.emailInput
	}
}

// View renders the sign-in screen centered in the given area.
func (lf *LoginForm) View(width, height int) string {
	title := "Sign in to AgentScope"
	action := "log in"
	if lf.registering {
		title = "Create an AgentScope account"
		action = "register"
	}

	parts := make([]string, 0, 12)
	parts = append(parts, overlayTitleStyle.Render(title))

	parts = append(parts, lipgloss.NewStyle().Bold(true).Render("Email:"), lf.emailInput.View(), "")
	parts = append(parts, lipgloss.NewStyle().Bold(true).Render("Password:"), lf.passwordInput.View(), "")
	if lf.registering {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render("Name:"), lf.nameInput.View(), "")
	}

	if lf.submitting {
		parts = append(parts, dimTextStyle.Render("Signing in..."))
	} else {
		parts = append(parts, dimTextStyle.Render("Enter "+action+"  |  Tab next field  |  Ctrl+r toggle register  |  Ctrl+q quit"))
	}

	box := overlayStyle.Width(54).Render(strings.Join(parts, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
