package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentscope-io/agentscope/internal/models"
)

// KeyForm is the create API key overlay.
type KeyForm struct {
	nameInput textinput.Model
	width     int
}

// NewKeyForm creates a key form.
func NewKeyForm(width int) *KeyForm {
	name := textinput.New()
	name.Placeholder = "Key name (optional)"
	name.CharLimit = 200
	name.Width = 40
	name.Focus()

	return &KeyForm{nameInput: name, width: width}
}

// Name returns the current name value.
func (kf *KeyForm) Name() string {
	return strings.TrimSpace(kf.nameInput.Value())
}

// Input returns the input model for update forwarding.
func (kf *KeyForm) Input() *textinput.Model {
	return &kf.nameInput
}

// View renders the key form overlay.
func (kf *KeyForm) View() string {
	parts := []string{
		overlayTitleStyle.Render("New API Key"),
		lipgloss.NewStyle().Bold(true).Render("Name:"),
		kf.nameInput.View(),
		"",
		dimTextStyle.Render("Enter create  |  Esc cancel"),
	}

	formWidth := kf.width
	if formWidth > 50 {
		formWidth = 50
	}
	return overlayStyle.Width(formWidth).Render(strings.Join(parts, "\n"))
}

// renderCreatedSecret renders the one-time secret overlay after key creation.
func renderCreatedSecret(key models.CreatedAPIKey, width int) string {
	name := ""
	if key.Name != nil && *key.Name != "" {
		name = " " + dimTextStyle.Render("("+*key.Name+")")
	}

	parts := []string{
		overlayTitleStyle.Render("API Key Created") + name,
		secretStyle.Render(key.Key),
		"",
		lipgloss.NewStyle().Foreground(colorYellow).Render("Copy it now. This is the only time the full key is shown."),
		"",
		dimTextStyle.Render("Esc dismiss"),
	}

	formWidth := width - 4
	if formWidth > 60 {
		formWidth = 60
	}
	return overlayStyle.Width(formWidth).Render(strings.Join(parts, "\n"))
}
