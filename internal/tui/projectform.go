package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// ProjectForm is the create/rename project overlay.
type ProjectForm struct {
	mode      string // "add" or "rename"
	projectID string // For rename mode

	nameInput textinput.Model
	descInput textinput.Model

	focusIndex int // 0=name, 1=description
	width      int
}

// NewProjectForm creates a project form.
func NewProjectForm(mode string, width int) *ProjectForm {
	name := textinput.New()
	name.Placeholder = "Project name"
	name.CharLimit = 200
	name.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500
	desc.Width = 40

	pf := &ProjectForm{
		mode:      mode,
		nameInput: name,
		descInput: desc,
		width:     width,
	}
	pf.nameInput.Focus()
	return pf
}

// PreFill fills the form for renaming an existing project.
func (pf *ProjectForm) PreFill(projectID, name string) {
	pf.projectID = projectID
	pf.nameInput.SetValue(name)
}

// ProjectID returns the target project id in rename mode.
func (pf *ProjectForm) ProjectID() string {
	return pf.projectID
}

// Mode returns "add" or "rename".
func (pf *ProjectForm) Mode() string {
	return pf.mode
}

// FocusNext moves to the next field. Rename mode has only the name field.
func (pf *ProjectForm) FocusNext() {
	if pf.mode == "rename" {
		return
	}
	pf.nameInput.Blur()
	pf.descInput.Blur()
	pf.focusIndex = (pf.focusIndex + 1) % 2
	if pf.focusIndex == 0 {
		pf.nameInput.Focus()
	} else {
		pf.descInput.Focus()
	}
}

// Name returns the current name value.
func (pf *ProjectForm) Name() string {
	return strings.TrimSpace(pf.nameInput.Value())
}

// Description returns the current description value.
func (pf *ProjectForm) Description() string {
	return strings.TrimSpace(pf.descInput.Value())
}

// FocusedInput returns the focused input model for update forwarding.
func (pf *ProjectForm) FocusedInput() *textinput.Model {
	if pf.focusIndex == 1 {
		return &pf.descInput
	}
	return &pf.nameInput
}

// View renders the project form overlay.
func (pf *ProjectForm) View() string {
	title := "New Project"
	if pf.mode == "rename" {
		title = "Rename Project"
	}

	parts := make([]string, 0, 8)
	parts = append(parts, overlayTitleStyle.Render(title))
	parts = append(parts, lipgloss.NewStyle().Bold(true).Render("Name:"), pf.nameInput.View(), "")
	if pf.mode == "add" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render("Description:"), pf.descInput.View(), "")
	}
	parts = append(parts, dimTextStyle.Render("Enter save  |  Tab next field  |  Esc cancel"))

	formWidth := pf.width
	if formWidth > 50 {
		formWidth = 50
	}
	return overlayStyle.Width(formWidth).Render(strings.Join(parts, "\n"))
}
