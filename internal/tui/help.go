package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"q / Ctrl+q", "Quit"},
			{"?", "Toggle help"},
			{"Tab", "Next tab"},
			{"1/2/3/4", "Jump to tab"},
			{"r", "Refresh current tab"},
			{"Ctrl+l", "Log out"},
		},
	},
	{
		title: "Runs",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate runs"},
			{"Enter", "Open run detail"},
			{"f", "Cycle status filter"},
			{"[ / ]", "Previous / next page"},
		},
	},
	{
		title: "Run Detail",
		keys: []helpKey{
			{"j/k ↑/↓", "Scroll steps"},
			{"Esc", "Back to list"},
		},
	},
	{
		title: "Projects",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate projects"},
			{"Enter", "Select active project"},
			{"a", "Create project"},
			{"e", "Rename project"},
			{"x", "Delete project"},
		},
	},
	{
		title: "API Keys",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate keys"},
			{"a", "Create key"},
			{"x", "Revoke key"},
		},
	},
	{
		title: "Overlays",
		keys: []helpKey{
			{"Enter", "Save"},
			{"Esc", "Cancel / Close"},
			{"Tab", "Next field"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or ? to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
