package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confirmMode values.
const (
	confirmNone          = 0
	confirmDeleteProject = 1
	confirmRevokeKey     = 2
	confirmLogout        = 3
)

func renderStatusBar(m *Model, width int) string {
	// Handle confirm mode
	if m.confirmMode == confirmDeleteProject {
		return renderConfirmBar(
			fmt.Sprintf("Delete project %q? Runs and keys go with it. (y/n)", m.confirmLabel),
			width,
		)
	}
	if m.confirmMode == confirmRevokeKey {
		return renderConfirmBar(
			fmt.Sprintf("Revoke key %q? Agents using it stop reporting. (y/n)", m.confirmLabel),
			width,
		)
	}
	if m.confirmMode == confirmLogout {
		return renderConfirmBar(
			"Log out? (y/n)",
			width,
		)
	}

	// Error display
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	// Saved indicator
	if m.savedNote != "" {
		return renderSavedBar(m.savedNote, width)
	}

	// Context-sensitive key hints
	hints := getKeyHints(m)
	left := " " + hints

	// Session indicator
	right := ""
	if user := m.sessions.User(); user != nil {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render(user.DisplayName()) + " "
	} else {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("signed out") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.screen == screenLogin {
		return keyHint("Tab", "next field") + "  " + keyHint("Enter", "submit") + "  " +
			keyHint("Ctrl+r", "toggle register") + "  " + keyHint("Ctrl+q", "quit")
	}

	if m.activeOverlay != overlayNone {
		if m.activeOverlay == overlayCreatedSecret {
			return keyHint("Esc", "dismiss")
		}
		return keyHint("Enter", "save") + "  " + keyHint("Esc", "cancel")
	}

	if m.screen == screenRunDetail {
		return keyHint("Esc", "back") + "  " + keyHint("j/k", "scroll") + "  " + keyHint("r", "refresh")
	}

	base := keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " + keyHint("Tab", "switch") + "  " +
		keyHint("r", "refresh")

	switch m.activeTab {
	case tabDashboard:
		return base
	case tabRuns:
		return base + "  " + keyHint("Enter", "open") + "  " + keyHint("f", "filter") + "  " +
			keyHint("[/]", "page")
	case tabProjects:
		return base + "  " + keyHint("Enter", "select") + "  " + keyHint("a", "add") + "  " +
			keyHint("e", "rename") + "  " + keyHint("x", "delete")
	case tabKeys:
		return base + "  " + keyHint("a", "add") + "  " + keyHint("x", "revoke")
	}

	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(note string, width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render(note))
}
