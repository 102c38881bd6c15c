package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentscope-io/agentscope/internal/models"
)

var tabTitles = []string{"Dashboard", "Runs", "Projects", "API Keys"}

func renderHeader(project *models.Project, activeTab int, width int) string {
	brand := lipgloss.NewStyle().Bold(true).Render("AgentScope")

	tabs := renderTabs(tabTitles, activeTab)

	// Active project badge
	badge := ""
	if project != nil {
		badge = lipgloss.NewStyle().Foreground(colorCyan).Render("● " + project.Name)
	} else {
		badge = dimTextStyle.Render("no project")
	}

	left := fmt.Sprintf(" %s  %s", brand, tabs)
	right := badge + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	var parts []string
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}
