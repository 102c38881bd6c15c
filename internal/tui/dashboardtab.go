package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/agentscope-io/agentscope/internal/models"
)

// DashboardTab shows aggregate stats and recent runs for the active project.
type DashboardTab struct {
	projectID string
	stats     *models.ProjectStats
	recent    []models.RunSummary
	loading   bool
}

// NewDashboardTab creates an empty dashboard.
func NewDashboardTab() *DashboardTab {
	return &DashboardTab{}
}

// SetLoading marks the dashboard as waiting for data for projectID.
func (d *DashboardTab) SetLoading(projectID string) {
	d.loading = true
	if d.projectID != projectID {
		d.projectID = projectID
		d.stats = nil
		d.recent = nil
	}
}

// SetStats attaches stats. Ignored if they belong to another project.
func (d *DashboardTab) SetStats(projectID string, stats models.ProjectStats) {
	if d.projectID != projectID {
		return
	}
	d.stats = &stats
	d.loading = false
}

// SetRecent attaches the recent run sample.
func (d *DashboardTab) SetRecent(projectID string, runs []models.RunSummary) {
	if d.projectID != projectID {
		return
	}
	if len(runs) > 5 {
		runs = runs[:5]
	}
	d.recent = runs
}

// View renders the dashboard tab.
func (d *DashboardTab) View(project *models.Project, width int) string {
	if project == nil {
		return dimTextStyle.Render("No project selected. Create one on the Projects tab.")
	}

	var lines []string
	lines = append(lines, sectionHeaderStyle.Render(project.Name))
	if project.Description != nil && *project.Description != "" {
		lines = append(lines, dimTextStyle.Render(*project.Description))
	}
	lines = append(lines, "")

	if d.loading && d.stats == nil {
		lines = append(lines, dimTextStyle.Render("Loading stats..."))
		return strings.Join(lines, "\n")
	}
	if d.stats == nil {
		lines = append(lines, dimTextStyle.Render("No stats available."))
		return strings.Join(lines, "\n")
	}

	s := d.stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total runs", fmt.Sprintf("%d", s.TotalRuns)),
		" ",
		statCard("Failed", fmt.Sprintf("%d", s.FailedRuns)),
		" ",
		statCard("Avg latency", formatLatency(s.AvgLatencyMs)),
		" ",
		statCard("Pass rate", formatRate(s.TestPassRate)),
		" ",
		statCard("Last 24h", fmt.Sprintf("%d", s.RecentRuns)),
	)
	lines = append(lines, cards, "")

	lines = append(lines, sectionHeaderStyle.Render("Recent runs"))
	if len(d.recent) == 0 {
		lines = append(lines, dimTextStyle.Render("  none yet"))
	}
	for _, r := range d.recent {
		badge := statusStyle(r.Status).Render(statusGlyph(r.Status))
		row := fmt.Sprintf("  %s %-24s %8s  %s",
			badge,
			ansi.Truncate(r.AgentName, 24, "…"),
			formatDurationMs(r.DurationMs),
			r.StartedAt.Local().Format("Jan 02 15:04:05"),
		)
		lines = append(lines, ansi.Truncate(row, width-2, "…"))
	}

	return strings.Join(lines, "\n")
}

func statCard(label, value string) string {
	content := statValueStyle.Render(value) + "\n" + statLabelStyle.Render(label)
	return statCardStyle.Render(content)
}

func formatLatency(ms *float64) string {
	if ms == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f ms", *ms)
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", *rate*100)
}
