package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/agentscope-io/agentscope/internal/models"
)

// statusFilters cycled by the filter key. "" means all runs.
var statusFilters = []string{"", models.RunStatusRunning, models.RunStatusCompleted, models.RunStatusFailed}

// RunList is the run table shown on the Runs tab.
type RunList struct {
	runs         []models.RunSummary
	cursor       int
	scrollOffset int
	height       int
	filterIdx    int
	offset       int
	pageSize     int
	loading      bool
}

// NewRunList creates a run list with the given page size.
func NewRunList(pageSize int) *RunList {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &RunList{pageSize: pageSize}
}

// SetRuns replaces the run page and clamps the cursor.
func (rl *RunList) SetRuns(runs []models.RunSummary) {
	rl.runs = runs
	rl.loading = false
	if rl.cursor >= len(runs) {
		rl.cursor = len(runs) - 1
	}
	if rl.cursor < 0 {
		rl.cursor = 0
	}
}

// SetHeight sets the visible height.
func (rl *RunList) SetHeight(h int) {
	rl.height = h
}

// SetLoading marks the list as waiting for a page.
func (rl *RunList) SetLoading() {
	rl.loading = true
}

// Selected returns the run under the cursor, or nil.
func (rl *RunList) Selected() *models.RunSummary {
	if rl.cursor < 0 || rl.cursor >= len(rl.runs) {
		return nil
	}
	return &rl.runs[rl.cursor]
}

// MoveUp moves the cursor up.
func (rl *RunList) MoveUp() {
	if rl.cursor > 0 {
		rl.cursor--
	}
	rl.ensureVisible()
}

// MoveDown moves the cursor down.
func (rl *RunList) MoveDown() {
	if rl.cursor < len(rl.runs)-1 {
		rl.cursor++
	}
	rl.ensureVisible()
}

// CycleFilter advances to the next status filter and resets paging.
func (rl *RunList) CycleFilter() {
	rl.filterIdx = (rl.filterIdx + 1) % len(statusFilters)
	rl.offset = 0
	rl.cursor = 0
	rl.scrollOffset = 0
}

// NextPage advances the paging offset. Callers reload after calling it.
func (rl *RunList) NextPage() {
	// A short page means there is nothing further.
	if len(rl.runs) < rl.pageSize {
		return
	}
	rl.offset += rl.pageSize
	rl.cursor = 0
	rl.scrollOffset = 0
}

// PrevPage moves the paging offset back.
func (rl *RunList) PrevPage() {
	rl.offset -= rl.pageSize
	if rl.offset < 0 {
		rl.offset = 0
	}
	rl.cursor = 0
	rl.scrollOffset = 0
}

// Query builds the list query for the given project.
func (rl *RunList) Query(projectID string) models.RunsQuery {
	return models.RunsQuery{
		ProjectID: projectID,
		Status:    statusFilters[rl.filterIdx],
		Limit:     rl.pageSize,
		Offset:    rl.offset,
	}
}

func (rl *RunList) ensureVisible() {
	if rl.cursor < rl.scrollOffset {
		rl.scrollOffset = rl.cursor
	}
	if rl.cursor >= rl.scrollOffset+rl.height {
		rl.scrollOffset = rl.cursor - rl.height + 1
	}
}

// View renders the run table.
func (rl *RunList) View(width int) string {
	var lines []string

	filter := statusFilters[rl.filterIdx]
	title := "Runs"
	if filter != "" {
		title = "Runs · " + filter
	}
	if rl.offset > 0 {
		title += fmt.Sprintf(" · page %d", rl.offset/rl.pageSize+1)
	}
	lines = append(lines, sectionHeaderStyle.Render(title), "")

	if rl.loading {
		lines = append(lines, dimTextStyle.Render("Loading runs..."))
		return strings.Join(lines, "\n")
	}

	if len(rl.runs) == 0 {
		lines = append(lines, dimTextStyle.Render("No runs recorded. Point an agent at this project with an API key."))
		return strings.Join(lines, "\n")
	}

	header := fmt.Sprintf("  %-12s %-24s %8s %10s  %s",
		"STATUS", "AGENT", "STEPS", "DURATION", "STARTED")
	lines = append(lines, columnHeaderStyle.Render(ansi.Truncate(header, width, "")))

	end := rl.scrollOffset + rl.height
	if end > len(rl.runs) {
		end = len(rl.runs)
	}

	if rl.scrollOffset > 0 {
		lines = append(lines, dimTextStyle.Render("  ▲ more"))
	}

	for i := rl.scrollOffset; i < end; i++ {
		r := rl.runs[i]

		badge := statusStyle(r.Status).Render(statusGlyph(r.Status) + " " + r.Status)
		pad := 12 - lipgloss.Width(badge)
		if pad < 0 {
			pad = 0
		}

		row := fmt.Sprintf("%s%s %-24s %8d %10s  %s",
			badge,
			strings.Repeat(" ", pad),
			ansi.Truncate(r.AgentName, 24, "…"),
			r.StepCount,
			formatDurationMs(r.DurationMs),
			r.StartedAt.Local().Format("Jan 02 15:04:05"),
		)
		row = ansi.Truncate(row, width-2, "…")

		if i == rl.cursor {
			lines = append(lines, selectedItemStyle.Width(width).Render("  "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	if end < len(rl.runs) {
		lines = append(lines, dimTextStyle.Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

func formatDurationMs(ms *int64) string {
	if ms == nil {
		return "—"
	}
	d := time.Duration(*ms) * time.Millisecond
	if d < time.Second {
		return fmt.Sprintf("%dms", *ms)
	}
	return d.Round(100 * time.Millisecond).String()
}
