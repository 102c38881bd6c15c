package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/agentscope-io/agentscope/internal/models"
)

// ProjectList is the project table shown on the Projects tab.
type ProjectList struct {
	projects     []models.Project
	activeID     string
	cursor       int
	scrollOffset int
	height       int
}

// NewProjectList creates an empty project list.
func NewProjectList() *ProjectList {
	return &ProjectList{}
}

// SetProjects replaces the project collection and clamps the cursor.
func (pl *ProjectList) SetProjects(projects []models.Project) {
	pl.projects = projects
	if pl.cursor >= len(projects) {
		pl.cursor = len(projects) - 1
	}
	if pl.cursor < 0 {
		pl.cursor = 0
	}
}

// SetActive marks the project shown with the selection dot.
func (pl *ProjectList) SetActive(id string) {
	pl.activeID = id
}

// SetHeight sets the visible height.
func (pl *ProjectList) SetHeight(h int) {
	pl.height = h
}

// Selected returns the project under the cursor, or nil.
func (pl *ProjectList) Selected() *models.Project {
	if pl.cursor < 0 || pl.cursor >= len(pl.projects) {
		return nil
	}
	return &pl.projects[pl.cursor]
}

// MoveUp moves the cursor up.
func (pl *ProjectList) MoveUp() {
	if pl.cursor > 0 {
		pl.cursor--
	}
	pl.ensureVisible()
}

// MoveDown moves the cursor down.
func (pl *ProjectList) MoveDown() {
	if pl.cursor < len(pl.projects)-1 {
		pl.cursor++
	}
	pl.ensureVisible()
}

func (pl *ProjectList) ensureVisible() {
	if pl.cursor < pl.scrollOffset {
		pl.scrollOffset = pl.cursor
	}
	if pl.cursor >= pl.scrollOffset+pl.height {
		pl.scrollOffset = pl.cursor - pl.height + 1
	}
}

// View renders the project table.
func (pl *ProjectList) View(width int) string {
	var lines []string
	lines = append(lines, sectionHeaderStyle.Render(fmt.Sprintf("Projects (%d)", len(pl.projects))), "")

	if len(pl.projects) == 0 {
		lines = append(lines, dimTextStyle.Render("No projects. Press 'a' to create one."))
		return strings.Join(lines, "\n")
	}

	end := pl.scrollOffset + pl.height
	if end > len(pl.projects) {
		end = len(pl.projects)
	}

	if pl.scrollOffset > 0 {
		lines = append(lines, dimTextStyle.Render("  ▲ more"))
	}

	for i := pl.scrollOffset; i < end; i++ {
		p := pl.projects[i]

		dot := "  "
		if p.ID == pl.activeID {
			dot = statusRunningStyle.Render("● ")
		}

		desc := ""
		if p.Description != nil && *p.Description != "" {
			desc = dimTextStyle.Render("  " + *p.Description)
		}

		row := fmt.Sprintf("%s%-28s%s", dot, ansi.Truncate(p.Name, 28, "…"), desc)
		row = ansi.Truncate(row, width-2, "…")

		if i == pl.cursor {
			lines = append(lines, selectedItemStyle.Width(width).Render("  "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	if end < len(pl.projects) {
		lines = append(lines, dimTextStyle.Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}
