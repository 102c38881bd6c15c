package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentscope-io/agentscope/internal/models"
)

// RunDetail displays one run with its full payloads and step trace.
type RunDetail struct {
	run      *models.Run
	steps    []models.RunStep
	viewport viewport.Model
	width    int
	height   int
}

// NewRunDetail creates an empty detail view.
func NewRunDetail() *RunDetail {
	vp := viewport.New(80, 24)
	return &RunDetail{viewport: vp}
}

// SetSize updates dimensions and re-renders the content.
func (d *RunDetail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	d.refresh()
}

// SetRun replaces the run and resets the scroll position.
func (d *RunDetail) SetRun(run *models.Run) {
	d.run = run
	d.steps = nil
	d.refresh()
	d.viewport.GotoTop()
}

// SetSteps attaches the step trace. Ignored if it belongs to another run.
func (d *RunDetail) SetSteps(runID string, steps []models.RunStep) {
	if d.run == nil || d.run.ID != runID {
		return
	}
	d.steps = steps
	d.refresh()
}

// RunID returns the displayed run's id, or "".
func (d *RunDetail) RunID() string {
	if d.run == nil {
		return ""
	}
	return d.run.ID
}

// ScrollUp scrolls the content up.
func (d *RunDetail) ScrollUp() {
	d.viewport.LineUp(1)
}

// ScrollDown scrolls the content down.
func (d *RunDetail) ScrollDown() {
	d.viewport.LineDown(1)
}

// View renders the detail viewport.
func (d *RunDetail) View() string {
	if d.run == nil {
		return dimTextStyle.Render("No run loaded.")
	}
	return d.viewport.View()
}

func (d *RunDetail) refresh() {
	if d.run == nil {
		return
	}
	d.viewport.SetContent(d.render())
}

func (d *RunDetail) render() string {
	r := d.run
	var lines []string

	badge := statusStyle(r.Status).Render(statusGlyph(r.Status) + " " + r.Status)
	lines = append(lines,
		sectionHeaderStyle.Render(r.AgentName)+"  "+badge,
		dimTextStyle.Render(r.ID),
		"")

	lines = append(lines, detailField("Started", r.StartedAt.Local().Format("Jan 02 2006 15:04:05")))
	if r.EndedAt != nil {
		lines = append(lines, detailField("Ended", r.EndedAt.Local().Format("Jan 02 2006 15:04:05")))
	}
	if dur, ok := r.Duration(); ok {
		lines = append(lines, detailField("Duration", dur.String()))
	}
	if r.ExternalID != nil {
		lines = append(lines, detailField("External ID", *r.ExternalID))
	}

	lines = append(lines, d.renderDocument("Input", r.Input)...)
	lines = append(lines, d.renderDocument("Output", r.Output)...)
	lines = append(lines, d.renderDocument("Metadata", r.MetaData)...)
	lines = append(lines, d.renderDocument("Error", r.Error)...)

	lines = append(lines, "", sectionHeaderStyle.Render(fmt.Sprintf("Steps (%d)", len(d.steps))))
	if len(d.steps) == 0 {
		lines = append(lines, dimTextStyle.Render("  no steps recorded"))
	}
	for _, s := range d.steps {
		lines = append(lines, d.renderStep(s)...)
	}

	return strings.Join(lines, "\n")
}

func (d *RunDetail) renderStep(s models.RunStep) []string {
	head := fmt.Sprintf("  #%d %s", s.StepIndex, s.StepType)
	if s.Name != "" {
		head += "  " + s.Name
	}

	var extras []string
	if s.TokensUsed != nil {
		extras = append(extras, fmt.Sprintf("%d tokens", *s.TokensUsed))
	}
	if s.LatencyMs != nil {
		extras = append(extras, fmt.Sprintf("%d ms", *s.LatencyMs))
	}
	if len(extras) > 0 {
		head += "  " + dimTextStyle.Render("("+strings.Join(extras, ", ")+")")
	}

	out := []string{"", statusStepStyle(s.StepType).Render(head)}
	if !s.Error.IsEmpty() {
		out = append(out, indentDocument(s.Error, 4)...)
	}
	return out
}

func (d *RunDetail) renderDocument(label string, doc models.Document) []string {
	if doc.IsEmpty() {
		return nil
	}
	out := []string{"", lipgloss.NewStyle().Bold(true).Render(label)}
	out = append(out, indentDocument(doc, 2)...)
	return out
}

func detailField(label, value string) string {
	return fmt.Sprintf("%s %s",
		dimTextStyle.Width(12).Render(label),
		value)
}

func indentDocument(doc models.Document, indent int) []string {
	pretty := doc.Pretty()
	pad := strings.Repeat(" ", indent)
	raw := strings.Split(pretty, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		out = append(out, pad+l)
	}
	return out
}

func statusStepStyle(stepType string) lipgloss.Style {
	if stepType == models.StepTypeError {
		return statusFailedStyle
	}
	return lipgloss.NewStyle()
}
