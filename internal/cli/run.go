package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/models"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Inspect agent runs",
}

var runListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List runs for the selected project",
	RunE:    runRunList,
}

var runShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one run with its payloads",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunShow,
}

var runStepsCmd = &cobra.Command{
	Use:   "steps [run-id]",
	Short: "Show a run's step trace",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunSteps,
}

var (
	runProjectFlag string
	runStatusFlag  string
	runLimitFlag   int
	runOffsetFlag  int
)

func init() {
	runListCmd.Flags().StringVarP(&runProjectFlag, "project", "p", "", "project id or name (defaults to the selected project)")
	runListCmd.Flags().StringVarP(&runStatusFlag, "status", "s", "", "filter by status (running|completed|failed)")
	runListCmd.Flags().IntVar(&runLimitFlag, "limit", 0, "maximum runs to return")
	runListCmd.Flags().IntVar(&runOffsetFlag, "offset", 0, "pagination offset")

	runCmd.AddCommand(runListCmd)
	runCmd.AddCommand(runShowCmd)
	runCmd.AddCommand(runStepsCmd)
}

func runRunList(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	p, err := d.resolveProject(ctx, runProjectFlag)
	if err != nil {
		return err
	}

	limit := runLimitFlag
	if limit == 0 {
		limit = d.settings.Defaults.RunPageSize
	}
	status := runStatusFlag
	if status == "" {
		status = d.settings.Defaults.StatusFilter
	}

	runs, err := d.client.ListRuns(ctx, runsQuery(p.ID, status, limit, runOffsetFlag))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs in %s yet.\n", p.Name)
		return nil
	}

	width := terminalWidth()
	fmt.Printf("%-38s %-14s %-20s %-10s %6s %10s\n",
		styleLabel.Render("RUN"),
		styleLabel.Render("STATUS"),
		styleLabel.Render("STARTED"),
		styleLabel.Render("AGENT"),
		styleLabel.Render("STEPS"),
		styleLabel.Render("TIME"))
	for _, r := range runs {
		line := fmt.Sprintf("%-38s %-14s %-20s %-10s %6d %10s",
			r.ID,
			statusBadge(r.Status),
			formatTime(r.StartedAt),
			fit(r.AgentName, 10),
			r.StepCount,
			formatDuration(r.DurationMs))
		fmt.Println(fit(line, width))
	}
	return nil
}

func runRunShow(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	r, err := d.client.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	fmt.Printf("%s %s\n", styleLabel.Render("Run:"), styleValue.Render(r.ID))
	fmt.Printf("%s %s\n", styleLabel.Render("Agent:"), styleValue.Render(r.AgentName))
	fmt.Printf("%s %s\n", styleLabel.Render("Status:"), statusBadge(r.Status))
	if r.ExternalID != nil {
		fmt.Printf("%s %s\n", styleLabel.Render("External:"), styleValue.Render(*r.ExternalID))
	}
	fmt.Printf("%s %s\n", styleLabel.Render("Started:"), formatTime(r.StartedAt))
	if dur, ok := r.Duration(); ok {
		fmt.Printf("%s %s (%s)\n", styleLabel.Render("Ended:"), formatTime(*r.EndedAt), dur)
	}

	printDocument("Input", r.Input.Pretty())
	printDocument("Output", r.Output.Pretty())
	printDocument("Metadata", r.MetaData.Pretty())
	printDocument("Error", r.Error.Pretty())
	return nil
}

func runRunSteps(cmd *cobra.Command, args []string) error {
	d, err := buildAuthedDeps()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	steps, err := d.client.ListRunSteps(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}
	if len(steps) == 0 {
		fmt.Println("No steps recorded.")
		return nil
	}

	for _, s := range steps {
		head := fmt.Sprintf("#%d  %s  %s", s.StepIndex, styleBrand.Render(s.StepType), styleValue.Render(s.Name))
		var extras []string
		if s.TokensUsed != nil {
			extras = append(extras, fmt.Sprintf("%d tokens", *s.TokensUsed))
		}
		if s.LatencyMs != nil {
			extras = append(extras, fmt.Sprintf("%d ms", *s.LatencyMs))
		}
		if !s.Error.IsEmpty() {
			extras = append(extras, styleWarning.Render("error"))
		}
		if len(extras) > 0 {
			head += "  " + styleHint.Render("("+strings.Join(extras, ", ")+")")
		}
		fmt.Println(fit(head, terminalWidth()))
	}
	return nil
}

func runsQuery(projectID, status string, limit, offset int) models.RunsQuery {
	return models.RunsQuery{
		ProjectID: projectID,
		Status:    status,
		Limit:     limit,
		Offset:    offset,
	}
}

func printDocument(label, body string) {
	if body == "" {
		return
	}
	fmt.Println()
	fmt.Println(styleLabel.Render(label + ":"))
	fmt.Println(body)
}
