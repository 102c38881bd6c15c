package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/models"
	"github.com/agentscope-io/agentscope/internal/tracker"
)

// The track commands let shell-based agents report runs without linking the
// Go tracker package. They authenticate with a project API key, not the user
// session, mirroring the ingest API.

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Report agent runs to the server using an API key",
	Long: `Report agent runs to the server using an API key.

The key is taken from --api-key or the AGENTSCOPE_API_KEY environment
variable. Typical usage from a script:

  run_id=$(agentscope track start my-agent --input '{"query":"..."}')
  agentscope track step "$run_id" search --type tool_call --output '{"hits":3}'
  agentscope track end "$run_id" --status completed`,
}

var trackStartCmd = &cobra.Command{
	Use:   "start [agent-name]",
	Short: "Start a run and print its id",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackStart,
}

var trackStepCmd = &cobra.Command{
	Use:   "step [run-id] [name]",
	Short: "Append a step to a run",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrackStep,
}

var trackEndCmd = &cobra.Command{
	Use:   "end [run-id]",
	Short: "Mark a run finished",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackEnd,
}

var (
	trackAPIKey     string
	trackInput      string
	trackOutput     string
	trackError      string
	trackExternalID string
	trackStepType   string
	trackTokens     int
	trackLatencyMs  int
	trackStatus     string
)

func init() {
	trackCmd.PersistentFlags().StringVar(&trackAPIKey, "api-key", "", "project API key (defaults to $AGENTSCOPE_API_KEY)")

	trackStartCmd.Flags().StringVar(&trackInput, "input", "", "run input as JSON")
	trackStartCmd.Flags().StringVar(&trackExternalID, "external-id", "", "caller-supplied correlation id")

	trackStepCmd.Flags().StringVar(&trackStepType, "type", models.StepTypeCustom, "step type (llm_call|tool_call|retrieval|custom|error)")
	trackStepCmd.Flags().StringVar(&trackInput, "input", "", "step input as JSON")
	trackStepCmd.Flags().StringVar(&trackOutput, "output", "", "step output as JSON")
	trackStepCmd.Flags().StringVar(&trackError, "error", "", "step error as JSON")
	trackStepCmd.Flags().IntVar(&trackTokens, "tokens", 0, "tokens consumed")
	trackStepCmd.Flags().IntVar(&trackLatencyMs, "latency-ms", 0, "step latency in milliseconds")

	trackEndCmd.Flags().StringVar(&trackStatus, "status", models.RunStatusCompleted, "final status (completed|failed)")
	trackEndCmd.Flags().StringVar(&trackOutput, "output", "", "run output as JSON")
	trackEndCmd.Flags().StringVar(&trackError, "error", "", "run error as JSON")

	trackCmd.AddCommand(trackEndCmd)
	trackCmd.AddCommand(trackStartCmd)
	trackCmd.AddCommand(trackStepCmd)
}

func buildTracker() (*tracker.Tracker, error) {
	key := trackAPIKey
	if key == "" {
		key = os.Getenv("AGENTSCOPE_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("an API key is required: pass --api-key or set AGENTSCOPE_API_KEY")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return tracker.New(settings.ServerURL, key)
}

func runTrackStart(cmd *cobra.Command, args []string) error {
	t, err := buildTracker()
	if err != nil {
		return err
	}

	opts := tracker.StartOptions{ExternalID: trackExternalID}
	if opts.Input, err = parseDocumentFlag(trackInput); err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	run, err := t.StartRun(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}

	fmt.Println(run.ID)
	return nil
}

func runTrackStep(cmd *cobra.Command, args []string) error {
	t, err := buildTracker()
	if err != nil {
		return err
	}

	step := tracker.Step{Type: trackStepType, Name: args[1]}
	if step.Input, err = parseDocumentFlag(trackInput); err != nil {
		return err
	}
	if step.Output, err = parseDocumentFlag(trackOutput); err != nil {
		return err
	}
	if step.Error, err = parseDocumentFlag(trackError); err != nil {
		return err
	}
	if trackTokens > 0 {
		step.TokensUsed = &trackTokens
	}
	if trackLatencyMs > 0 {
		step.LatencyMs = &trackLatencyMs
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := t.AddStepTo(ctx, args[0], step); err != nil {
		return fmt.Errorf("failed to add step: %w", err)
	}
	return nil
}

func runTrackEnd(cmd *cobra.Command, args []string) error {
	t, err := buildTracker()
	if err != nil {
		return err
	}

	output, err := parseDocumentFlag(trackOutput)
	if err != nil {
		return err
	}
	errDoc, err := parseDocumentFlag(trackError)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := t.EndRunByID(ctx, args[0], trackStatus, output, errDoc); err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	return nil
}

func parseDocumentFlag(raw string) (models.Document, error) {
	if raw == "" {
		return nil, nil
	}
	doc := models.Document(raw)
	if doc.IsEmpty() || !doc.Valid() {
		return nil, fmt.Errorf("invalid JSON document: %s", raw)
	}
	return doc, nil
}
