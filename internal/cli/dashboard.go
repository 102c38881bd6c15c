package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Open the full-screen dashboard",
	RunE:    runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run()
}
