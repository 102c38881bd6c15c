// Package cli implements the agentscope CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentscope",
	Short: "Inspect AI agent runs from your terminal",
	Long: `AgentScope is a terminal client for the AgentScope server.
It browses projects, agent runs, step traces and API keys, either through
subcommands or the full-screen dashboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation opens the dashboard.
		return runDashboard(cmd, args)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(whoamiCmd)
}
