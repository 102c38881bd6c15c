package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/buildinfo"
	"github.com/agentscope-io/agentscope/internal/updater"
)

var versionCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%s %s\n", styleBrand.Render("AgentScope"), buildinfo.Version)
		fmt.Printf("  Commit: %s\n", buildinfo.CommitHash)
		fmt.Printf("  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  Go: %s\n", runtime.Version())

		if !versionCheckUpdate {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := updater.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if result.Available {
			fmt.Printf("\n%s v%s → v%s\n", styleWarning.Render("Update available:"),
				result.CurrentVersion, result.LatestVersion)
			fmt.Println(styleHint.Render(result.ReleaseURL))
		} else {
			fmt.Println(styleSuccess.Render("\nUp to date."))
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheckUpdate, "check", false, "check GitHub for a newer release")
}
