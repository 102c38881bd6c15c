package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentscope-io/agentscope/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change client settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a client setting.

Keys:
  server      AgentScope server URL
  theme       system | light | dark
  page-size   default number of runs per page`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fmt.Printf("%s %s\n", styleLabel.Render("server:"), settings.ServerURL)
	fmt.Printf("%s %s\n", styleLabel.Render("theme:"), settings.Appearance.Theme)
	fmt.Printf("%s %d\n", styleLabel.Render("page-size:"), settings.Defaults.RunPageSize)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	key, value := args[0], args[1]
	switch key {
	case "server":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid server URL: %s", value)
		}
		settings.ServerURL = value
	case "theme":
		if value != "system" && value != "light" && value != "dark" {
			return fmt.Errorf("theme must be 'system', 'light' or 'dark'")
		}
		settings.Appearance.Theme = value
	case "page-size":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("page-size must be a positive number")
		}
		settings.Defaults.RunPageSize = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}

	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
