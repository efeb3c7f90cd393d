package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display configuration settings",
	Long: `Display the current effective configuration for lifelog.

lifelog works without a configuration file. Defaults:
  - timezone: Local
  - backend: file (one JSON file in the user config directory)
  - storage_key: n_app_records

Configuration file location:
  ~/.config/lifelog/config.toml          Linux
  %APPDATA%\lifelog\config.toml          Windows
  $LIFELOG_CONFIG                        when set

Run 'lifelog config init' to write a commented sample file.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(cli.GetDeps())
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample configuration file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(cli.GetDeps())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
