// Package cmd defines the lifelog command line.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "lifelog",
	Short: "A personal journal for the terminal",
	Long: `lifelog keeps a personal journal of what you did, where, and when.

Usage:
  lifelog                                        List all records, newest first
  lifelog add --title 'Morning run' -c sport     Record something (date and time default to now)
  lifelog show <id>                              Show one record in full
  lifelog edit <id> --location Park              Change fields of a record
  lifelog delete <id>                            Delete a record (with confirmation)
  lifelog stats --range week|month|year          Category breakdown, top places and 7-day trend
  lifelog profile                                Totals and the five most recent records
  lifelog export json|csv|zip|pdf                Export records (pdf exports the stats view)
  lifelog clear                                  Delete every record (with confirmation)
  lifelog tui                                    Interactive terminal UI

Categories: life, work, study, travel, food, sport, creation, other`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ListRecords(cmd.Context(), cli.GetDeps(), nil)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = cli.GetDeps().Close()
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check stored data health",
	Long:  `Inspect the stored record collection and report corrupted elements or duplicate ids.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateStorage(cmd.Context(), cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"lifelog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
