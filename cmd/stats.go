package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/cli/handlers"
	"github.com/xolan/lifelog/internal/stats"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the statistics dashboard",
	Long: `Show the statistics dashboard:
  - records per category with their share, for the selected range
  - the five most visited locations, over all records
  - records per day for the last seven days

Ranges: week (the last seven days, default), month, year.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowStats(cmd.Context(), cli.GetDeps(), timeRange(cmd))
	},
}

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show totals and recent records",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowProfile(cmd.Context(), cli.GetDeps())
	},
}

func init() {
	statsCmd.Flags().StringP("range", "r", string(stats.Week), "Time range: week, month or year")
	rootCmd.AddCommand(statsCmd, profileCmd)
}

// timeRange reads --range; unknown values fall back to all records
func timeRange(cmd *cobra.Command) stats.TimeRange {
	raw, _ := cmd.Flags().GetString("range")
	return stats.ParseTimeRange(raw)
}
