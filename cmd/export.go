package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/cli/handlers"
	"github.com/xolan/lifelog/internal/stats"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <json|csv|zip|pdf>",
	Short: "Export records",
	Long: `Export records to a file named after today's date:

  json   records_<date>.json   every record as a JSON array
  csv    records_<date>.csv    every record, one row each
  zip    records_<date>.zip    both of the above in one archive
  pdf    stats_<date>.pdf      the statistics dashboard for --range

Files are written to export_dir (default: the current directory).
Use --output to choose the path, or --output - to write to stdout.`,
	ValidArgs: []string{"json", "csv", "zip", "pdf"},
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		handlers.ExportRecords(cmd.Context(), cli.GetDeps(), args[0], timeRange(cmd), output)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output path, or - for stdout")
	exportCmd.Flags().StringP("range", "r", string(stats.Week), "Time range of the pdf dashboard: week, month or year")
	rootCmd.AddCommand(exportCmd)
}
