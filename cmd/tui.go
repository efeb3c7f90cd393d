package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Open the full-screen journal.

Tabs:
  1 Create   write a record, browse and edit the five most recent
  2 Stats    week/month/year breakdown, top locations, 7-day trend, PDF export
  3 Profile  totals, JSON/CSV/ZIP export, clear all records
  4 Config   active settings and theme picker

Tab/Shift+Tab cycles tabs, ? shows the keys for the current tab and
q or Ctrl+C quits. The same UI opens with "lifelog --tui".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		launchTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

func launchTUI(cmd *cobra.Command) {
	d := cli.GetDeps()

	if d.IsTerminal != nil && !d.IsTerminal() {
		_, _ = fmt.Fprintln(d.Stderr, "Error: the terminal UI needs an interactive terminal")
		d.Exit(1)
		return
	}

	services, err := d.Svc(cmd.Context())
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error initializing services: %v\n", err)
		d.Exit(1)
		return
	}

	if err := tui.Run(cmd.Context(), services); err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error running TUI: %v\n", err)
		d.Exit(1)
	}
}

// CheckTUIFlag launches the TUI when --tui was given and reports whether it did.
func CheckTUIFlag(cmd *cobra.Command) bool {
	if on, _ := cmd.Root().PersistentFlags().GetBool("tui"); !on {
		return false
	}
	launchTUI(cmd)
	return true
}
