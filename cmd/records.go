package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/cli/handlers"
	"github.com/xolan/lifelog/internal/filter"
	"github.com/xolan/lifelog/internal/record"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a record",
	Long: `Create a new record. Only the title is required; date and time default
to now and the category defaults to life.

Examples:
  lifelog add --title 'Morning run' --category sport --location Park
  lifelog add -t 'Hotpot' -c food -d 2024-05-01 --time 19:30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddRecord(cmd.Context(), cli.GetDeps(), recordInput(cmd))
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List records, newest first",
	Long: `List records sorted by date and time, newest first.

Filters combine: --search matches title or description, --location matches a
substring of the place, --category and --date match exactly.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := listFilter(cmd)
		if err != nil {
			d := cli.GetDeps()
			_, _ = fmt.Fprintf(d.Stderr, "Error: %v\n", err)
			d.Exit(1)
			return
		}
		handlers.ListRecords(cmd.Context(), cli.GetDeps(), f)
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one record in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowRecord(cmd.Context(), cli.GetDeps(), args[0])
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing record",
	Long: `Replace fields of an existing record. Fields without a flag keep their
current value; the id and creation time never change.

Examples:
  lifelog edit 1714723200000 --title 'Evening run'
  lifelog edit 1714723200000 --category work --location Office`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.EditRecord(cmd.Context(), cli.GetDeps(), args[0], recordInput(cmd))
	},
}

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a record",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.DeleteRecord(cmd.Context(), cli.GetDeps(), args[0], yes)
	},
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record",
	Long: `Delete every record. This cannot be undone; export first if in doubt.
Asks for confirmation unless --yes is given, and refuses to run unattended
without --yes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.ClearRecords(cmd.Context(), cli.GetDeps(), yes)
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringP("title", "t", "", "Title")
		c.Flags().StringP("date", "d", "", "Date (YYYY-MM-DD)")
		c.Flags().String("time", "", "Time (HH:MM)")
		c.Flags().StringP("location", "l", "", "Location")
		c.Flags().String("description", "", "Description")
		c.Flags().StringP("category", "c", "", "Category key or label")
	}

	listCmd.Flags().StringP("search", "s", "", "Keyword in title or description")
	listCmd.Flags().StringP("category", "c", "", "Category key or label")
	listCmd.Flags().StringP("location", "l", "", "Location substring")
	listCmd.Flags().StringP("date", "d", "", "Exact date (YYYY-MM-DD)")

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	clearCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	rootCmd.AddCommand(addCmd, listCmd, showCmd, editCmd, deleteCmd, clearCmd)
}

// recordInput collects the record flags that were set on cmd
func recordInput(cmd *cobra.Command) handlers.RecordInput {
	get := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	return handlers.RecordInput{
		Title:       get("title"),
		Date:        get("date"),
		Time:        get("time"),
		Location:    get("location"),
		Description: get("description"),
		Category:    get("category"),
	}
}

// listFilter builds the list filter from cmd's flags
func listFilter(cmd *cobra.Command) (*filter.Filter, error) {
	search, _ := cmd.Flags().GetString("search")
	location, _ := cmd.Flags().GetString("location")
	date, _ := cmd.Flags().GetString("date")

	var category record.Category
	if cmd.Flags().Changed("category") {
		raw, _ := cmd.Flags().GetString("category")
		c, err := record.ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		category = c
	}

	return filter.NewFilter(search, category, location, date), nil
}
