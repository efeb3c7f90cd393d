package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/filter"
	"github.com/xolan/lifelog/internal/record"
)

// RecordInput holds the fields given on the command line.
// A nil field was not given.
type RecordInput struct {
	Title       *string
	Date        *string
	Time        *string
	Location    *string
	Description *string
	Category    *string
}

// apply copies the given fields onto d
func (in RecordInput) apply(d *record.Draft) error {
	if in.Title != nil {
		d.Title = *in.Title
	}
	if in.Date != nil {
		d.Date = *in.Date
	}
	if in.Time != nil {
		d.Time = *in.Time
	}
	if in.Location != nil {
		d.Location = *in.Location
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Category != nil {
		c, err := record.ParseCategory(*in.Category)
		if err != nil {
			return err
		}
		d.Category = c
	}
	return nil
}

// IsEmpty reports whether no field was given
func (in RecordInput) IsEmpty() bool {
	return in.Title == nil && in.Date == nil && in.Time == nil &&
		in.Location == nil && in.Description == nil && in.Category == nil
}

// AddRecord creates a record. Date and time default to now.
func AddRecord(ctx context.Context, deps *cli.Deps, in RecordInput) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	d := svc.Records.NewDraft()
	if err := in.apply(&d); err != nil {
		fail(deps, "create record", err)
		return
	}

	r, err := svc.Records.Create(ctx, d)
	if err != nil {
		fail(deps, "create record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Saved: %s\n", cli.FormatRecordLine(r))
}

// ListRecords lists the records matching f, newest first
func ListRecords(ctx context.Context, deps *cli.Deps, f *filter.Filter) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	result := svc.Records.List(ctx, f)
	if len(result.Records) == 0 {
		if result.Total == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No records yet")
			_, _ = fmt.Fprintln(deps.Stdout, "Hint: Create one with 'lifelog add --title <title>'")
		} else {
			_, _ = fmt.Fprintln(deps.Stdout, "No records match the filter")
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, r := range result.Records {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecordLine(r))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	if f.IsEmpty() {
		_, _ = fmt.Fprintf(deps.Stdout, "%d %s\n", result.Total, cli.Pluralize("record", result.Total))
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "%d of %d %s\n", len(result.Records), result.Total, cli.Pluralize("record", result.Total))
	}
}

// ShowRecord prints every field of one record
func ShowRecord(ctx context.Context, deps *cli.Deps, id string) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	r, err := svc.Records.Get(ctx, id)
	if err != nil {
		fail(deps, "find record", err)
		return
	}

	_, _ = fmt.Fprint(deps.Stdout, cli.FormatRecordDetail(r))
}

// EditRecord replaces the given fields of a record and keeps the rest
func EditRecord(ctx context.Context, deps *cli.Deps, id string, in RecordInput) {
	if in.IsEmpty() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one field flag is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  lifelog edit <id> --title 'new title'")
		_, _ = fmt.Fprintln(deps.Stderr, "  lifelog edit <id> --category work --location Office")
		deps.Exit(1)
		return
	}

	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	existing, err := svc.Records.Get(ctx, id)
	if err != nil {
		fail(deps, "find record", err)
		return
	}

	d := existing.Draft()
	if err := in.apply(&d); err != nil {
		fail(deps, "update record", err)
		return
	}

	updated, err := svc.Records.Replace(ctx, id, d)
	if err != nil {
		fail(deps, "update record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatRecordLine(updated))
}

// DeleteRecord deletes one record after confirmation
func DeleteRecord(ctx context.Context, deps *cli.Deps, id string, skipConfirm bool) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	r, err := svc.Records.Get(ctx, id)
	if err != nil {
		fail(deps, "find record", err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Record to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatRecordLine(r))

	if !skipConfirm && !cli.PromptConfirmation(deps.Stdout, deps.Stdin, "Delete this record?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	if _, err := svc.Records.Delete(ctx, id); err != nil {
		fail(deps, "delete record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", r.Title)
}

// ClearRecords removes every record. Without skipConfirm it asks first and
// refuses when stdin is not a terminal.
func ClearRecords(ctx context.Context, deps *cli.Deps, skipConfirm bool) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	count := len(svc.Records.All(ctx))
	if count == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Nothing to clear")
		return
	}

	if !skipConfirm {
		if deps.IsTerminal != nil && !deps.IsTerminal() {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Refusing to clear records without confirmation")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Pass --yes to clear from a script")
			deps.Exit(1)
			return
		}
		question := fmt.Sprintf("Permanently delete all %d %s? This cannot be undone.", count, cli.Pluralize("record", count))
		if !cli.PromptConfirmation(deps.Stdout, deps.Stdin, question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Clear cancelled")
			return
		}
	}

	n, err := svc.Records.Clear(ctx)
	if err != nil {
		fail(deps, "clear records", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Cleared %d %s\n", n, cli.Pluralize("record", n))
}
