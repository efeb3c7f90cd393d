package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/stats"
)

// ExportRecords writes an export. output "-" streams it to stdout; an empty
// output writes the dated file into the export directory.
func ExportRecords(ctx context.Context, deps *cli.Deps, format string, tr stats.TimeRange, output string) {
	f, err := export.ParseFormat(format)
	if err != nil {
		fail(deps, "export", err)
		return
	}

	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	var res service.ExportResult
	if output == "-" {
		res, err = svc.Export.Write(ctx, f, tr, deps.Stdout)
	} else {
		res, err = svc.Export.ToFile(ctx, f, tr, output)
	}

	if errors.Is(err, export.ErrNothingToExport) {
		_, _ = fmt.Fprintln(deps.Stderr, "No records to export")
		return
	}
	if err != nil {
		fail(deps, "export", err)
		return
	}

	if res.Path != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s to %s (%d bytes)\n",
			res.Records, cli.Pluralize("record", res.Records), res.Path, res.Bytes)
	}
}
