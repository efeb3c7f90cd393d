package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/stats"
)

const barWidth = 20

// ShowStats prints the dashboard for tr
func ShowStats(ctx context.Context, deps *cli.Deps, tr stats.TimeRange) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	d := svc.Stats.Dashboard(ctx, tr)

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s:\n", tr.Label())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Records:     %d\n", d.Categories.Total)
	_, _ = fmt.Fprintf(deps.Stdout, "Categories:  %d\n", d.Categories.Distinct)

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "By category:")
	if len(d.Categories.Items) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "  (no records in this range)")
	}
	for _, c := range d.Categories.Items {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-10s %s %4d  %5.1f%%\n",
			c.Category, cli.FormatBar(c.Bar, barWidth), c.Count, c.Percent)
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Top locations (all records):")
	if len(d.Locations) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "  (no locations recorded)")
	}
	for i, l := range d.Locations {
		_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s (%d)\n", i+1, l.Location, l.Count)
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Last 7 days:")
	for _, day := range d.Trend {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s %s %d\n",
			day.Date.Format("01-02 Mon"), cli.FormatBar(day.Height, barWidth), day.Count)
	}
}

// ShowProfile prints the overall totals and the most recent records
func ShowProfile(ctx context.Context, deps *cli.Deps) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	p := svc.Stats.Profile(ctx)

	_, _ = fmt.Fprintln(deps.Stdout, "Profile")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total records:   %d\n", p.Summary.TotalRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Days recorded:   %d %s\n", p.Summary.DistinctDays, cli.Pluralize("day", p.Summary.DistinctDays))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day: %.1f\n", p.Summary.AveragePerDay)
	if p.Summary.FirstDate != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "First record:    %s\n", p.Summary.FirstDate)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Storage:         %s\n", svc.Location)

	if len(p.Recent) == 0 {
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Recent records:")
	for _, r := range p.Recent {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatRecordLine(r))
	}
}
