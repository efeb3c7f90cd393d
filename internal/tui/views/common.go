// Package views holds the tab models of the lifelog TUI.
package views

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/stats"
	"github.com/xolan/lifelog/internal/tui/ui"
)

// RecordListOptions configures how records are rendered
type RecordListOptions struct {
	Width  int // Available width; 0 means unbounded
	Cursor int // Selected row, -1 for none
}

// RenderRecordList renders records as aligned rows: date and time, category, title and location
func RenderRecordList(records []record.Record, styles ui.Styles, opts RecordListOptions) string {
	if len(records) == 0 {
		return ""
	}

	catWidth := 0
	for _, r := range records {
		catWidth = max(catWidth, lipgloss.Width(categoryTag(r.Category)))
	}

	titleWidth := 40
	if opts.Width > 0 {
		titleWidth = max(20, opts.Width-catWidth-30)
	}

	var b strings.Builder
	for i, r := range records {
		style := styles.RecordNormal
		if i == opts.Cursor {
			style = styles.RecordSelected
		}

		when := styles.RecordDate.Render(r.Date + " " + r.Time)
		cat := styles.RecordCategory.Render(padRight(categoryTag(r.Category), catWidth))
		line := fmt.Sprintf("%s %s %s", when, cat, styles.RecordTitle.Render(cli.Truncate(r.Title, titleWidth)))
		if r.Location != "" {
			line += " " + styles.RecordLocation.Render("@ "+r.Location)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func categoryTag(c record.Category) string {
	if c == "" {
		c = record.Other
	}
	return "[" + c.Label() + "]"
}

// padRight pads s with spaces to width display cells
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderBar draws a percent-filled bar of width cells
func renderBar(styles ui.Styles, percent float64, width int) string {
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = min(max(filled, 0), width)
	return styles.Bar.Render(strings.Repeat("█", filled)) +
		styles.BarEmpty.Render(strings.Repeat("░", width-filled))
}

func renderStatLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}

func pluralize(word string, count int) string {
	return cli.Pluralize(word, count)
}

// emit wraps msg in a command
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// exportCmd writes f into the export directory and reports the outcome in the status bar
func exportCmd(ctx context.Context, services *service.Services, f export.Format, tr stats.TimeRange) tea.Cmd {
	return func() tea.Msg {
		res, err := services.Export.ToFile(ctx, f, tr, "")
		switch {
		case errors.Is(err, export.ErrNothingToExport):
			return ui.StatusMsg{Text: "No records to export"}
		case err != nil:
			return ui.StatusMsg{Text: fmt.Sprintf("Export failed: %v", err), Error: true}
		}
		return ui.StatusMsg{Text: fmt.Sprintf("Exported %d %s to %s", res.Records, pluralize("record", res.Records), res.Path)}
	}
}
