// Package cli provides the CLI presentation layer for lifelog.
// It handles command-line output formatting and user interaction.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/storage"
)

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Truncate shortens s to max runes, ending with "..." when cut
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// FormatCategory renders a category as "Key (label)"
func FormatCategory(c record.Category) string {
	if c == "" {
		c = record.Other
	}
	return fmt.Sprintf("%s (%s)", c, c.Label())
}

// FormatRecordLine formats a record as one list row:
// "<id>  <date> <time>  [category] title @ location"
func FormatRecordLine(r record.Record) string {
	line := fmt.Sprintf("%s  %s %s  [%s] %s", r.ID, r.Date, r.Time, r.Category, r.Title)
	if r.Location != "" {
		line += " @ " + r.Location
	}
	return line
}

// FormatRecordDetail formats every field of a record, one per line
func FormatRecordDetail(r record.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:          %s\n", r.ID)
	fmt.Fprintf(&b, "Title:       %s\n", r.Title)
	fmt.Fprintf(&b, "Date:        %s %s\n", r.Date, r.Time)
	fmt.Fprintf(&b, "Category:    %s\n", FormatCategory(r.Category))
	if r.Location != "" {
		fmt.Fprintf(&b, "Location:    %s\n", r.Location)
	}
	if r.CreatedAt != "" {
		fmt.Fprintf(&b, "Created:     %s\n", r.CreatedAt)
	}
	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(r.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatBar renders a percentage as a fixed-width text bar
func FormatBar(percent float64, width int) string {
	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

// FormatParseWarning formats a ParseWarning into a human-readable string
func FormatParseWarning(warning storage.ParseWarning) string {
	return fmt.Sprintf("  Element %d: %s (error: %s)", warning.Index, Truncate(warning.Content, 50), warning.Error)
}

// PromptConfirmation prints question and reads a y/N answer from stdin
func PromptConfirmation(stdout io.Writer, stdin io.Reader, question string) bool {
	_, _ = fmt.Fprintf(stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes"
}
