// Package export serializes the record collection to JSON, CSV and ZIP, and
// renders the statistics dashboard to a one-page PDF.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/timeutil"
)

var (
	// ErrNothingToExport is returned when the record collection is empty
	ErrNothingToExport = errors.New("no records to export")
	// ErrCapabilityMissing is returned when the archiver or rasterizer is not available
	ErrCapabilityMissing = errors.New("export capability not available")
	// ErrUnknownFormat is returned by ParseFormat
	ErrUnknownFormat = errors.New("unknown export format")
)

// Format is an export output format
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
	ZIP  Format = "zip"
	PDF  Format = "pdf"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{JSON, CSV, ZIP, PDF}
}

// ParseFormat accepts a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: json, csv, zip, pdf)", ErrUnknownFormat, s)
}

// FileName returns the download name for f on the day of now,
// e.g. records_2024-01-15.json or stats_2024-01-15.pdf.
func FileName(f Format, now time.Time) string {
	date := timeutil.FormatDate(now)
	if f == PDF {
		return fmt.Sprintf("stats_%s.pdf", date)
	}
	return fmt.Sprintf("records_%s.%s", date, f)
}

// CSVHeader is the fixed column order of the CSV export
var CSVHeader = []string{"id", "title", "date", "time", "location", "description", "category", "createdAt"}

// EncodeJSON renders records as a JSON array indented with two spaces.
func EncodeJSON(records []record.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeCSV renders records as CSV rows joined by "\n", header first,
// with no trailing newline.
func EncodeCSV(records []record.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(CSVHeader, ","))
	for _, r := range records {
		fields := []string{r.ID, r.Title, r.Date, r.Time, r.Location, r.Description, string(r.Category), r.CreatedAt}
		for i, f := range fields {
			fields[i] = EscapeCSV(f)
		}
		rows = append(rows, strings.Join(fields, ","))
	}
	return []byte(strings.Join(rows, "\n")), nil
}

// EscapeCSV quotes s when it contains a comma, a double quote or a newline,
// doubling any embedded quotes.
func EscapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteJSON writes the JSON export to w
func WriteJSON(w io.Writer, records []record.Record) error {
	data, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteCSV writes the CSV export to w
func WriteCSV(w io.Writer, records []record.Record) error {
	data, err := EncodeCSV(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
