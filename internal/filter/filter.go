package filter

import (
	"strings"

	"github.com/xolan/lifelog/internal/record"
)

// Filter narrows a record list for display.
// All filter fields are optional - empty values match all records.
type Filter struct {
	Keyword  string          // Case-insensitive substring of title or description
	Category record.Category // Exact category match
	Location string          // Case-insensitive substring of location
	Date     string          // Exact YYYY-MM-DD match
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(keyword string, category record.Category, location, date string) *Filter {
	return &Filter{
		Keyword:  keyword,
		Category: category,
		Location: location,
		Date:     date,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all records)
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.Category == "" && f.Location == "" && f.Date == "")
}

// Apply returns the records that match every criterion, in input order.
func Apply(records []record.Record, f *Filter) []record.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]record.Record, 0)
	for _, r := range records {
		if f.Matches(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the title or description (case-insensitive).
func (f *Filter) MatchesKeyword(r record.Record) bool {
	if f.Keyword == "" {
		return true
	}
	kw := strings.ToLower(f.Keyword)
	return strings.Contains(strings.ToLower(r.Title), kw) ||
		strings.Contains(strings.ToLower(r.Description), kw)
}

func (f *Filter) MatchesCategory(r record.Record) bool {
	return f.Category == "" || r.Category == f.Category
}

func (f *Filter) MatchesLocation(r record.Record) bool {
	if f.Location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Location))
}

func (f *Filter) MatchesDate(r record.Record) bool {
	return f.Date == "" || r.Date == f.Date
}

// Matches returns true if r satisfies every criterion
func (f *Filter) Matches(r record.Record) bool {
	return f.MatchesKeyword(r) && f.MatchesCategory(r) && f.MatchesLocation(r) && f.MatchesDate(r)
}
