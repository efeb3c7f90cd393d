package filter

import (
	"testing"

	"github.com/xolan/lifelog/internal/record"
)

// Helper function to create test records
func makeRecord(id, title, description, location, date string, category record.Category) record.Record {
	return record.Record{
		ID:          id,
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		Time:        "10:00",
		Category:    category,
	}
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// Helper function to compare string slices
func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testRecords() []record.Record {
	return []record.Record{
		makeRecord("1", "Morning run", "5km around the lake", "West Lake", "2024-05-01", record.Sport),
		makeRecord("2", "Team lunch", "Hotpot with the team", "Office", "2024-05-01", record.Food),
		makeRecord("3", "Read a book", "Finished chapter 3 of the Go book", "Home", "2024-05-02", record.Study),
		makeRecord("4", "Evening RUN", "", "Park", "2024-05-03", record.Sport),
	}
}

func TestIsEmpty(t *testing.T) {
	var nilFilter *Filter
	if !nilFilter.IsEmpty() {
		t.Error("nil filter should be empty")
	}
	if !NewFilter("", "", "", "").IsEmpty() {
		t.Error("filter with no criteria should be empty")
	}
	if NewFilter("", record.Work, "", "").IsEmpty() {
		t.Error("filter with a category should not be empty")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		filter   *Filter
		expected []string
	}{
		{"nil filter", nil, []string{"1", "2", "3", "4"}},
		{"keyword in title is case-insensitive", NewFilter("run", "", "", ""), []string{"1", "4"}},
		{"keyword in description", NewFilter("go book", "", "", ""), []string{"3"}},
		{"category", NewFilter("", record.Sport, "", ""), []string{"1", "4"}},
		{"location substring", NewFilter("", "", "lake", ""), []string{"1"}},
		{"date", NewFilter("", "", "", "2024-05-01"), []string{"1", "2"}},
		{"combined criteria", NewFilter("run", record.Sport, "park", ""), []string{"4"}},
		{"no match", NewFilter("swim", "", "", ""), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(testRecords(), tt.filter))
			if !equalStringSlices(got, tt.expected) {
				t.Errorf("Apply() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMatchesKeyword_Empty(t *testing.T) {
	f := NewFilter("", "", "", "")
	if !f.MatchesKeyword(record.Record{}) {
		t.Error("empty keyword should match everything")
	}
}
