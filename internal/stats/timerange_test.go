package stats

import (
	"testing"
	"time"

	"github.com/xolan/lifelog/internal/record"
)

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
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

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeRange
	}{
		{"week", Week},
		{"W", Week},
		{"month", Month},
		{"m", Month},
		{" year ", Year},
		{"y", Year},
		{"all", All},
		{"", All},
		{"decade", All},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseTimeRange(tt.input); got != tt.expected {
				t.Errorf("ParseTimeRange(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	now := makeTime(2024, time.March, 15, 0, 5)

	records := []record.Record{
		makeRecord("today", "2024-03-15", record.Life, ""),
		makeRecord("seven", "2024-03-08", record.Life, ""),
		makeRecord("eight", "2024-03-07", record.Life, ""),
		makeRecord("future", "2024-03-20", record.Life, ""),
		makeRecord("feb", "2024-02-29", record.Life, ""),
		makeRecord("lastyear", "2023-03-15", record.Life, ""),
		makeRecord("bad", "not-a-date", record.Life, ""),
	}

	tests := []struct {
		tr       TimeRange
		expected []string
	}{
		{Week, []string{"today", "seven", "future"}},
		{Month, []string{"today", "seven", "eight", "future"}},
		{Year, []string{"today", "seven", "eight", "future", "feb"}},
		{All, []string{"today", "seven", "eight", "future", "feb", "lastyear", "bad"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tr), func(t *testing.T) {
			got := ids(Filter(records, tt.tr, now))
			if !sameIDs(got, tt.expected) {
				t.Errorf("Filter(%s) = %v, expected %v", tt.tr, got, tt.expected)
			}
		})
	}
}

func TestFilter_WeekIgnoresTimeOfDay(t *testing.T) {
	records := []record.Record{makeRecord("edge", "2024-03-08", record.Life, "")}

	for _, now := range []time.Time{
		makeTime(2024, time.March, 15, 0, 0),
		makeTime(2024, time.March, 15, 23, 59),
	} {
		if got := Filter(records, Week, now); len(got) != 1 {
			t.Errorf("at %v expected record dated 7 days ago to be included", now)
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	records := []record.Record{makeRecord("1", "2024-01-01", record.Life, "")}
	out := Filter(records, All, time.Now())
	out[0].ID = "changed"
	if records[0].ID != "1" {
		t.Error("Filter(All) returned a slice sharing the input array")
	}
}

func TestTimeRangeLabel(t *testing.T) {
	if Week.Label() != "this week" || All.Label() != "all time" {
		t.Errorf("unexpected labels: %q %q", Week.Label(), All.Label())
	}
}
