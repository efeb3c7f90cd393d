package stats

import (
	"testing"
	"time"

	"github.com/xolan/lifelog/internal/record"
)

func TestBuildDashboard(t *testing.T) {
	now := makeTime(2024, time.March, 15, 10, 0)
	records := []record.Record{
		makeRecord("1", "2024-03-15", record.Work, "公司"),
		makeRecord("2", "2024-03-14", record.Life, "家"),
		makeRecord("3", "2023-01-01", record.Travel, "家"),
	}

	d := BuildDashboard(records, Week, now)

	if d.Range != Week {
		t.Errorf("Range = %q, expected week", d.Range)
	}
	if d.AllRecords != 3 {
		t.Errorf("AllRecords = %d, expected 3", d.AllRecords)
	}
	if d.Categories.Total != 2 {
		t.Errorf("filtered total = %d, expected 2", d.Categories.Total)
	}
	if len(d.Locations) != 2 || d.Locations[0].Location != "家" || d.Locations[0].Count != 2 {
		t.Errorf("Locations = %+v, expected 家:2 first over all records", d.Locations)
	}
	if len(d.Trend) != TrendDays {
		t.Errorf("Trend has %d days, expected %d", len(d.Trend), TrendDays)
	}
	if !d.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, expected %v", d.GeneratedAt, now)
	}
}
