package stats

import (
	"time"

	"github.com/xolan/lifelog/internal/record"
)

// Dashboard is everything the statistics view shows for one range
type Dashboard struct {
	Range       TimeRange
	GeneratedAt time.Time
	Categories  CategoryBreakdown // Over the filtered records
	Locations   []LocationCount   // Over all records
	Trend       []TrendDay        // Over all records
	AllRecords  int
}

// BuildDashboard filters records by tr and computes every dashboard aggregate
func BuildDashboard(records []record.Record, tr TimeRange, now time.Time) Dashboard {
	filtered := Filter(records, tr, now)
	return Dashboard{
		Range:       tr,
		GeneratedAt: now,
		Categories:  CalculateCategoryBreakdown(filtered),
		Locations:   TopLocations(records, TopLocationsLimit),
		Trend:       CalculateTrend(records, now),
		AllRecords:  len(records),
	}
}
