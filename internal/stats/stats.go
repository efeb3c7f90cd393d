// Package stats derives dashboard aggregates from a record collection.
// Every function is pure: the caller passes the records and the current time.
package stats

import (
	"sort"
	"time"

	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/timeutil"
)

const (
	// TopLocationsLimit is how many locations the dashboard shows
	TopLocationsLimit = 5
	// TrendDays is the length of the trend window, today included
	TrendDays = 7
	// MinTrendHeight keeps empty trend days visible
	MinTrendHeight = 5.0
)

// CategoryCount is one category row of the breakdown
type CategoryCount struct {
	Category record.Category
	Count    int
	Percent  float64 // Share of the filtered total, 0-100
	Bar      float64 // Width relative to the largest category, 0-100
}

// CategoryBreakdown groups the filtered records by category
type CategoryBreakdown struct {
	Items    []CategoryCount // First-seen order
	Total    int
	Distinct int
}

// LocationCount is one row of the top locations list
type LocationCount struct {
	Location string
	Count    int
}

// TrendDay is one bar of the trend chart
type TrendDay struct {
	Date   time.Time
	Count  int
	Height float64 // count/max*100, never below MinTrendHeight
}

// Summary holds the profile totals over all records
type Summary struct {
	TotalRecords  int
	DistinctDays  int
	AveragePerDay float64 // 0 when there are no records
	FirstDate     string  // Earliest YYYY-MM-DD, empty when there is none
}

// CalculateCategoryBreakdown counts records per category in first-seen order.
// Records without a category count as record.Other.
func CalculateCategoryBreakdown(records []record.Record) CategoryBreakdown {
	b := CategoryBreakdown{Items: []CategoryCount{}, Total: len(records)}
	if len(records) == 0 {
		return b
	}

	index := make(map[record.Category]int)
	for _, r := range records {
		c := r.Category
		if c == "" {
			c = record.Other
		}
		i, ok := index[c]
		if !ok {
			i = len(b.Items)
			index[c] = i
			b.Items = append(b.Items, CategoryCount{Category: c})
		}
		b.Items[i].Count++
	}

	maxCount := 0
	for _, item := range b.Items {
		if item.Count > maxCount {
			maxCount = item.Count
		}
	}
	for i := range b.Items {
		b.Items[i].Percent = float64(b.Items[i].Count) / float64(b.Total) * 100
		b.Items[i].Bar = float64(b.Items[i].Count) / float64(maxCount) * 100
	}

	b.Distinct = len(b.Items)
	return b
}

// TopLocations counts records per non-empty location and returns the n most
// frequent, ties kept in first-seen order.
func TopLocations(records []record.Record, n int) []LocationCount {
	index := make(map[string]int)
	counts := []LocationCount{}
	for _, r := range records {
		if r.Location == "" {
			continue
		}
		i, ok := index[r.Location]
		if !ok {
			i = len(counts)
			index[r.Location] = i
			counts = append(counts, LocationCount{Location: r.Location})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// CalculateTrend counts records per day for the TrendDays days ending today,
// oldest first. A record belongs to a day when its date string equals that day.
func CalculateTrend(records []record.Record, now time.Time) []TrendDay {
	days := timeutil.LastNDays(now, TrendDays)
	trend := make([]TrendDay, len(days))

	byDate := make(map[string]int)
	for _, r := range records {
		byDate[r.Date]++
	}

	maxCount := 0
	for i, d := range days {
		count := byDate[timeutil.FormatDate(d)]
		trend[i] = TrendDay{Date: d, Count: count}
		if count > maxCount {
			maxCount = count
		}
	}

	for i := range trend {
		height := 0.0
		if maxCount > 0 {
			height = float64(trend[i].Count) / float64(maxCount) * 100
		}
		if height < MinTrendHeight {
			height = MinTrendHeight
		}
		trend[i].Height = height
	}
	return trend
}

// Summarize computes the profile totals over all records
func Summarize(records []record.Record) Summary {
	s := Summary{TotalRecords: len(records)}

	dates := make(map[string]bool)
	for _, r := range records {
		dates[r.Date] = true
		if _, err := timeutil.ParseDate(r.Date, time.UTC); err != nil {
			continue
		}
		if s.FirstDate == "" || r.Date < s.FirstDate {
			s.FirstDate = r.Date
		}
	}

	s.DistinctDays = len(dates)
	if s.DistinctDays > 0 {
		s.AveragePerDay = float64(s.TotalRecords) / float64(s.DistinctDays)
	}
	return s
}
