package stats

import (
	"strings"
	"time"

	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/timeutil"
)

// TimeRange selects which records the dashboard aggregates
type TimeRange string

const (
	Week  TimeRange = "week"
	Month TimeRange = "month"
	Year  TimeRange = "year"
	All   TimeRange = "all"
)

// WeekWindowDays is how many whole days back the week range reaches
const WeekWindowDays = 7

// ParseTimeRange maps week, month and year (or w, m, y) to a range.
// Anything else means All.
func ParseTimeRange(s string) TimeRange {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "w":
		return Week
	case "month", "m":
		return Month
	case "year", "y":
		return Year
	default:
		return All
	}
}

// Label returns a human-readable name for the range
func (tr TimeRange) Label() string {
	switch tr {
	case Week:
		return "this week"
	case Month:
		return "this month"
	case Year:
		return "this year"
	default:
		return "all time"
	}
}

// Filter returns the records that fall inside tr relative to now.
//
// Week keeps records dated at most WeekWindowDays calendar days before today
// (future dates included). Month and Year compare calendar fields. Dates are
// interpreted in now's location; records with unparseable dates only pass All.
func Filter(records []record.Record, tr TimeRange, now time.Time) []record.Record {
	if tr != Week && tr != Month && tr != Year {
		out := make([]record.Record, len(records))
		copy(out, records)
		return out
	}

	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		d, err := timeutil.ParseDate(r.Date, now.Location())
		if err != nil {
			continue
		}
		if inRange(d, tr, now) {
			out = append(out, r)
		}
	}
	return out
}

func inRange(d time.Time, tr TimeRange, now time.Time) bool {
	switch tr {
	case Week:
		return timeutil.DaysBetween(d, now) <= WeekWindowDays
	case Month:
		return timeutil.SameMonth(d, now)
	case Year:
		return timeutil.SameYear(d, now)
	default:
		return true
	}
}
