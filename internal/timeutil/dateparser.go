package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DateLayout is the layout of record dates (YYYY-MM-DD)
	DateLayout = "2006-01-02"
	// ClockLayout is the layout of record times (HH:MM, 24-hour)
	ClockLayout = "15:04"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseDate parses a date string in YYYY-MM-DD format.
// Returns the parsed date at midnight in loc. A nil loc means time.Local.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD, e.g., 2024-01-15)")
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(DateLayout, input, loc)
	if err != nil {
		return time.Time{}, buildDateParseError(input)
	}
	return StartOfDay(t), nil
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	isoPartialRe := regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	yearOnlyRe := regexp.MustCompile(`^\d{4}$`)
	euroRe := regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

	switch {
	case yearOnlyRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case isoPartialRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case euroRe.MatchString(input):
		return fmt.Errorf("unsupported date '%s': use format YYYY-MM-DD", input)
	default:
		return fmt.Errorf("invalid date '%s' (use format YYYY-MM-DD, e.g., 2024-01-15)", input)
	}
}

// ParseClock validates a time of day in HH:MM (24-hour) format and returns
// the hour and minute.
func ParseClock(input string) (hour, minute int, err error) {
	if !clockPattern.MatchString(input) {
		return 0, 0, fmt.Errorf("invalid time '%s' (use format HH:MM, e.g., 09:30)", input)
	}
	t, err := time.Parse(ClockLayout, input)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time '%s': hour must be 00-23 and minute 00-59", input)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats t as HH:MM
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
