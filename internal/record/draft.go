package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/lifelog/internal/timeutil"
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidCategory = errors.New("invalid category")
)

// Draft is the user-editable payload of a record, as submitted by a form.
type Draft struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	Category    Category
}

// NewDraft returns a draft prefilled the way a fresh form is: today's date,
// the current time and the default category.
func NewDraft(now time.Time) Draft {
	return Draft{
		Date:     timeutil.FormatDate(now),
		Time:     timeutil.FormatClock(now),
		Category: DefaultCategory,
	}
}

// Normalize trims the single-line fields and defaults an empty category.
// Description is kept as entered because it may be multi-line.
func (d *Draft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.Location = strings.TrimSpace(d.Location)
	if d.Category == "" {
		d.Category = DefaultCategory
	}
}

// Validate checks the required form fields: title, date and time.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if _, err := timeutil.ParseDate(d.Date, time.UTC); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if _, _, err := timeutil.ParseClock(d.Time); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if d.Category != "" && !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(d.Category))
	}
	return nil
}
