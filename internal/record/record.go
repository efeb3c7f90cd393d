// Package record defines the life record: a dated, categorized journal entry.
package record

import (
	"time"
)

// CreatedAtLayout is the layout of CreatedAt: RFC 3339 in UTC with milliseconds
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// Record represents a single life record.
// JSON field names are the persisted names and must not change.
type Record struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	CreatedAt   string   `json:"createdAt"`
}

// Created returns CreatedAt as a time, and false when it is missing or malformed.
func (r Record) Created() (time.Time, bool) {
	if r.CreatedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Moment returns the best known instant of the record: CreatedAt when valid,
// otherwise Date and Time interpreted in loc.
func (r Record) Moment(loc *time.Location) (time.Time, bool) {
	if t, ok := r.Created(); ok {
		return t, true
	}
	if loc == nil {
		loc = time.Local
	}
	layout, value := "2006-01-02 15:04", r.Date+" "+r.Time
	if r.Time == "" {
		layout, value = "2006-01-02", r.Date
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// New builds a record from a validated draft, stamping id and creation time.
func New(d Draft, id string, now time.Time) Record {
	return Record{
		ID:          id,
		Title:       d.Title,
		Date:        d.Date,
		Time:        d.Time,
		Location:    d.Location,
		Description: d.Description,
		Category:    d.Category,
		CreatedAt:   now.UTC().Format(CreatedAtLayout),
	}
}

// Replace returns a copy of r with every user-editable field taken from d.
// ID and CreatedAt are kept.
func (r Record) Replace(d Draft) Record {
	r.Title = d.Title
	r.Date = d.Date
	r.Time = d.Time
	r.Location = d.Location
	r.Description = d.Description
	r.Category = d.Category
	return r
}

// Draft returns the editable part of r.
func (r Record) Draft() Draft {
	return Draft{
		Title:       r.Title,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Description: r.Description,
		Category:    r.Category,
	}
}
