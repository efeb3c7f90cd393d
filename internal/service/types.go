// Package service provides the business logic layer for lifelog.
// It wires the record store, statistics and exporters together behind one
// API shared by the CLI and the TUI.
package service

import (
	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/stats"
)

// RecentLimit is how many records the "recent" lists show
const RecentLimit = 5

// ListResult contains the results of listing records
type ListResult struct {
	Records []record.Record // Newest date first
	Total   int             // Records in storage before filtering
}

// ProfileResult is the profile page: totals plus the most recent records
type ProfileResult struct {
	Summary stats.Summary
	Recent  []record.Record
}

// ExportResult describes a finished export
type ExportResult struct {
	Format  export.Format
	Path    string // Empty when written to a stream
	Records int
	Bytes   int
}
