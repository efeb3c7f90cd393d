// Package handlers implements the CLI commands on top of the service layer.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/service"
	"github.com/xolan/lifelog/internal/storage"
)

// services opens the services or reports why it could not
func services(ctx context.Context, deps *cli.Deps) (*service.Services, bool) {
	svc, err := deps.Svc(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the backend settings with 'lifelog config'")
		deps.Exit(1)
		return nil, false
	}
	return svc, true
}

// fail prints err with a hint matching its kind and exits with 1
func fail(deps *cli.Deps, action string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to %s\n", action)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)

	switch {
	case errors.Is(err, record.ErrEmptyTitle):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: A title is required, e.g. --title 'Morning run'")
	case errors.Is(err, record.ErrInvalidDate):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Dates use YYYY-MM-DD, e.g. 2024-05-03")
	case errors.Is(err, record.ErrInvalidTime):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Times use HH:MM, e.g. 07:30")
	case errors.Is(err, record.ErrInvalidCategory):
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Valid categories: %s\n", categoryList())
	case errors.Is(err, service.ErrRecordNotFound):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List records with 'lifelog list' to see their ids")
	case errors.Is(err, service.ErrBusy):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Wait for the previous save to finish and try again")
	case errors.Is(err, export.ErrUnknownFormat):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Valid formats: json, csv, zip, pdf")
	case errors.Is(err, export.ErrCapabilityMissing):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: This build cannot produce that format; try json or csv")
	case errors.Is(err, storage.ErrUnavailable):
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the storage backend is reachable and writable")
	}

	deps.Exit(1)
}

func categoryList() string {
	s := ""
	for i, c := range record.Categories() {
		if i > 0 {
			s += ", "
		}
		s += string(c)
	}
	return s
}
