package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/lifelog/internal/cli"
)

// ValidateStorage reports on the health of the stored records
func ValidateStorage(ctx context.Context, deps *cli.Deps) {
	svc, ok := services(ctx, deps)
	if !ok {
		return
	}

	h, err := svc.Records.Health(ctx)
	if err != nil {
		fail(deps, "inspect storage", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", svc.Location)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	if !h.Present {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Empty (nothing stored yet)")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Size:    %d bytes\n", h.Bytes)
	_, _ = fmt.Fprintf(deps.Stdout, "Records: %d of %d\n", h.Records, h.Elements)

	if h.Corrupt {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Corrupted - records read as an empty list")
		_, _ = fmt.Fprintf(deps.Stdout, "Problem: %s\n", h.Problem)
	}
	for _, w := range h.Warnings {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatParseWarning(w))
	}
	if len(h.Duplicate) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Duplicate ids: %s\n", strings.Join(h.Duplicate, ", "))
	}

	if h.Corrupt || len(h.Warnings) > 0 || len(h.Duplicate) > 0 {
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Status: Healthy")
}
