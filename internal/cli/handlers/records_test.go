package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/xolan/lifelog/internal/filter"
	"github.com/xolan/lifelog/internal/record"
)

func TestAddRecord(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	ctx := context.Background()

	AddRecord(ctx, deps, RecordInput{
		Title:    str("Morning run"),
		Category: str("sport"),
		Location: str("Park"),
	})

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", *exitCode, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Saved:") || !strings.Contains(stdout.String(), "[sport] Morning run @ Park") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	all := deps.Services.Records.All(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].Date != "2024-05-03" || all[0].Time != "12:00" {
		t.Errorf("date/time should default to now, got %s %s", all[0].Date, all[0].Time)
	}
}

func TestAddRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  RecordInput
		stderr string
	}{
		{"missing title", RecordInput{}, "A title is required"},
		{"bad category", RecordInput{Title: str("x"), Category: str("gaming")}, "Valid categories:"},
		{"bad date", RecordInput{Title: str("x"), Date: str("yesterday")}, "YYYY-MM-DD"},
		{"bad time", RecordInput{Title: str("x"), Time: str("7pm")}, "HH:MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)

			AddRecord(context.Background(), deps, tt.input)

			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("expected %q in stderr, got %q", tt.stderr, stderr.String())
			}
		})
	}
}

func TestListRecords(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	addRecord(t, deps, "Old", "2024-04-01", "09:00", record.Work, "Office")
	addRecord(t, deps, "New", "2024-05-03", "08:00", record.Sport, "Park")

	ListRecords(context.Background(), deps, nil)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	if strings.Index(out, "New") > strings.Index(out, "Old") {
		t.Errorf("expected newest first, got %q", out)
	}
	if !strings.Contains(out, "2 records") {
		t.Errorf("expected total in output, got %q", out)
	}
}

func TestListRecords_Filtered(t *testing.T) {
	deps, stdout, _, _ := setupTestDeps(t)
	addRecord(t, deps, "Old", "2024-04-01", "09:00", record.Work, "Office")
	addRecord(t, deps, "New", "2024-05-03", "08:00", record.Sport, "Park")

	ListRecords(context.Background(), deps, filter.NewFilter("", record.Work, "", ""))

	out := stdout.String()
	if strings.Contains(out, "New") || !strings.Contains(out, "Old") {
		t.Errorf("filter not applied: %q", out)
	}
	if !strings.Contains(out, "1 of 2 records") {
		t.Errorf("expected filtered count, got %q", out)
	}
}

func TestListRecords_Empty(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ListRecords(context.Background(), deps, nil)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "No records yet") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestShowRecord(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	r := addRecord(t, deps, "Read", "2024-05-02", "21:00", record.Study, "Library")

	ShowRecord(context.Background(), deps, r.ID)
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Location:    Library") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	ShowRecord(context.Background(), deps, "nope")
	if *exitCode != 1 {
		t.Errorf("expected exit code 1 for unknown id, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "lifelog list") {
		t.Errorf("expected hint in stderr, got %q", stderr.String())
	}
}

func TestEditRecord(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	ctx := context.Background()
	r := addRecord(t, deps, "Read", "2024-05-02", "21:00", record.Study, "Library")

	EditRecord(ctx, deps, r.ID, RecordInput{Title: str("Read more"), Category: str("学习")})

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Updated:") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	got, err := deps.Services.Records.Get(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Read more" || got.Location != "Library" || got.Time != "21:00" {
		t.Errorf("edit should only change given fields, got %+v", got)
	}
}

func TestEditRecord_NoFields(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)

	EditRecord(context.Background(), deps, "1", RecordInput{})

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "At least one field flag") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDeleteRecord(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		skipConfirm bool
		wantDeleted bool
	}{
		{"confirmed", "y\n", false, true},
		{"declined", "n\n", false, false},
		{"skip confirmation", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, stdout, _, exitCode := setupTestDeps(t)
			deps.Stdin = strings.NewReader(tt.stdin)
			ctx := context.Background()
			r := addRecord(t, deps, "Run", "2024-05-03", "07:00", record.Sport, "")

			DeleteRecord(ctx, deps, r.ID, tt.skipConfirm)

			if *exitCode != 0 {
				t.Errorf("expected exit code 0, got %d", *exitCode)
			}
			remaining := len(deps.Services.Records.All(ctx))
			if tt.wantDeleted && remaining != 0 {
				t.Error("record was not deleted")
			}
			if !tt.wantDeleted {
				if remaining != 1 {
					t.Error("record was deleted without confirmation")
				}
				if !strings.Contains(stdout.String(), "Deletion cancelled") {
					t.Errorf("unexpected output %q", stdout.String())
				}
			}
		})
	}
}

func TestClearRecords(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	deps.Stdin = strings.NewReader("y\n")
	ctx := context.Background()
	addRecord(t, deps, "A", "2024-05-03", "07:00", record.Sport, "")
	addRecord(t, deps, "B", "2024-05-03", "08:00", record.Sport, "")

	ClearRecords(ctx, deps, false)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Permanently delete all 2 records?") {
		t.Errorf("expected confirmation prompt, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Cleared 2 records") {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if len(deps.Services.Records.All(ctx)) != 0 {
		t.Error("records remain after clear")
	}
}

func TestClearRecords_RefusesWithoutTerminal(t *testing.T) {
	deps, _, stderr, exitCode := setupTestDeps(t)
	deps.IsTerminal = func() bool { return false }
	ctx := context.Background()
	addRecord(t, deps, "A", "2024-05-03", "07:00", record.Sport, "")

	ClearRecords(ctx, deps, false)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "--yes") {
		t.Errorf("expected --yes hint, got %q", stderr.String())
	}
	if len(deps.Services.Records.All(ctx)) != 1 {
		t.Error("records were cleared without confirmation")
	}

	ClearRecords(ctx, deps, true)
	if len(deps.Services.Records.All(ctx)) != 0 {
		t.Error("--yes did not clear records")
	}
}

func TestClearRecords_Nothing(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ClearRecords(context.Background(), deps, true)

	if *exitCode != 0 || !strings.Contains(stdout.String(), "Nothing to clear") {
		t.Errorf("exit %d, output %q", *exitCode, stdout.String())
	}
}
