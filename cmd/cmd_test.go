package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/config"
	"github.com/xolan/lifelog/internal/kv"
	"github.com/xolan/lifelog/internal/logging"
	"github.com/xolan/lifelog/internal/service"
)

var testNow = time.Date(2024, time.May, 3, 12, 0, 0, 0, time.UTC)

// resetFlags restores every flag so commands can run again in one process
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// testDeps installs deps backed by in-memory storage and returns the output buffers
func testDeps(t *testing.T, stdin string) (*service.Services, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Backend = kv.DriverMemory
	cfg.ExportDir = tmpDir

	svc, err := service.NewServicesWithBackend(kv.NewMemory(), filepath.Join(tmpDir, "config.toml"), cfg,
		logging.Discard(), service.WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	cli.SetDeps(&cli.Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(stdin),
		Exit:   func(code int) { exitCode = code },
		OpenServices: func(context.Context) (*service.Services, error) {
			return svc, nil
		},
		IsTerminal: func() bool { return true },
	})
	t.Cleanup(cli.ResetDeps)

	return svc, stdout, stderr, &exitCode
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return rootCmd.ExecuteContext(context.Background())
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"add", "list", "show", "edit", "delete", "clear", "stats", "profile", "export", "config", "validate", "tui", "completion"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestAddAndList(t *testing.T) {
	svc, stdout, stderr, exitCode := testDeps(t, "")

	if err := run(t, "add", "--title", "Morning run", "-c", "sport", "-l", "Park", "-d", "2024-05-02", "--time", "07:15"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if *exitCode != 0 {
		t.Fatalf("add exited %d: %s", *exitCode, stderr.String())
	}

	all := svc.Records.All(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if all[0].Date != "2024-05-02" || all[0].Time != "07:15" || all[0].Location != "Park" {
		t.Errorf("flags not applied: %+v", all[0])
	}

	stdout.Reset()
	if err := run(t, "list", "--category", "运动"); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Morning run") {
		t.Errorf("list output %q", stdout.String())
	}
}

func TestList_InvalidCategory(t *testing.T) {
	_, _, stderr, exitCode := testDeps(t, "")

	if err := run(t, "list", "--category", "gaming"); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "invalid category") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestEdit_OnlyChangedFlags(t *testing.T) {
	svc, _, stderr, exitCode := testDeps(t, "")
	ctx := context.Background()

	if err := run(t, "add", "--title", "Read", "-c", "study", "-l", "Library"); err != nil {
		t.Fatal(err)
	}
	id := svc.Records.All(ctx)[0].ID

	if err := run(t, "edit", id, "--title", "Read more"); err != nil {
		t.Fatal(err)
	}
	if *exitCode != 0 {
		t.Fatalf("edit exited %d: %s", *exitCode, stderr.String())
	}

	r, err := svc.Records.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Read more" || r.Location != "Library" || r.Category != "study" {
		t.Errorf("edit changed more than the title: %+v", r)
	}
}

func TestDeleteAndClear(t *testing.T) {
	svc, _, _, exitCode := testDeps(t, "")
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if err := run(t, "add", "--title", title); err != nil {
			t.Fatal(err)
		}
	}
	id := svc.Records.All(ctx)[0].ID

	if err := run(t, "delete", id, "--yes"); err != nil {
		t.Fatal(err)
	}
	if n := len(svc.Records.All(ctx)); n != 2 {
		t.Errorf("expected 2 records after delete, got %d", n)
	}

	if err := run(t, "clear", "-y"); err != nil {
		t.Fatal(err)
	}
	if n := len(svc.Records.All(ctx)); n != 0 {
		t.Errorf("expected no records after clear, got %d", n)
	}
	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
}

func TestStatsRange(t *testing.T) {
	_, stdout, _, _ := testDeps(t, "")

	if err := run(t, "stats", "--range", "month"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Statistics for this month:") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	stdout.Reset()
	if err := run(t, "stats"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Statistics for this week:") {
		t.Errorf("default range should be week, got %q", stdout.String())
	}
}

func TestExportToFile(t *testing.T) {
	svc, stdout, stderr, exitCode := testDeps(t, "")

	if err := run(t, "add", "--title", "Run"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "export", "json"); err != nil {
		t.Fatal(err)
	}
	if *exitCode != 0 {
		t.Fatalf("export exited %d: %s", *exitCode, stderr.String())
	}

	want := filepath.Join(svc.Export.Dir(), "records_2024-05-03.json")
	if !strings.Contains(stdout.String(), want) {
		t.Errorf("expected %q in output %q", want, stdout.String())
	}
}

func TestRootListsRecords(t *testing.T) {
	_, stdout, _, _ := testDeps(t, "")

	if err := run(t); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "No records yet") {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestGenerateCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			_, stdout, stderr, exitCode := testDeps(t, "")

			generateCompletion(shell)

			if stdout.Len() == 0 {
				t.Error("expected completion output")
			}
			if stderr.Len() != 0 || *exitCode != 0 {
				t.Errorf("unexpected error output %q (exit %d)", stderr.String(), *exitCode)
			}
			if !strings.Contains(stdout.String(), "lifelog") {
				t.Error("completion script does not mention lifelog")
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	_, _, stderr, exitCode := testDeps(t, "")

	generateCompletion("tcsh")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Unsupported shell") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-05-03")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("Version = %q", rootCmd.Version)
	}
}

func TestTUI_RequiresTerminal(t *testing.T) {
	_, _, stderr, exitCode := testDeps(t, "")
	cli.GetDeps().IsTerminal = func() bool { return false }

	if err := run(t, "tui"); err != nil {
		t.Fatalf("tui returned error: %v", err)
	}
	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "interactive terminal") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestTUIFlag_RequiresTerminal(t *testing.T) {
	_, _, stderr, exitCode := testDeps(t, "")
	cli.GetDeps().IsTerminal = func() bool { return false }

	if err := run(t, "--tui"); err != nil {
		t.Fatalf("--tui returned error: %v", err)
	}
	if *exitCode != 1 || !strings.Contains(stderr.String(), "interactive terminal") {
		t.Errorf("exit %d, stderr %q", *exitCode, stderr.String())
	}
}
