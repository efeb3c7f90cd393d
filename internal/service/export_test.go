package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/stats"
)

func TestExportService_Write(t *testing.T) {
	svc, _ := newTestServices(t)
	seed(t, svc, draft("Run, fast", "2024-05-03", "07:00", record.Sport, "Park"))
	ctx := context.Background()

	var buf bytes.Buffer
	res, err := svc.Export.Write(ctx, export.CSV, stats.All, &buf)
	if err != nil {
		t.Fatalf("Write(csv) returned error: %v", err)
	}
	if res.Records != 1 || res.Bytes != buf.Len() || res.Path != "" {
		t.Errorf("Write(csv) result = %+v", res)
	}
	if !strings.HasPrefix(buf.String(), strings.Join(export.CSVHeader, ",")) {
		t.Errorf("CSV output does not start with header: %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"Run, fast"`) {
		t.Errorf("CSV output does not quote title: %q", buf.String())
	}
}

func TestExportService_ToFile(t *testing.T) {
	svc, _ := newTestServices(t)
	seed(t, svc, draft("Run", "2024-05-03", "07:00", record.Sport, "Park"))
	ctx := context.Background()

	tests := []struct {
		format export.Format
		name   string
		prefix string
	}{
		{export.JSON, "records_2024-05-03.json", "["},
		{export.CSV, "records_2024-05-03.csv", "id,"},
		{export.ZIP, "records_2024-05-03.zip", "PK"},
		{export.PDF, "stats_2024-05-03.pdf", "%PDF"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			res, err := svc.Export.ToFile(ctx, tt.format, stats.Week, "")
			if err != nil {
				t.Fatalf("ToFile() returned error: %v", err)
			}
			if filepath.Base(res.Path) != tt.name {
				t.Errorf("path = %q, expected name %q", res.Path, tt.name)
			}
			if filepath.Dir(res.Path) != svc.Export.Dir() {
				t.Errorf("path = %q, expected it under %q", res.Path, svc.Export.Dir())
			}
			data, err := os.ReadFile(res.Path)
			if err != nil {
				t.Fatalf("export file not readable: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("file starts with %q, expected %q", data[:min(len(data), 8)], tt.prefix)
			}
			if res.Bytes != len(data) {
				t.Errorf("Bytes = %d, file has %d", res.Bytes, len(data))
			}
		})
	}
}

func TestExportService_ToFileExplicitPath(t *testing.T) {
	svc, _ := newTestServices(t)
	seed(t, svc, draft("Run", "2024-05-03", "07:00", record.Sport, ""))

	path := filepath.Join(t.TempDir(), "mine.json")
	res, err := svc.Export.ToFile(context.Background(), export.JSON, stats.All, path)
	if err != nil {
		t.Fatalf("ToFile() returned error: %v", err)
	}
	if res.Path != path {
		t.Errorf("Path = %q, expected %q", res.Path, path)
	}
}

func TestExportService_NothingToExport(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	for _, f := range []export.Format{export.JSON, export.CSV, export.ZIP} {
		_, err := svc.Export.ToFile(ctx, f, stats.All, "")
		if !errors.Is(err, export.ErrNothingToExport) {
			t.Errorf("ToFile(%s) error = %v, expected ErrNothingToExport", f, err)
		}
	}

	entries, err := os.ReadDir(svc.Export.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty export left %d files behind", len(entries))
	}
}

func TestExportService_MissingCapability(t *testing.T) {
	svc, _ := newTestServices(t, WithArchiver(nil), WithRasterizer(nil))
	seed(t, svc, draft("Run", "2024-05-03", "07:00", record.Sport, ""))
	ctx := context.Background()

	if _, err := svc.Export.ToFile(ctx, export.ZIP, stats.All, ""); !errors.Is(err, export.ErrCapabilityMissing) {
		t.Errorf("ZIP without archiver error = %v", err)
	}
	if _, err := svc.Export.ToFile(ctx, export.PDF, stats.Week, ""); !errors.Is(err, export.ErrCapabilityMissing) {
		t.Errorf("PDF without rasterizer error = %v", err)
	}
}

func TestExportService_EmptyZIPWithoutArchiver(t *testing.T) {
	svc, _ := newTestServices(t, WithArchiver(nil))

	if _, err := svc.Export.ToFile(context.Background(), export.ZIP, stats.All, ""); !errors.Is(err, export.ErrNothingToExport) {
		t.Errorf("empty ZIP without archiver error = %v, expected ErrNothingToExport", err)
	}
}

func TestExportService_UnknownFormat(t *testing.T) {
	svc, _ := newTestServices(t)
	seed(t, svc, draft("Run", "2024-05-03", "07:00", record.Sport, ""))

	var buf bytes.Buffer
	_, err := svc.Export.Write(context.Background(), export.Format("xml"), stats.All, &buf)
	if !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("Write(xml) error = %v, expected ErrUnknownFormat", err)
	}
}
