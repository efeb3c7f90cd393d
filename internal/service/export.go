package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xolan/lifelog/internal/export"
	"github.com/xolan/lifelog/internal/logging"
	"github.com/xolan/lifelog/internal/stats"
	"github.com/xolan/lifelog/internal/storage"
)

// ExportService writes exports to files or streams
type ExportService struct {
	store      storage.Store
	stats      *StatsService
	archiver   export.Archiver
	rasterizer export.Rasterizer
	dir        string
	log        logging.Logger
}

// NewExportService creates a new ExportService writing files into dir.
// A nil archiver or rasterizer disables ZIP or PDF export.
func NewExportService(store storage.Store, statsSvc *StatsService, archiver export.Archiver, rasterizer export.Rasterizer, dir string, log logging.Logger) *ExportService {
	if dir == "" {
		dir = "."
	}
	return &ExportService{
		store:      store,
		stats:      statsSvc,
		archiver:   archiver,
		rasterizer: rasterizer,
		dir:        dir,
		log:        log.With("component", "export"),
	}
}

// Dir returns the directory export files are written to
func (s *ExportService) Dir() string {
	return s.dir
}

// render produces the export bytes. tr only applies to the PDF, which
// renders the statistics dashboard; the other formats carry every record.
func (s *ExportService) render(ctx context.Context, f export.Format, tr stats.TimeRange) ([]byte, int, error) {
	records := s.store.ReadAll(ctx)

	var buf bytes.Buffer
	var err error
	switch f {
	case export.JSON:
		err = export.WriteJSON(&buf, records)
	case export.CSV:
		err = export.WriteCSV(&buf, records)
	case export.ZIP:
		err = export.WriteZIP(&buf, records, s.archiver, s.stats.Now())
	case export.PDF:
		err = export.WritePDF(&buf, s.stats.Dashboard(ctx, tr), s.rasterizer)
	default:
		err = fmt.Errorf("%w: %q", export.ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(records), nil
}

// Write streams the export to w
func (s *ExportService) Write(ctx context.Context, f export.Format, tr stats.TimeRange, w io.Writer) (ExportResult, error) {
	data, count, err := s.render(ctx, f, tr)
	if err != nil {
		return ExportResult{}, err
	}
	n, err := w.Write(data)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to write export: %w", err)
	}
	return ExportResult{Format: f, Records: count, Bytes: n}, nil
}

// ToFile writes the export into the export directory under its dated name,
// or to path when path is not empty. Nothing is written when rendering fails.
func (s *ExportService) ToFile(ctx context.Context, f export.Format, tr stats.TimeRange, path string) (ExportResult, error) {
	data, count, err := s.render(ctx, f, tr)
	if err != nil {
		return ExportResult{}, err
	}

	if path == "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
		}
		path = filepath.Join(s.dir, export.FileName(f, s.stats.Now()))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.Info(ctx, "export written", "format", f, "path", path, "bytes", len(data))
	return ExportResult{Format: f, Path: path, Records: count, Bytes: len(data)}, nil
}
