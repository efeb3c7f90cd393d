package export

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/xolan/lifelog/internal/record"
)

// File is one named entry of an archive
type File struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Archiver packs files into a single archive written to w
type Archiver interface {
	Archive(w io.Writer, files []File) error
}

// ZipArchiver writes deflate-compressed ZIP archives
type ZipArchiver struct{}

func (ZipArchiver) Archive(w io.Writer, files []File) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// WriteZIP writes an archive holding records_<date>.json and records_<date>.csv.
// An empty record set yields ErrNothingToExport, checked before a nil
// archiver yields ErrCapabilityMissing.
func WriteZIP(w io.Writer, records []record.Record, archiver Archiver, now time.Time) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	if archiver == nil {
		return ErrCapabilityMissing
	}

	jsonData, err := EncodeJSON(records)
	if err != nil {
		return err
	}
	csvData, err := EncodeCSV(records)
	if err != nil {
		return err
	}

	return archiver.Archive(w, []File{
		{Name: FileName(JSON, now), Data: jsonData, Modified: now},
		{Name: FileName(CSV, now), Data: csvData, Modified: now},
	})
}
