package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = string(content)
	}
	return files
}

func TestWriteZIP(t *testing.T) {
	now := time.Date(2024, time.May, 3, 12, 0, 0, 0, time.UTC)
	records := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteZIP(&buf, records, ZipArchiver{}, now))

	files := readZip(t, buf.Bytes())
	require.Len(t, files, 2)

	jsonData, err := EncodeJSON(records)
	require.NoError(t, err)
	csvData, err := EncodeCSV(records)
	require.NoError(t, err)

	assert.Equal(t, string(jsonData), files["records_2024-05-03.json"])
	assert.Equal(t, string(csvData), files["records_2024-05-03.csv"])
}

func TestWriteZIP_NoArchiver(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZIP(&buf, sampleRecords(), nil, time.Now())
	assert.ErrorIs(t, err, ErrCapabilityMissing)
}

func TestWriteZIP_EmptyBeforeCapability(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZIP(&buf, nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.NotErrorIs(t, err, ErrCapabilityMissing)
	assert.Zero(t, buf.Len())
}

type failingArchiver struct{}

func (failingArchiver) Archive(io.Writer, []File) error { return errors.New("disk full") }

func TestWriteZIP_ArchiverError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteZIP(&buf, sampleRecords(), failingArchiver{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
