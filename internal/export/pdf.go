package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/xolan/lifelog/internal/stats"
)

// pdfPageFill is the share of the page the image may cover
const pdfPageFill = 0.95

var disableConfigDir sync.Once

// WritePDF rasterizes the dashboard and writes it as a single A4 page,
// centered and scaled to fit with its aspect ratio kept.
// A nil rasterizer yields ErrCapabilityMissing.
func WritePDF(w io.Writer, d stats.Dashboard, r Rasterizer) error {
	if r == nil {
		return ErrCapabilityMissing
	}

	img, err := r.Rasterize(d)
	if err != nil {
		return fmt.Errorf("failed to render statistics: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode statistics image: %w", err)
	}

	return EmbedImage(w, &buf)
}

// EmbedImage writes a one-page A4 PDF holding the image read from img
func EmbedImage(w io.Writer, img io.Reader) error {
	// pdfcpu would otherwise install its config under the user config dir
	disableConfigDir.Do(api.DisableConfigDir)

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Center
	imp.Scale = pdfPageFill
	imp.ScaleAbs = false

	if err := api.ImportImages(nil, w, []io.Reader{img}, imp, nil); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return nil
}
