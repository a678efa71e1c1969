package imaging

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfHeader is the magic prefix every PDF file starts with.
var pdfHeader = []byte("%PDF")

// IsPDF reports whether the file contents are a PDF document.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

// Rasterizer converts the first page of a PDF into a raster image suitable
// for the quality gate and the recognition service.
type Rasterizer interface {
	RasterizeFirstPage(ctx context.Context, pdf []byte) ([]byte, error)
}

// FirstPageRasterizer extracts the embedded scan image from the first page
// of a PDF. Scanned identity documents are almost always a single full-page
// image, so extracting it is both lossless and cheaper than rendering.
type FirstPageRasterizer struct{}

// NewFirstPageRasterizer returns the pdfcpu-backed rasterizer.
func NewFirstPageRasterizer() *FirstPageRasterizer {
	return &FirstPageRasterizer{}
}

// RasterizeFirstPage returns the bytes of the first image embedded on page
// one. Any failure (unparsable PDF, no pages, no embedded image) is
// reported as ErrConversionFailed.
func (r *FirstPageRasterizer) RasterizeFirstPage(ctx context.Context, pdf []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "idextract-pdf-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	inFile := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(inFile, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp PDF: %w", err)
	}

	outDir := filepath.Join(tmpDir, "images")
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating image dir: %w", err)
	}

	if err := api.ExtractImagesFile(inFile, outDir, []string{"1"}, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading image dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no embedded image on first page", ErrConversionFailed)
	}
	sort.Strings(names)

	img, err := os.ReadFile(filepath.Join(outDir, names[0]))
	if err != nil {
		return nil, fmt.Errorf("reading extracted image: %w", err)
	}
	return img, nil
}
