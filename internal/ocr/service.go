// Package ocr provides OCR (Optical Character Recognition) for scanned
// identity documents using the Google Cloud Vision API.
//
// The pipeline uses OCR as an optional pre-step: the raw text extracted
// here is handed to the recognition service as additional context. The
// recognizer works on the raster image either way, so OCR failures degrade
// rather than abort.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
package ocr

import "context"

// TextExtractor extracts raw text from a raster image.
type TextExtractor interface {
	// ExtractText returns the full text detected in the image, in reading
	// order. Returns ErrEmptyDocument when no text is detected.
	ExtractText(ctx context.Context, image []byte) (string, error)
}
