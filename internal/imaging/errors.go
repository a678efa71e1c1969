package imaging

import "errors"

// Common imaging errors
var (
	// ErrUnsuitableImage is returned by the quality gate when the image is
	// too small, too large, or degenerate. The accompanying reason string is
	// user-actionable and returned verbatim to the caller.
	ErrUnsuitableImage = errors.New("image unsuitable for recognition")

	// ErrConversionFailed is returned when a PDF cannot be converted to a
	// raster image. Fatal for the document; the file may be corrupted.
	ErrConversionFailed = errors.New("PDF conversion failed")
)
