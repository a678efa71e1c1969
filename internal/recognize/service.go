// Package recognize provides a uniform interface to the external
// field-recognition services that read identity documents.
//
// A Recognizer is handed an image (and optionally OCR-extracted text), a
// document type hint, and the ordered list of field names to extract. It
// returns a RawResult in which every requested field is guaranteed present:
// fields the underlying service omitted or could not read are backfilled
// with the NOT_FOUND sentinel. Unstructured or partially parseable
// responses degrade to a best-effort partial result rather than an error;
// only transport failures and unusable responses surface as a
// RecognitionError.
//
// Two backends are provided:
//   - OpenAIRecognizer: GPT vision/text extraction (github.com/sashabaranov/go-openai)
//   - DocumentAIRecognizer: Google Document AI identity processors
package recognize

import (
	"context"

	"idextract/internal/document"
)

// RawResult maps raw field names, as returned by the recognition service,
// to raw string values. Missing fields hold document.NotFound.
type RawResult map[string]string

// Input carries the document content handed to a recognizer. Image is the
// raster image bytes; Text optionally carries OCR-extracted text for
// backends (or prompts) that work better with text context.
type Input struct {
	Image []byte
	Text  string
}

// Recognizer extracts named fields from an identity document.
type Recognizer interface {
	// Recognize requests the given fields from the document. The hint is
	// TypeUnknown on the first pass and the classified type on the second,
	// type-specific pass. Every requested field is present in the result,
	// backfilled with document.NotFound when unreadable.
	Recognize(ctx context.Context, in Input, hint document.Type, fields []string) (RawResult, error)
}
