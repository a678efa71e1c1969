// Package extract implements the identity-document extraction pipeline:
// quality gating, two-pass field recognition, document-type classification,
// field canonicalization, date normalization, required-field validation,
// and per-field confidence scoring.
//
// Processing is strictly one-directional and per-document. The pipeline
// performs at most two sequential recognition calls (the second pass
// depends on the first pass's classification, so the calls cannot be
// parallelized) and holds no mutable state across invocations. All shared
// configuration (field templates, aliases, required sets) is immutable
// after startup, so one Pipeline serves concurrent documents.
package extract

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"idextract/internal/document"
	"idextract/internal/imaging"
	"idextract/internal/logger"
	"idextract/internal/ocr"
	"idextract/internal/recognize"
)

// Config tunes pipeline limits.
type Config struct {
	// RecognizeTimeout bounds each external recognition call.
	RecognizeTimeout time.Duration

	// Limits configures the image quality gate.
	Limits imaging.Limits
}

// DefaultPipelineConfig returns the standard pipeline limits.
func DefaultPipelineConfig() Config {
	return Config{
		RecognizeTimeout: 60 * time.Second,
		Limits:           imaging.DefaultLimits(),
	}
}

// Pipeline orchestrates document processing end to end.
type Pipeline struct {
	recognizer    recognize.Recognizer
	rasterizer    imaging.Rasterizer
	textExtractor ocr.TextExtractor // optional OCR pre-step
	templates     *document.Templates
	config        Config
	log           zerolog.Logger
}

// New creates a pipeline. The rasterizer may be nil when PDF input is not
// expected; the textExtractor is optional and only adds OCR text context to
// recognition calls.
func New(recognizer recognize.Recognizer, rasterizer imaging.Rasterizer, textExtractor ocr.TextExtractor, templates *document.Templates, config Config) *Pipeline {
	return &Pipeline{
		recognizer:    recognizer,
		rasterizer:    rasterizer,
		textExtractor: textExtractor,
		templates:     templates,
		config:        config,
		log:           logger.WithComponent("pipeline"),
	}
}

// Process runs one document (raster image or PDF bytes) through the full
// pipeline and returns the scored canonical field set.
//
// Only three conditions are fatal: an unsuitable image, a failed PDF
// conversion, and a failed first recognition pass. Everything downstream
// degrades into advisories on the result so a reviewer always has something
// actionable.
func (p *Pipeline) Process(ctx context.Context, data []byte) (*Result, error) {
	image, err := p.prepareImage(ctx, data)
	if err != nil {
		return nil, err
	}

	input := recognize.Input{Image: image}
	if p.textExtractor != nil {
		text, err := p.textExtractor.ExtractText(ctx, image)
		if err != nil {
			// OCR is a best-effort pre-step; the recognizer still has the image.
			p.log.Warn().Err(err).Msg("OCR text extraction failed, continuing with image only")
		} else {
			input.Text = text
		}
	}

	firstPass, err := p.recognizePass(ctx, input, document.TypeUnknown, p.templates.Common())
	if err != nil {
		return nil, &PipelineError{
			Op:     "FirstPass",
			Err:    err,
			Reason: "Failed to extract data from document",
		}
	}

	docType := document.Classify(firstPass["document_type"])
	p.log.Info().
		Str("document_type", docType.String()).
		Msg("Document classified")

	merged := firstPass
	if docType.Known() {
		secondPass, err := p.recognizePass(ctx, input, docType, p.templates.Fields(docType))
		if err != nil {
			// Partial information beats none: keep the first-pass result.
			p.log.Warn().
				Err(err).
				Str("document_type", docType.String()).
				Msg("Second recognition pass failed, degrading to first-pass result")
		} else {
			// The second pass uses a type-specific prompt and is authoritative.
			for name, value := range secondPass {
				merged[name] = value
			}
		}
	}

	canonical := Canonicalize(merged, docType, p.templates)

	for name, value := range canonical {
		if p.templates.IsDateField(name) && value != document.NotFound && value != "" {
			canonical[name] = NormalizeDate(value)
		}
	}

	complete, missing := Validate(canonical, docType, p.templates)

	result := &Result{
		Type:         docType,
		DocumentType: docType.String(),
		TypeLabel:    docType.Label(),
		Complete:     complete,
		Missing:      missing,
	}
	if !docType.Known() {
		result.Advisories = append(result.Advisories, AdvisoryUnknownType)
	}
	if !complete {
		result.Advisories = append(result.Advisories, AdvisoryMissingFields)
	}

	names := sortedKeys(canonical)
	result.Fields = make([]Field, 0, len(names))
	for _, name := range names {
		result.Fields = append(result.Fields, scoreField(name, canonical[name], p.templates.IsRequired(docType, name)))
	}

	p.log.Info().
		Str("document_type", docType.String()).
		Bool("complete", complete).
		Int("fields", len(result.Fields)).
		Strs("missing", missing).
		Msg("Document processing completed")

	return result, nil
}

// prepareImage converts PDF input to a raster image and runs the quality
// gate. Both failure modes are fatal and happen before any recognition
// call is attempted.
func (p *Pipeline) prepareImage(ctx context.Context, data []byte) ([]byte, error) {
	if imaging.IsPDF(data) {
		if p.rasterizer == nil {
			return nil, &PipelineError{
				Op:     "Rasterize",
				Err:    imaging.ErrConversionFailed,
				Reason: "PDF input is not supported by this deployment",
			}
		}
		converted, err := p.rasterizer.RasterizeFirstPage(ctx, data)
		if err != nil {
			return nil, &PipelineError{
				Op:     "Rasterize",
				Err:    fmt.Errorf("%w: %v", imaging.ErrConversionFailed, err),
				Reason: "Failed to convert PDF - the file may be corrupted",
			}
		}
		data = converted
	}

	if ok, reason := imaging.CheckQuality(data, p.config.Limits); !ok {
		return nil, &PipelineError{
			Op:     "QualityGate",
			Err:    imaging.ErrUnsuitableImage,
			Reason: reason,
		}
	}

	return data, nil
}

// recognizePass issues one bounded recognition call.
func (p *Pipeline) recognizePass(ctx context.Context, input recognize.Input, hint document.Type, fields []string) (recognize.RawResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.config.RecognizeTimeout)
	defer cancel()
	return p.recognizer.Recognize(callCtx, input, hint, fields)
}

func sortedKeys(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	// Keep output deterministic for storage and tests.
	sort.Strings(names)
	return names
}
