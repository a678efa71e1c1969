package extract

import (
	"errors"
	"fmt"

	"idextract/internal/imaging"
)

// Advisory messages attached to results that still carry usable field data.
const (
	// AdvisoryUnknownType flags a document whose type could not be
	// determined from the first recognition pass.
	AdvisoryUnknownType = "Could not determine document type - manual review required"

	// AdvisoryMissingFields flags a document missing one or more critical
	// fields for its type.
	AdvisoryMissingFields = "Critical fields missing - manual review required"
)

// PipelineError wraps fatal pipeline failures with the stage that failed
// and a user-actionable reason. Only quality rejection, PDF conversion
// failure, and a failed first recognition pass are fatal; everything else
// degrades into advisories on the result.
type PipelineError struct {
	// Op is the pipeline stage that failed (e.g., "QualityGate").
	Op string

	// Err is the underlying error.
	Err error

	// Reason is a human-readable message safe to show to the uploader.
	Reason string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("extract: %s failed: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// UserMessage extracts the message to show the uploader for a fatal
// pipeline error.
func UserMessage(err error) string {
	var pipeErr *PipelineError
	if errors.As(err, &pipeErr) && pipeErr.Reason != "" {
		return pipeErr.Reason
	}
	if errors.Is(err, imaging.ErrConversionFailed) {
		return "Failed to convert PDF - the file may be corrupted"
	}
	return "Failed to extract data from document"
}
