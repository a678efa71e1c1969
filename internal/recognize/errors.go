package recognize

import (
	"errors"
	"fmt"
)

// Common recognition errors
var (
	// ErrRecognitionFailed is returned when the external recognition service
	// is unreachable or returns an error.
	ErrRecognitionFailed = errors.New("recognition service call failed")

	// ErrEmptyResponse is returned when the recognition service returns no
	// usable content at all.
	ErrEmptyResponse = errors.New("recognition service returned an empty response")

	// ErrMissingAPIKey is returned when the recognizer is constructed
	// without credentials.
	ErrMissingAPIKey = errors.New("missing recognition service API key")

	// ErrMissingCredentials is returned when Google Cloud credentials are
	// not configured for the Document AI backend.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
)

// RecognitionError wraps errors with additional context about the
// recognition failure.
type RecognitionError struct {
	// Op is the operation that failed (e.g., "Recognize").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *RecognitionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("recognize: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("recognize: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *RecognitionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapRecognitionError wraps an error as a RecognitionError if it isn't
// already one.
func WrapRecognitionError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var recErr *RecognitionError
	if errors.As(err, &recErr) {
		return err // Already wrapped
	}

	return &RecognitionError{Op: op, Err: err, Details: details}
}
