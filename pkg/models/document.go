package models

import "time"

// Document is a processed identity document as stored and returned by the
// API: the resolved type plus the canonical, scored field set.
type Document struct {
	ID           string    `json:"id" db:"id"`
	Filename     string    `json:"filename" db:"filename"`
	DocumentType string    `json:"document_type" db:"document_type"`
	TypeLabel    string    `json:"type_label" db:"type_label"`
	Complete     bool      `json:"complete" db:"complete"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Advisories carries non-fatal review messages (missing type, missing
	// critical fields) attached when the document was processed.
	Advisories []string `json:"advisories,omitempty" db:"-"`

	Fields []ExtractedField `json:"fields" db:"-"`
}

// ExtractedField is one canonical field of a stored document. Corrected
// tracks manual review: once a human fixes a value the original
// needs-correction flag is cleared and the correction timestamp recorded.
type ExtractedField struct {
	ID              int64      `json:"id" db:"id"`
	DocumentID      string     `json:"-" db:"document_id"`
	FieldName       string     `json:"field_name" db:"field_name"`
	FieldValue      string     `json:"field_value" db:"field_value"`
	Required        bool       `json:"is_required" db:"is_required"`
	NeedsCorrection bool       `json:"needs_correction" db:"needs_correction"`
	ConfidenceScore float64    `json:"confidence_score" db:"confidence_score"`
	ErrorMessage    string     `json:"error_message,omitempty" db:"error_message"`
	Corrected       bool       `json:"corrected" db:"corrected"`
	CorrectedAt     *time.Time `json:"corrected_at,omitempty" db:"corrected_at"`
}
