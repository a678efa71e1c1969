package extract

import "idextract/internal/document"

// Confidence assigned to any field the recognition service produced a value
// for. The upstream service exposes no calibrated per-field confidence, so
// this is a coarse present/absent heuristic, not a probability.
const foundConfidence = 0.8

// Field is one canonical field of a processed document.
type Field struct {
	Name            string  `json:"field_name"`
	Value           string  `json:"field_value"`
	Required        bool    `json:"is_required"`
	NeedsCorrection bool    `json:"needs_correction"`
	Confidence      float64 `json:"confidence_score"`
	Error           string  `json:"error_message,omitempty"`
}

// Result is the outcome of processing one document: the resolved type, the
// scored canonical field set, and the validation verdict. A Result is built
// fresh per invocation and never mutated after Process returns.
type Result struct {
	Type         document.Type `json:"-"`
	DocumentType string        `json:"document_type"`
	TypeLabel    string        `json:"type_label"`
	Fields       []Field       `json:"fields"`
	Complete     bool          `json:"complete"`
	Missing      []string      `json:"missing_fields,omitempty"`
	Advisories   []string      `json:"advisories,omitempty"`
}

// Field returns the named field, if present.
func (r *Result) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// scoreField attaches the confidence and needs-correction verdict to one
// canonical field.
func scoreField(name, value string, required bool) Field {
	missing := value == document.NotFound || value == ""
	field := Field{
		Name:     name,
		Value:    value,
		Required: required,
	}
	if missing {
		field.Value = document.NotFound
		if required {
			field.NeedsCorrection = true
			field.Error = "Field is required"
		}
		return field
	}
	field.Confidence = foundConfidence
	return field
}
