package extract

import "idextract/internal/document"

// unknownTypeMissing is reported when the document type itself could not be
// resolved and required fields cannot be checked.
const unknownTypeMissing = "Unknown document type - cannot validate required fields"

// Validate checks the canonical field set against the required-field set
// for the document type. A field counts as missing when absent or equal to
// the NOT_FOUND sentinel, with one exception: a passport issue_date of
// exactly "Unknown" is accepted (issue date is non-critical for passports).
//
// Validation gates the confidence of the result, not whether a result is
// returned: an incomplete document still yields its field set, flagged for
// manual review.
func Validate(fields map[string]string, typ document.Type, tpl *document.Templates) (bool, []string) {
	if !typ.Known() {
		return false, []string{unknownTypeMissing}
	}

	var missing []string
	for _, name := range tpl.Required(typ) {
		value, ok := fields[name]
		if typ == document.TypePassport && name == "issue_date" && value == "Unknown" {
			continue
		}
		if !ok || value == document.NotFound {
			missing = append(missing, name)
		}
	}

	return len(missing) == 0, missing
}
