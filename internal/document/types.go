// Package document defines the identity-document taxonomy and the static
// field configuration shared by the extraction pipeline: the document type
// enumeration, per-type field templates, the field-name alias table, and the
// per-type required-field sets.
package document

import "strings"

// NotFound is the sentinel value the recognition service returns for fields
// it could not locate in the document.
const NotFound = "NOT_FOUND"

// Type enumerates the supported identity-document types.
type Type int

const (
	TypeUnknown Type = iota
	TypeDriversLicense
	TypePassport
	TypeEADCard
)

// String returns the stable machine-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeDriversLicense:
		return "drivers_license"
	case TypePassport:
		return "passport"
	case TypeEADCard:
		return "ead_card"
	default:
		return "unknown"
	}
}

// Label returns the human-readable label stored in the canonical
// document_type field.
func (t Type) Label() string {
	switch t {
	case TypeDriversLicense:
		return "Driver's License"
	case TypePassport:
		return "Passport"
	case TypeEADCard:
		return "EAD Card"
	default:
		return "unknown"
	}
}

// Known reports whether the type is one of the supported document types.
func (t Type) Known() bool {
	return t != TypeUnknown
}

// TypeFromString parses a stable type name as produced by Type.String.
func TypeFromString(s string) Type {
	switch s {
	case "drivers_license":
		return TypeDriversLicense
	case "passport":
		return TypePassport
	case "ead_card":
		return TypeEADCard
	default:
		return TypeUnknown
	}
}

// Classify derives a document type from the raw document_type value returned
// by the recognition service. Recognition output is noisy free text, so this
// is a deliberately permissive substring match rather than an exact-match
// classifier: "DRIVER LICENSE", "Driver's License" and "license" all resolve
// to a driver's license. Anything unrecognized resolves to TypeUnknown.
func Classify(raw string) Type {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "LICENSE"):
		return TypeDriversLicense
	case strings.Contains(upper, "PASSPORT"):
		return TypePassport
	case strings.Contains(upper, "EAD"), strings.Contains(upper, "AUTHORIZATION"):
		return TypeEADCard
	default:
		return TypeUnknown
	}
}
