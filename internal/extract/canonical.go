package extract

import (
	"sort"
	"strings"

	"idextract/internal/document"
	"idextract/internal/recognize"
)

// Canonicalize maps the merged raw recognition result onto the canonical
// field schema for the resolved document type. Raw names are lower-cased
// and resolved through the alias table; a handful of fields get type-aware
// handling that a flat alias table cannot express:
//
//   - document_type is rewritten to the human-readable label for the
//     resolved type, except that a raw value of exactly "P" always forces
//     the passport label (the passport-booklet type code).
//   - expiration_date maps to card_expires_date for EAD cards only; an
//     unconditional alias here is known to break driver's-license
//     processing.
//   - country on passports stays country and additionally populates
//     nationality when unset; the recognition service conflates the two.
//   - a full_name containing a space is split on the first space into
//     first_name/last_name when neither is present. This is a best-effort
//     heuristic and mis-splits multi-token given names.
//   - passports always carry an issue_date: date_of_issue when available,
//     the literal "Unknown" otherwise. Issue date is non-critical for
//     passports specifically.
//
// Raw names are visited in sorted order so alias collisions resolve
// deterministically.
func Canonicalize(raw recognize.RawResult, typ document.Type, tpl *document.Templates) map[string]string {
	canonical := make(map[string]string, len(raw))

	canonical["document_type"] = resolveTypeField(raw, typ)

	names := make([]string, 0, len(raw))
	for name := range raw {
		if name == "document_type" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := raw[name]
		lower := strings.ToLower(name)

		var canonicalName string
		switch {
		case lower == "expiration_date":
			if typ == document.TypeEADCard {
				canonicalName = "card_expires_date"
			} else {
				canonicalName = "expiration_date"
			}
		case lower == "country" && typ == document.TypePassport:
			canonicalName = "country"
			if _, ok := canonical["nationality"]; !ok {
				canonical["nationality"] = value
			}
		default:
			canonicalName = tpl.Alias(lower)
		}

		canonical[canonicalName] = value

		if canonicalName == "full_name" && value != document.NotFound && strings.Contains(value, " ") {
			first, last, _ := strings.Cut(strings.TrimSpace(value), " ")
			if first != "" && last != "" {
				if _, ok := canonical["first_name"]; !ok {
					canonical["first_name"] = first
				}
				if _, ok := canonical["last_name"]; !ok {
					canonical["last_name"] = last
				}
			}
		}
	}

	if typ == document.TypePassport {
		if issue, ok := canonical["issue_date"]; !ok || issue == document.NotFound {
			if dateOfIssue, ok := canonical["date_of_issue"]; ok && dateOfIssue != document.NotFound {
				canonical["issue_date"] = dateOfIssue
			} else {
				canonical["issue_date"] = "Unknown"
			}
		}
	}

	return canonical
}

// resolveTypeField produces the canonical document_type value. The label is
// derived from the resolved type, not from whatever free text the service
// returned, with the single "P" booklet-code exception.
func resolveTypeField(raw recognize.RawResult, typ document.Type) string {
	rawType, present := raw["document_type"]

	if present && rawType == "P" {
		return document.TypePassport.Label()
	}
	if typ.Known() {
		return typ.Label()
	}
	if present {
		return rawType
	}
	return typ.String()
}
