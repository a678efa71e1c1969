package document

// Templates holds the static field configuration for the pipeline. It is
// built once at startup with LoadTemplates and never mutated afterwards, so
// a single instance is safe to share across concurrently processed
// documents.
type Templates struct {
	common     []string
	fields     map[Type][]string
	required   map[Type][]string
	requireSet map[Type]map[string]bool
	aliases    map[string]string
	dateFields map[string]bool
}

// LoadTemplates builds the immutable field configuration tables.
func LoadTemplates() *Templates {
	t := &Templates{
		// Cross-type fields requested in the first recognition pass, before
		// the document type is known.
		common: []string{
			"document_type",
			"first_name",
			"last_name",
			"date_of_birth",
			"expiration_date",
			"address",
			"sex",
			"document_number",
			"nationality",
		},

		// Full per-type field sets requested in the second, type-specific
		// recognition pass.
		fields: map[Type][]string{
			TypeDriversLicense: {
				"license_number",
				"first_name",
				"last_name",
				"date_of_birth",
				"issue_date",
				"expiration_date",
				"document_type",
			},
			TypePassport: {
				"document_number",
				"passport_number",
				"full_name",
				"surname",
				"given_names",
				"nationality",
				"country",
				"date_of_birth",
				"place_of_birth",
				"date_of_issue",
				"issue_date",
				"date_of_expiry",
				"expiration_date",
				"authority",
				"sex",
				"document_type",
			},
			TypeEADCard: {
				"card_number",
				"first_name",
				"last_name",
				"category",
				"card_expires_date",
				"document_type",
			},
		},

		// Critical fields per type. A missing one does not reject the
		// document but flags it for manual review.
		required: map[Type][]string{
			TypeDriversLicense: {
				"license_number",
				"date_of_birth",
				"issue_date",
				"expiration_date",
				"first_name",
				"last_name",
			},
			TypePassport: {
				"full_name",
				"date_of_birth",
				"country",
				"issue_date",
				"expiration_date",
			},
			TypeEADCard: {
				"card_number",
				"category",
				"first_name",
				"last_name",
				"card_expires_date",
			},
		},

		// Type-independent raw-name → canonical-name aliases. The table is
		// flat: an alias applies no matter which document type is being
		// processed. expiration_date is intentionally absent: mapping it to
		// card_expires_date unconditionally breaks driver's-license
		// processing, so the EAD-only remap lives in the canonicalization
		// logic instead.
		aliases: map[string]string{
			// Passport
			"passport_number":     "document_number",
			"passport_no":         "document_number",
			"passportno":          "document_number",
			"surname":             "last_name",
			"given_names":         "first_name",
			"given_name":          "first_name",
			"name":                "full_name",
			"country_of_issuance": "nationality",
			"date_of_expiry":      "expiration_date",
			"expires":             "expiration_date",
			"date_of_issue":       "issue_date",
			"birthdate":           "date_of_birth",
			"birth_date":          "date_of_birth",
			"dob":                 "date_of_birth",

			// Driver's license
			"license_no":             "license_number",
			"dl_number":              "license_number",
			"dl":                     "license_number",
			"driver_license_number":  "license_number",
			"drivers_license_number": "license_number",
			"operator_license":       "license_number",
			"document_number":        "license_number",
			"fname":                  "first_name",
			"lname":                  "last_name",
			"issue":                  "issue_date",
			"expiry":                 "expiration_date",
			"expiration":             "expiration_date",
			"expires_on":             "expiration_date",
			"expires_date":           "expiration_date",
			"card_expires_date":      "expiration_date",
			"issued_on":              "issue_date",

			// EAD card
			"ead_number":                      "card_number",
			"card#":                           "card_number",
			"card_#":                          "card_number",
			"authorization_number":            "card_number",
			"employment_authorization_number": "card_number",
			"valid_until":                     "card_expires_date",
			"first":                           "first_name",
			"last":                            "last_name",
			"ead_category":                    "category",
			"class":                           "category",
		},

		// Canonical fields whose values run through the date normalizer.
		dateFields: map[string]bool{
			"date_of_birth":     true,
			"expiration_date":   true,
			"issue_date":        true,
			"date_of_issue":     true,
			"date_of_expiry":    true,
			"valid_from":        true,
			"expires":           true,
			"card_expires_date": true,
		},
	}

	t.requireSet = make(map[Type]map[string]bool, len(t.required))
	for typ, names := range t.required {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			set[name] = true
		}
		t.requireSet[typ] = set
	}

	return t
}

// Common returns the field set requested in the first recognition pass.
func (t *Templates) Common() []string {
	return t.common
}

// Fields returns the full field template for a document type, or nil for
// TypeUnknown.
func (t *Templates) Fields(typ Type) []string {
	return t.fields[typ]
}

// Required returns the ordered required-field set for a document type.
func (t *Templates) Required(typ Type) []string {
	return t.required[typ]
}

// IsRequired reports whether a canonical field is critical for the type.
func (t *Templates) IsRequired(typ Type, name string) bool {
	return t.requireSet[typ][name]
}

// Alias resolves a lower-cased raw field name to its canonical name. When no
// alias exists the raw name is already canonical and is returned unchanged.
func (t *Templates) Alias(lower string) string {
	if canonical, ok := t.aliases[lower]; ok {
		return canonical
	}
	return lower
}

// IsDateField reports whether a canonical field carries a date value.
func (t *Templates) IsDateField(name string) bool {
	return t.dateFields[name]
}
