package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"idextract/internal/document"
	"idextract/internal/recognize"
)

func TestCanonicalizeExpirationDateIsTypeConditional(t *testing.T) {
	tpl := document.LoadTemplates()
	raw := recognize.RawResult{"expiration_date": "08/15/2026"}

	ead := Canonicalize(raw, document.TypeEADCard, tpl)
	assert.Equal(t, "08/15/2026", ead["card_expires_date"])
	assert.NotContains(t, ead, "expiration_date")

	dl := Canonicalize(raw, document.TypeDriversLicense, tpl)
	assert.Equal(t, "08/15/2026", dl["expiration_date"])
	assert.NotContains(t, dl, "card_expires_date")
}

func TestCanonicalizeFullNameSplit(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{"full_name": "JOHN SMITH"}, document.TypePassport, tpl)
	assert.Equal(t, "JOHN SMITH", fields["full_name"])
	assert.Equal(t, "JOHN", fields["first_name"])
	assert.Equal(t, "SMITH", fields["last_name"])

	// The split is first-space only; multi-token surnames land in last_name.
	fields = Canonicalize(recognize.RawResult{"full_name": "MARIA DE LA CRUZ"}, document.TypePassport, tpl)
	assert.Equal(t, "MARIA", fields["first_name"])
	assert.Equal(t, "DE LA CRUZ", fields["last_name"])
}

func TestCanonicalizeFullNameSplitDoesNotOverwrite(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{
		"full_name":  "JOHN SMITH",
		"first_name": "JOHNNY",
	}, document.TypePassport, tpl)
	assert.Equal(t, "JOHNNY", fields["first_name"])
}

func TestCanonicalizeFullNameNotFoundNotSplit(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{"full_name": document.NotFound}, document.TypePassport, tpl)
	assert.NotContains(t, fields, "first_name")
	assert.NotContains(t, fields, "last_name")
}

func TestCanonicalizePassportBookletCode(t *testing.T) {
	tpl := document.LoadTemplates()

	// The MRZ type code "P" forces the passport label regardless of the
	// resolved type.
	fields := Canonicalize(recognize.RawResult{"document_type": "P"}, document.TypeUnknown, tpl)
	assert.Equal(t, "Passport", fields["document_type"])
}

func TestCanonicalizeTypeLabel(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{"document_type": "CALIFORNIA DRIVER LICENSE"}, document.TypeDriversLicense, tpl)
	assert.Equal(t, "Driver's License", fields["document_type"])

	// Unknown type keeps whatever the service said.
	fields = Canonicalize(recognize.RawResult{"document_type": "STATE ID"}, document.TypeUnknown, tpl)
	assert.Equal(t, "STATE ID", fields["document_type"])
}

func TestCanonicalizePassportCountryFillsNationality(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{"country": "USA"}, document.TypePassport, tpl)
	assert.Equal(t, "USA", fields["country"])
	assert.Equal(t, "USA", fields["nationality"])

	fields = Canonicalize(recognize.RawResult{
		"country":     "USA",
		"nationality": "UNITED STATES OF AMERICA",
	}, document.TypePassport, tpl)
	assert.Equal(t, "UNITED STATES OF AMERICA", fields["nationality"])
}

func TestCanonicalizePassportIssueDateFallback(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{}, document.TypePassport, tpl)
	assert.Equal(t, "Unknown", fields["issue_date"])

	fields = Canonicalize(recognize.RawResult{"issue_date": "01/02/2020"}, document.TypePassport, tpl)
	assert.Equal(t, "01/02/2020", fields["issue_date"])

	fields = Canonicalize(recognize.RawResult{"issue_date": document.NotFound}, document.TypePassport, tpl)
	assert.Equal(t, "Unknown", fields["issue_date"])
}

func TestCanonicalizeAliases(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{
		"Surname":     "NGUYEN",
		"given_names": "LINH",
		"dob":         "04/04/1994",
	}, document.TypePassport, tpl)

	assert.Equal(t, "NGUYEN", fields["last_name"])
	assert.Equal(t, "LINH", fields["first_name"])
	assert.Equal(t, "04/04/1994", fields["date_of_birth"])
}

func TestCanonicalizeDocumentNumberBecomesLicenseNumber(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := Canonicalize(recognize.RawResult{"document_number": "D1234567"}, document.TypeDriversLicense, tpl)
	assert.Equal(t, "D1234567", fields["license_number"])
}
