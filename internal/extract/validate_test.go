package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"idextract/internal/document"
)

func completeLicenseFields() map[string]string {
	return map[string]string{
		"license_number":  "D1234567",
		"date_of_birth":   "03/15/1985",
		"issue_date":      "01/10/2020",
		"expiration_date": "03/15/2028",
		"first_name":      "JOHN",
		"last_name":       "SMITH",
	}
}

func TestValidateComplete(t *testing.T) {
	tpl := document.LoadTemplates()

	complete, missing := Validate(completeLicenseFields(), document.TypeDriversLicense, tpl)
	assert.True(t, complete)
	assert.Empty(t, missing)
}

func TestValidateMissingField(t *testing.T) {
	tpl := document.LoadTemplates()

	for _, name := range tpl.Required(document.TypeDriversLicense) {
		fields := completeLicenseFields()
		delete(fields, name)

		complete, missing := Validate(fields, document.TypeDriversLicense, tpl)
		assert.False(t, complete, "removing %s should fail validation", name)
		assert.Equal(t, []string{name}, missing)
	}
}

func TestValidateNotFoundCountsAsMissing(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := completeLicenseFields()
	fields["license_number"] = document.NotFound

	complete, missing := Validate(fields, document.TypeDriversLicense, tpl)
	assert.False(t, complete)
	assert.Equal(t, []string{"license_number"}, missing)
}

func TestValidateUnknownType(t *testing.T) {
	tpl := document.LoadTemplates()

	complete, missing := Validate(completeLicenseFields(), document.TypeUnknown, tpl)
	assert.False(t, complete)
	assert.Equal(t, []string{"Unknown document type - cannot validate required fields"}, missing)
}

func TestValidatePassportUnknownIssueDateAccepted(t *testing.T) {
	tpl := document.LoadTemplates()

	fields := map[string]string{
		"full_name":       "JOHN SMITH",
		"date_of_birth":   "15 Jan 1985",
		"country":         "USA",
		"issue_date":      "Unknown",
		"expiration_date": "14 Jan 2030",
	}

	complete, missing := Validate(fields, document.TypePassport, tpl)
	assert.True(t, complete)
	assert.Empty(t, missing)

	// The same sentinel on a driver's license is not special.
	dlFields := completeLicenseFields()
	dlFields["issue_date"] = document.NotFound
	complete, _ = Validate(dlFields, document.TypeDriversLicense, tpl)
	assert.False(t, complete)
}
