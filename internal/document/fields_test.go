package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesCommonIncludesTypeField(t *testing.T) {
	tpl := LoadTemplates()
	assert.Contains(t, tpl.Common(), "document_type")
}

func TestTemplatesFieldsPerType(t *testing.T) {
	tpl := LoadTemplates()

	assert.Contains(t, tpl.Fields(TypeDriversLicense), "license_number")
	assert.Contains(t, tpl.Fields(TypePassport), "full_name")
	assert.Contains(t, tpl.Fields(TypeEADCard), "card_expires_date")
	assert.Nil(t, tpl.Fields(TypeUnknown))
}

func TestTemplatesRequired(t *testing.T) {
	tpl := LoadTemplates()

	require.Equal(t,
		[]string{"license_number", "date_of_birth", "issue_date", "expiration_date", "first_name", "last_name"},
		tpl.Required(TypeDriversLicense))

	assert.True(t, tpl.IsRequired(TypePassport, "country"))
	assert.False(t, tpl.IsRequired(TypePassport, "authority"))
	assert.False(t, tpl.IsRequired(TypeUnknown, "license_number"))
}

func TestTemplatesAlias(t *testing.T) {
	tpl := LoadTemplates()

	assert.Equal(t, "document_number", tpl.Alias("passport_number"))
	assert.Equal(t, "last_name", tpl.Alias("surname"))
	assert.Equal(t, "license_number", tpl.Alias("document_number"))
	assert.Equal(t, "card_number", tpl.Alias("ead_number"))

	// Unknown names are already canonical.
	assert.Equal(t, "place_of_birth", tpl.Alias("place_of_birth"))

	// expiration_date must not be aliased; its remap is type-conditional.
	assert.Equal(t, "expiration_date", tpl.Alias("expiration_date"))
}

func TestTemplatesIsDateField(t *testing.T) {
	tpl := LoadTemplates()

	assert.True(t, tpl.IsDateField("date_of_birth"))
	assert.True(t, tpl.IsDateField("card_expires_date"))
	assert.False(t, tpl.IsDateField("license_number"))
}
