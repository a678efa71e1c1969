package recognize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"idextract/internal/document"
)

func TestParseFieldLines(t *testing.T) {
	response := `document_type: DRIVER LICENSE
first_name: JOHN
last_name: SMITH
date_of_birth: 03/15/1985
document_number: NOT_FOUND`

	result := parseFieldLines(response, []string{
		"document_type", "first_name", "last_name", "date_of_birth", "document_number", "address",
	})

	assert.Equal(t, "DRIVER LICENSE", result["document_type"])
	assert.Equal(t, "JOHN", result["first_name"])
	assert.Equal(t, "03/15/1985", result["date_of_birth"])
	assert.Equal(t, document.NotFound, result["document_number"])

	// Requested but absent from the response.
	assert.Equal(t, document.NotFound, result["address"])
}

func TestParseFieldLinesSkipsJunk(t *testing.T) {
	response := `Here are the extracted fields

- first_name: JOHN
no colon on this line
: empty name
last_name: SMITH`

	result := parseFieldLines(response, nil)

	assert.Equal(t, "JOHN", result["first_name"])
	assert.Equal(t, "SMITH", result["last_name"])
	assert.NotContains(t, result, "")
	assert.NotContains(t, result, "no colon on this line")
}

func TestParseFieldLinesValueWithColon(t *testing.T) {
	// Only the first colon separates name from value.
	result := parseFieldLines("address: 123 MAIN ST: APT 4", nil)
	assert.Equal(t, "123 MAIN ST: APT 4", result["address"])
}

func TestCleanValueDateReformat(t *testing.T) {
	assert.Equal(t, "03/15/1985", cleanValue("date_of_birth", "3-15-1985"))
	assert.Equal(t, "01/05/2020", cleanValue("issue_date", "1.5.2020"))

	// Two digit groups are left alone.
	assert.Equal(t, "03/1985", cleanValue("date_of_birth", "03/1985"))

	// Non-date fields keep their punctuation.
	assert.Equal(t, "123-45-678", cleanValue("document_number", "123-45-678"))
}

func TestFixOCRMisreads(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"O between digits", "12O45", "12045"},
		{"O inside word kept", "JOHN", "JOHN"},
		{"I between digits", "1I23", "1123"},
		{"I inside word kept", "ILLINOIS", "ILLINOIS"},
		{"S before digit", "S5012", "55012"},
		{"S in word kept", "SMITH", "SMITH"},
		{"B between digits", "1B3", "183"},
		{"B at word start kept", "BAKER", "BAKER"},
		{"clean digits untouched", "1234567", "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixOCRMisreads(tt.in))
		})
	}
}

func TestCleanValueLicenseTrailingO(t *testing.T) {
	// An O right before the final letter run is a misread zero.
	assert.Equal(t, "D123450X", cleanValue("license_number", "D12345OX"))

	// A leading letter O stays: it is part of the prefix, not the body.
	assert.Equal(t, "OD12345", cleanValue("license_number", "OD12345"))
}
