package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Type
	}{
		{"exact license", "DRIVER LICENSE", TypeDriversLicense},
		{"possessive license", "Driver's License", TypeDriversLicense},
		{"lowercase license", "license", TypeDriversLicense},
		{"state prefix", "CALIFORNIA DRIVER LICENSE", TypeDriversLicense},
		{"passport", "PASSPORT", TypePassport},
		{"passport sentence", "United States Passport", TypePassport},
		{"ead acronym", "EAD", TypeEADCard},
		{"employment authorization", "EMPLOYMENT AUTHORIZATION DOCUMENT", TypeEADCard},
		{"authorization alone", "Employment Authorization", TypeEADCard},
		{"empty", "", TypeUnknown},
		{"not found sentinel", NotFound, TypeUnknown},
		{"unrelated text", "STATE ID CARD", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, typ := range []Type{TypeDriversLicense, TypePassport, TypeEADCard, TypeUnknown} {
		assert.Equal(t, typ, TypeFromString(typ.String()))
	}
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Driver's License", TypeDriversLicense.Label())
	assert.Equal(t, "Passport", TypePassport.Label())
	assert.Equal(t, "EAD Card", TypeEADCard.Label())
	assert.Equal(t, "unknown", TypeUnknown.Label())
}

func TestKnown(t *testing.T) {
	assert.False(t, TypeUnknown.Known())
	assert.True(t, TypeDriversLicense.Known())
	assert.True(t, TypePassport.Known())
	assert.True(t, TypeEADCard.Known())
}
