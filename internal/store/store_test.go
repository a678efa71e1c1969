package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idextract/internal/extract"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func licenseResult() *extract.Result {
	return &extract.Result{
		DocumentType: "drivers_license",
		TypeLabel:    "Driver's License",
		Complete:     false,
		Missing:      []string{"issue_date"},
		Advisories:   []string{"Critical fields missing - manual review required"},
		Fields: []extract.Field{
			{Name: "document_type", Value: "Driver's License", Confidence: 0.8},
			{Name: "first_name", Value: "JOHN", Required: true, Confidence: 0.8},
			{Name: "issue_date", Value: "NOT_FOUND", Required: true, NeedsCorrection: true, Error: "Field is required"},
			{Name: "license_number", Value: "D1234567", Required: true, Confidence: 0.8},
		},
	}
}

func TestSaveResultAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saved, err := st.SaveResult(ctx, "license.jpg", licenseResult())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	doc, err := st.Get(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, "license.jpg", doc.Filename)
	assert.Equal(t, "drivers_license", doc.DocumentType)
	assert.Equal(t, "Driver's License", doc.TypeLabel)
	assert.False(t, doc.Complete)
	assert.Equal(t, []string{"Critical fields missing - manual review required"}, doc.Advisories)
	require.Len(t, doc.Fields, 4)

	// Fields come back ordered by name.
	assert.Equal(t, "document_type", doc.Fields[0].FieldName)
	assert.Equal(t, "first_name", doc.Fields[1].FieldName)

	issueDate := doc.Fields[2]
	assert.Equal(t, "issue_date", issueDate.FieldName)
	assert.Equal(t, "NOT_FOUND", issueDate.FieldValue)
	assert.True(t, issueDate.Required)
	assert.True(t, issueDate.NeedsCorrection)
	assert.Equal(t, "Field is required", issueDate.ErrorMessage)
	assert.False(t, issueDate.Corrected)
	assert.Nil(t, issueDate.CorrectedAt)
}

func TestGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.SaveResult(ctx, "a.jpg", licenseResult())
	require.NoError(t, err)
	second, err := st.SaveResult(ctx, "b.jpg", licenseResult())
	require.NoError(t, err)

	docs, err := st.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	ids := []string{docs[0].ID, docs[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.NotEmpty(t, docs[0].Fields)

	docs, err = st.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = st.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saved, err := st.SaveResult(ctx, "license.jpg", licenseResult())
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, saved.ID))

	_, err = st.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.Delete(ctx, saved.ID), ErrNotFound)
}

func TestCorrectFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saved, err := st.SaveResult(ctx, "license.jpg", licenseResult())
	require.NoError(t, err)

	doc, err := st.CorrectFields(ctx, saved.ID, map[string]string{
		"issue_date": "01/10/2020",
	})
	require.NoError(t, err)

	var corrected bool
	for _, field := range doc.Fields {
		if field.FieldName != "issue_date" {
			continue
		}
		corrected = true
		assert.Equal(t, "01/10/2020", field.FieldValue)
		assert.False(t, field.NeedsCorrection)
		assert.Empty(t, field.ErrorMessage)
		assert.InDelta(t, 1.0, field.ConfidenceScore, 1e-9)
		assert.True(t, field.Corrected)
		assert.NotNil(t, field.CorrectedAt)
	}
	assert.True(t, corrected, "issue_date should be present")
}

func TestCorrectFieldsUnknownField(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	saved, err := st.SaveResult(ctx, "license.jpg", licenseResult())
	require.NoError(t, err)

	_, err = st.CorrectFields(ctx, saved.ID, map[string]string{"no_such_field": "x"})
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = st.CorrectFields(ctx, "no-such-doc", map[string]string{"issue_date": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
