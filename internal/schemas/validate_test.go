package schemas

import (
	"os"
	"path/filepath"
	"testing"

	schemafiles "github.com/Amorizz/portfolio/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCV = `{
	"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com", "languages": []},
	"professionalSummary": "",
	"education": [],
	"experience": [],
	"projects": [],
	"skills": {"technical": []},
	"certifications": [],
	"interests": []
}`

func TestValidate_MinimalCV(t *testing.T) {
	err := Validate(schemafiles.CV, []byte(minimalCV))
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	err := Validate(schemafiles.CV, []byte(`{"personalInfo": {"fullName": "Jane"}}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidate_WrongType(t *testing.T) {
	doc := `{
		"personalInfo": {"fullName": "Jane", "email": "jane@example.com", "languages": []},
		"education": [], "experience": "none", "projects": [],
		"skills": {"technical": []}, "certifications": [], "interests": []
	}`
	err := Validate(schemafiles.CV, []byte(doc))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "experience", validationErr.Errors[0].Field)
}

func TestValidate_UnknownCertificationStatus(t *testing.T) {
	doc := `{
		"personalInfo": {"fullName": "Jane", "email": "jane@example.com", "languages": []},
		"education": [], "experience": [], "projects": [],
		"skills": {"technical": []}, "interests": [],
		"certifications": [{"name": "CCNA", "issuer": "Cisco", "status": "expired"}]
	}`
	err := Validate(schemafiles.CV, []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certifications.0.status")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(schemafiles.CV, []byte("{ invalid json }"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "archive-server", "title": "Archive", "shortDescription": "", "technologies": [], "featured": true, "order": 1}]`), 0644))

	assert.NoError(t, ValidateFile(schemafiles.Projects, path))
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile(schemafiles.Projects, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}}
	assert.Equal(t, "validation failed:\n  1. a: bad\n  2. b: worse\n", err.Error())
}
