// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRequestSchema(t *testing.T) {
	tests := []struct {
		name      string
		input     map[string]interface{}
		valid     bool
		field     string
		errorCode string
	}{
		{
			name: "valid with optional fields",
			input: map[string]interface{}{
				"friction_point":        "Our support team drowns in repetitive tickets",
				"company_size":          "medium",
				"technical_constraints": []interface{}{"on-premise only"},
			},
			valid: true,
		},
		{
			name:      "missing friction point",
			input:     map[string]interface{}{"industry": "retail"},
			field:     "friction_point",
			errorCode: "REQUIRED_FIELD_MISSING",
		},
		{
			name:      "friction point too short",
			input:     map[string]interface{}{"friction_point": "too slow"},
			field:     "friction_point",
			errorCode: "MIN_LENGTH_VIOLATION",
		},
		{
			name: "unknown field",
			input: map[string]interface{}{
				"friction_point": "Manual invoice entry takes all week",
				"budget":         "large",
			},
			field:     "budget",
			errorCode: "EXTRA_FIELD",
		},
		{
			name: "constraint is not a string",
			input: map[string]interface{}{
				"friction_point":        "Manual invoice entry takes all week",
				"technical_constraints": []interface{}{42},
			},
			field:     "technical_constraints",
			errorCode: "INVALID_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.input, CompanyRequestSchema())
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.valid {
				assert.Empty(t, result.Errors)
				return
			}

			fieldErrors := result.GetErrorsForField(tt.field)
			require.NotEmpty(t, fieldErrors, result.GetErrorMessages())
			assert.Equal(t, tt.errorCode, fieldErrors[0].Code)
		})
	}
}

func TestIndividualRequestSchema(t *testing.T) {
	result := ValidateInput(map[string]interface{}{
		"need":                 "A laptop that trains small models on the go",
		"budget_range":         "premium",
		"ecosystem_preference": "apple",
		"primary_use_cases":    []interface{}{"ml", "travel"},
	}, IndividualRequestSchema())
	assert.True(t, result.Valid, result.GetErrorMessages())

	result = ValidateInput(map[string]interface{}{"need": 12}, IndividualRequestSchema())
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("need"))
}

func TestCatalogRecordSchema_AllowsVendorKeys(t *testing.T) {
	result := ValidateDocument(map[string]interface{}{
		"id":           "t1",
		"name":         "Tool",
		"category":     "General Purpose LLM",
		"vendor_notes": "kept",
	}, CatalogRecordSchema())
	assert.True(t, result.Valid, result.GetErrorMessages())

	result = ValidateDocument(map[string]interface{}{"id": "", "name": "Tool"}, CatalogRecordSchema())
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("category"))
	assert.NotEmpty(t, result.GetErrorsForField("id"))
}

func TestCatalogFileSchema(t *testing.T) {
	valid := []byte(`{
		"ai_tools": [{"id": "t1", "name": "Tool", "category": "Agentic Workflow",
			"deployment_guide": {"setup_steps": ["Install"], "best_practices": []}}],
		"products": []
	}`)
	result := ValidateJSON(valid, CatalogFileSchema())
	assert.True(t, result.Valid, result.GetErrorMessages())

	result = ValidateJSON([]byte(`{"tools": []}`), CatalogFileSchema())
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("tools"))

	result = ValidateJSON([]byte(`{"products": [{"id": "p1", "name": "Laptop"}]}`), CatalogFileSchema())
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.GetErrorsForField("products"))

	result = ValidateJSON([]byte(`{"products": [`), CatalogFileSchema())
	assert.False(t, result.Valid)
	assert.Equal(t, "INVALID_DOCUMENT", result.Errors[0].Code)
}

func TestValidationResult_Helpers(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{
		{Field: "record", Message: "bad", Code: "INVALID_TYPE"},
		{Field: "record.name", Message: "missing", Code: "REQUIRED_FIELD_MISSING"},
		{Field: "recordings", Message: "other", Code: "INVALID_TYPE"},
	}}

	assert.Equal(t, []string{"record: bad", "record.name: missing", "recordings: other"}, vr.GetErrorMessages())
	assert.True(t, vr.HasErrors("record.name"))
	assert.False(t, vr.HasErrors("name"))
	assert.Len(t, vr.GetErrorsForField("record"), 2)
}
