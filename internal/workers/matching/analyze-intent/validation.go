// internal/workers/matching/analyze-intent/validation.go
package analyzeintent

import (
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
)

// GetInputSchema allows unrelated process variables next to the input.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"track", "text"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"track": {
				Type:        "string",
				Description: "Recommendation track",
				Enum:        []string{string(models.TrackBusiness), string(models.TrackIndividual)},
			},
			"text": {
				Type:        "string",
				Description: "Friction point or personal need",
				MinLength:   validation.IntPtr(validation.MinRequestTextLength),
			},
			"companySize":          {Type: "string"},
			"industry":             {Type: "string"},
			"technicalConstraints": {Type: "array", Items: &validation.Property{Type: "string"}},
			"budgetRange":          {Type: "string"},
			"ecosystemPreference":  {Type: "string"},
			"primaryUseCases":      {Type: "array", Items: &validation.Property{Type: "string"}},
		},
	}
}
