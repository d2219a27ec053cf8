// internal/workers/matching/match-request/validation.go
package matchrequest

import (
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
)

// GetInputSchema checks the envelope only. The request body is validated
// against the track's own schema by the recommend service.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"track", "request"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"track": {
				Type: "string",
				Enum: []string{string(models.TrackBusiness), string(models.TrackIndividual)},
			},
			"request": {
				Type:        "object",
				Description: "Company or individual request body",
			},
		},
	}
}
