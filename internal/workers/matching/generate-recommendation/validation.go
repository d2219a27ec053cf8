// internal/workers/matching/generate-recommendation/validation.go
package generaterecommendation

import "matching-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"intentProfile", "matches"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"intentProfile": {
				Type:     "object",
				Required: []string{"track_type"},
			},
			"matches": {
				Type:        "array",
				Description: "Ranked matches from cross-reference-catalog",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"id", "score"},
					Properties: map[string]validation.Property{
						"id":    {Type: "string", MinLength: validation.IntPtr(1)},
						"score": {Type: "number", Minimum: validation.FloatPtr(0), Maximum: validation.FloatPtr(1)},
					},
				},
			},
		},
	}
}
