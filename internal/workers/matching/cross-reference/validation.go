// internal/workers/matching/cross-reference/validation.go
package crossreference

import "matching-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"intentProfile"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"intentProfile": {
				Type:        "object",
				Description: "Profile produced by analyze-intent",
				Required:    []string{"track_type"},
			},
			"limit": {
				Type:        "integer",
				Description: "Number of matches to return, 0 for all",
				Minimum:     validation.FloatPtr(0),
			},
		},
	}
}
