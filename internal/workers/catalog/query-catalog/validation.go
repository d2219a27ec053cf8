// internal/workers/catalog/query-catalog/validation.go
package querycatalog

import (
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"collection"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"collection": {
				Type: "string",
				Enum: []string{string(models.CollectionTools), string(models.CollectionProducts)},
			},
			"id": {
				Type:        "string",
				Description: "Return only this record",
			},
		},
	}
}
