// internal/workers/catalog/manage-catalog/validation.go
package managecatalog

import (
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:                 "object",
		Required:             []string{"operation"},
		AdditionalProperties: true,
		Properties: map[string]validation.Property{
			"operation": {
				Type: "string",
				Enum: []string{string(OperationAdd), string(OperationUpdate), string(OperationDelete), string(OperationReload)},
			},
			"collection": {
				Type: "string",
				Enum: []string{string(models.CollectionTools), string(models.CollectionProducts)},
			},
			"id":     {Type: "string"},
			"record": {Type: "object"},
		},
	}
}

// recordSchema checks an added record or an update patch. Added records may
// omit the id; a patch may omit everything.
func recordSchema(op Operation) validation.JSONSchema {
	schema := validation.CatalogRecordSchema()
	switch op {
	case OperationAdd:
		schema.Required = []string{"name", "category"}
	default:
		schema.Required = nil
	}
	return schema
}
