// internal/workers/catalog/manage-catalog/models.go
package managecatalog

import (
	"matching-workers/internal/catalog"
	"matching-workers/internal/models"
)

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationReload Operation = "reload"
)

type Input struct {
	Operation  Operation              `json:"operation"`
	Collection models.Collection      `json:"collection,omitempty"`
	ID         string                 `json:"id,omitempty"`
	Record     map[string]interface{} `json:"record,omitempty"`
}

type Output struct {
	Success bool         `json:"success"`
	ID      string       `json:"id,omitempty"`
	Info    catalog.Info `json:"info"`
}
