// internal/workers/catalog/query-catalog/models.go
package querycatalog

import (
	"matching-workers/internal/catalog"
	"matching-workers/internal/models"
)

type Input struct {
	Collection models.Collection `json:"collection"`
	ID         string            `json:"id,omitempty"`
}

type Output struct {
	Items []models.CatalogRecord `json:"items"`
	Info  catalog.Info           `json:"info"`
}
