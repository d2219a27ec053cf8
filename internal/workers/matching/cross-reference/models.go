// internal/workers/matching/cross-reference/models.go
package crossreference

import "matching-workers/internal/models"

type Input struct {
	IntentProfile models.IntentProfile `json:"intentProfile"`
	Limit         int                  `json:"limit"`
}

type Output struct {
	Matches        []Match `json:"matches"`
	TotalScored    int     `json:"totalScored"`
	CatalogVersion string  `json:"catalogVersion"`
}

// Match is a scored record reduced to what downstream jobs need.
type Match struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Score           float64 `json:"score"`
	StructuralScore float64 `json:"structuralScore"`
	PrecisionScore  float64 `json:"precisionScore"`
}
