// internal/workers/matching/generate-recommendation/models.go
package generaterecommendation

import "matching-workers/internal/models"

type Input struct {
	IntentProfile models.IntentProfile `json:"intentProfile"`
	Matches       []Match              `json:"matches"`
}

// Match is one entry of the cross-reference-catalog output. Only ID and
// Score are read; the record itself comes from the current snapshot.
type Match struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

type Output struct {
	CompanyRecommendation    *models.CompanyRecommendation    `json:"companyRecommendation,omitempty"`
	IndividualRecommendation *models.IndividualRecommendation `json:"individualRecommendation,omitempty"`
}
