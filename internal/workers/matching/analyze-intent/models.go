// internal/workers/matching/analyze-intent/models.go
package analyzeintent

import "matching-workers/internal/models"

type Input struct {
	Track                models.Track `json:"track"`
	Text                 string       `json:"text"`
	CompanySize          string       `json:"companySize,omitempty"`
	Industry             string       `json:"industry,omitempty"`
	TechnicalConstraints []string     `json:"technicalConstraints,omitempty"`
	BudgetRange          string       `json:"budgetRange,omitempty"`
	EcosystemPreference  string       `json:"ecosystemPreference,omitempty"`
	PrimaryUseCases      []string     `json:"primaryUseCases,omitempty"`
}

type Output struct {
	IntentProfile models.IntentProfile `json:"intentProfile"`
}
