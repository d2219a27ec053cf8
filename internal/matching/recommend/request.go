// internal/matching/recommend/request.go
package recommend

import (
	"strings"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching/intent"
)

// CompanyRequest asks for AI tools that address a business friction point.
type CompanyRequest struct {
	FrictionPoint        string   `json:"friction_point"`
	CompanySize          string   `json:"company_size,omitempty"`
	Industry             string   `json:"industry,omitempty"`
	TechnicalConstraints []string `json:"technical_constraints,omitempty"`
}

// IndividualRequest asks for hardware that fits a personal need.
type IndividualRequest struct {
	Need                string   `json:"need"`
	BudgetRange         string   `json:"budget_range,omitempty"`
	EcosystemPreference string   `json:"ecosystem_preference,omitempty"`
	PrimaryUseCases     []string `json:"primary_use_cases,omitempty"`
}

func (r CompanyRequest) Validate() error {
	return check(validation.ValidateDocument(r, validation.CompanyRequestSchema()))
}

func (r CompanyRequest) hints() intent.BusinessHints {
	return intent.BusinessHints{
		CompanySize:          r.CompanySize,
		Industry:             r.Industry,
		TechnicalConstraints: r.TechnicalConstraints,
	}
}

func (r IndividualRequest) Validate() error {
	return check(validation.ValidateDocument(r, validation.IndividualRequestSchema()))
}

func (r IndividualRequest) hints() intent.IndividualHints {
	return intent.IndividualHints{
		BudgetRange:         r.BudgetRange,
		EcosystemPreference: r.EcosystemPreference,
		PrimaryUseCases:     r.PrimaryUseCases,
	}
}

func check(result *validation.ValidationResult) error {
	if result.Valid {
		return nil
	}
	return errors.NewInputValidationError(strings.Join(result.GetErrorMessages(), "; "))
}
