// internal/matching/intent/analyzer.go
package intent

import (
	"matching-workers/internal/matching/keyword"
	"matching-workers/internal/models"
)

// BusinessHints carries the optional structured context of a company request.
type BusinessHints struct {
	CompanySize          string
	Industry             string
	TechnicalConstraints []string
}

// IndividualHints carries the optional structured context of a personal request.
type IndividualHints struct {
	BudgetRange         string
	EcosystemPreference string
	PrimaryUseCases     []string
}

// Analyzer builds intent profiles from free text. It holds no state and is
// safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// AnalyzeBusiness classifies a company friction point. Company context comes
// from hints, never from the text.
func (a *Analyzer) AnalyzeBusiness(text string, hints BusinessHints) models.IntentProfile {
	lower := keyword.Normalize(text)

	return models.IntentProfile{
		Track: models.TrackBusiness,
		Business: &models.BusinessIntent{
			ProblemDomain:       problemDomains.Classify(lower, models.DefaultProblemDomain),
			Requirements:        extractRequirements(lower),
			AutomationPotential: automationLevels.Classify(lower, models.AutomationLow),
			Constraints:         copyStrings(hints.TechnicalConstraints),
			CompanyContext: models.CompanyContext{
				Size:     orDefault(hints.CompanySize, models.DefaultUnknown),
				Industry: orDefault(hints.Industry, models.DefaultUnknown),
			},
			ComplexityScore: complexity(lower),
		},
	}
}

// AnalyzeIndividual classifies a personal hardware need. User context comes
// from hints.
func (a *Analyzer) AnalyzeIndividual(text string, hints IndividualHints) models.IntentProfile {
	lower := keyword.Normalize(text)

	return models.IntentProfile{
		Track: models.TrackIndividual,
		Individual: &models.IndividualIntent{
			UseCase:               useCases.Classify(lower, models.DefaultUseCase),
			TechnicalRequirements: extractTechnicalRequirements(lower),
			Priorities:            determinePriorities(lower),
			UserContext: models.UserContext{
				BudgetRange:         orDefault(hints.BudgetRange, models.DefaultUnknown),
				EcosystemPreference: orDefault(hints.EcosystemPreference, models.EcosystemAgnostic),
				PrimaryUseCases:     copyStrings(hints.PrimaryUseCases),
			},
			SophisticationLevel: sophistication(lower),
		},
	}
}

func extractRequirements(text string) []string {
	reqs := requirementRules.Matches(text)
	if len(reqs) == 0 {
		return []string{models.DefaultRequirement}
	}
	return reqs
}

func complexity(text string) float64 {
	score := float64(keyword.CountMatches(text, complexityIndicators)) / float64(len(complexityIndicators))
	if score > 1 {
		return 1
	}
	return score
}

func extractTechnicalRequirements(text string) map[string]bool {
	reqs := make(map[string]bool, len(technicalIndicators))
	for _, rule := range technicalIndicators {
		reqs[rule.Label] = keyword.ContainsAny(text, rule.Keywords)
	}
	return reqs
}

func determinePriorities(text string) []string {
	priorities := priorityRules.Matches(text)
	if len(priorities) == 0 {
		return []string{models.DefaultPriority}
	}
	return priorities
}

func sophistication(text string) string {
	hits := keyword.CountMatches(text, technicalTerms)
	switch {
	case hits >= expertTermThreshold:
		return models.SophisticationExpert
	case hits >= intermediateTermThreshold:
		return models.SophisticationIntermediate
	default:
		return models.SophisticationBeginner
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
