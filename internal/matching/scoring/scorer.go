// internal/matching/scoring/scorer.go
package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"matching-workers/internal/models"
)

const (
	StructuralWeight = 0.65
	PrecisionWeight  = 0.35
)

// ErrTrackMismatch is returned when an intent is scored against the wrong
// catalog collection, e.g. an individual profile passed to ScoreTools.
var ErrTrackMismatch = errors.New("intent track does not match catalog collection")

// Weights splits the final score between the structural and precision
// sub-scores.
type Weights struct {
	Structural float64
	Precision  float64
}

// DefaultWeights returns the 65/35 structural/precision split.
func DefaultWeights() Weights {
	return Weights{Structural: StructuralWeight, Precision: PrecisionWeight}
}

// Scorer ranks catalog records against an intent profile. It is stateless
// apart from its weights and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer combining sub-scores with weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// ScoreTools returns every tool ranked by final score, highest first. Tools
// with equal scores keep their catalog order.
func (s *Scorer) ScoreTools(profile models.IntentProfile, tools []models.CatalogRecord) ([]models.ScoredMatch, error) {
	if profile.Track != models.TrackBusiness || profile.Business == nil {
		return nil, fmt.Errorf("score tools with %q intent: %w", profile.Track, ErrTrackMismatch)
	}

	matches := make([]models.ScoredMatch, 0, len(tools))
	for _, tool := range tools {
		structural := toolStructural(profile.Business, tool)
		precision := toolPrecision(profile.Business, tool)
		matches = append(matches, s.combine(tool, structural, precision))
	}
	rank(matches)
	return matches, nil
}

// ScoreProducts returns every product ranked by final score, highest first.
func (s *Scorer) ScoreProducts(profile models.IntentProfile, products []models.CatalogRecord) ([]models.ScoredMatch, error) {
	if profile.Track != models.TrackIndividual || profile.Individual == nil {
		return nil, fmt.Errorf("score products with %q intent: %w", profile.Track, ErrTrackMismatch)
	}

	matches := make([]models.ScoredMatch, 0, len(products))
	for _, product := range products {
		structural := productStructural(profile.Individual, product)
		precision := productPrecision(profile.Individual, product)
		matches = append(matches, s.combine(product, structural, precision))
	}
	rank(matches)
	return matches, nil
}

func (s *Scorer) combine(record models.CatalogRecord, structural, precision models.SubScore) models.ScoredMatch {
	return models.ScoredMatch{
		Record:     record,
		Score:      structural.Value*s.weights.Structural + precision.Value*s.weights.Precision,
		Structural: structural,
		Precision:  precision,
	}
}

func rank(matches []models.ScoredMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

// accumulator sums weighted credits and divides by the weights it was given,
// so a skipped factor never dilutes the result.
type accumulator struct {
	total   float64
	weights float64
	factors []models.FactorContribution
}

func (a *accumulator) add(name string, weight, credit float64) {
	a.total += weight * credit
	a.weights += weight
	a.factors = append(a.factors, models.FactorContribution{Name: name, Weight: weight, Credit: credit})
}

func (a *accumulator) result() models.SubScore {
	if a.weights == 0 {
		return models.SubScore{Factors: a.factors}
	}
	return models.SubScore{Value: a.total / a.weights, Factors: a.factors}
}

// ==========================
// Tools
// ==========================

func toolStructural(intent *models.BusinessIntent, tool models.CatalogRecord) models.SubScore {
	var acc accumulator
	criteria := tool.MatchingCriteria
	category := strings.ToLower(tool.Category)

	compatible, known := domainCompatibility[intent.ProblemDomain]
	if !known {
		compatible = []string{category}
	}
	acc.add("domain", toolDomainWeight, binary(oneOf(category, compatible)))

	pair := automationPair{
		user: intent.AutomationPotential,
		tool: criteria.ValueOr(models.CriteriaAutomationPotential, defaultAutomationLevel),
	}
	automation, ok := automationPairing[pair]
	if !ok {
		automation = neutralCredit
	}
	acc.add("automation", toolAutomationWeight, automation)

	scalability := neutralCredit
	if intent.HasRequirement(models.RequirementScalability) {
		tier := criteria.ValueOr(models.CriteriaScalability, defaultScalability)
		switch {
		case oneOf(tier, highTierTools):
			scalability = 1
		case tier == goodScalability:
			scalability = goodScalabilityCredit
		default:
			scalability = 0
		}
	}
	acc.add("scalability", toolScalabilityWeight, scalability)

	return acc.result()
}

func toolPrecision(intent *models.BusinessIntent, tool models.CatalogRecord) models.SubScore {
	var acc accumulator
	criteria := tool.MatchingCriteria

	cost := neutralCredit
	if intent.HasRequirement(models.RequirementCostEfficiency) {
		tier := criteria.ValueOr(models.CriteriaCostEfficiency, defaultCostEfficiency)
		switch {
		case oneOf(tier, costEfficient):
			cost = 1
		case tier == moderateCostTier:
			cost = moderateCostCredit
		default:
			cost = 0
		}
	}
	acc.add("cost_efficiency", toolCostWeight, cost)

	api := neutralCredit
	if intent.HasRequirement(models.RequirementAPICompatibility) {
		declared, _ := criteria.Value(models.CriteriaAPICompatibility)
		api = binary(containsAny(declared, apiMarkers))
	}
	acc.add("api_compatibility", toolAPIWeight, api)

	acc.add("technical_truth", toolTruthWeight, binary(!conflicts(tool.TechnicalTruth.Limitation, intent.Constraints)))

	return acc.result()
}

func conflicts(limitation string, constraints []string) bool {
	limitation = strings.ToLower(limitation)
	joined := strings.ToLower(strings.Join(constraints, " "))
	for _, c := range truthConflicts {
		if strings.Contains(limitation, c.limitation) && strings.Contains(joined, c.constraint) {
			return true
		}
	}
	return false
}

// ==========================
// Products
// ==========================

func productStructural(intent *models.IndividualIntent, product models.CatalogRecord) models.SubScore {
	var acc accumulator
	criteria := product.MatchingCriteria

	useCase := useCaseMissCredit
	if containsAny(strings.ToLower(product.Category), useCaseCategories[intent.UseCase]) {
		useCase = 1
	}
	acc.add("use_case", productUseCaseWeight, useCase)

	acc.add("technical_requirements", productTechWeight, technicalFit(intent.TechnicalRequirements, criteria))

	preference := intent.UserContext.EcosystemPreference
	if preference == "" {
		preference = models.EcosystemAgnostic
	}
	ecosystem := ecosystemMismatchCredit
	productEcosystem := criteria.ValueOr(models.CriteriaEcosystem, models.EcosystemAgnostic)
	if preference == models.EcosystemAgnostic || strings.EqualFold(preference, productEcosystem) {
		ecosystem = 1
	}
	acc.add("ecosystem", productEcosystemWeight, ecosystem)

	return acc.result()
}

// technicalFit averages only the checks the intent turned on, or returns the
// neutral credit when none are active.
func technicalFit(reqs map[string]bool, criteria models.MatchingCriteria) float64 {
	passed, active := 0, 0

	if reqs[models.TechPerformance] {
		active++
		if oneOf(criteria.ValueOr(models.CriteriaPerformanceTier, defaultPerformanceTier), highPerformance) {
			passed++
		}
	}
	if reqs[models.TechGraphics] || reqs[models.TechMLAI] {
		active++
		if criteria.ValueOr(models.CriteriaGPUPower, defaultGPUPower) == highGPUPower {
			passed++
		}
	}
	if reqs[models.TechPortability] {
		active++
		if oneOf(criteria.ValueOr(models.CriteriaPortability, defaultPortability), portableTiers) {
			passed++
		}
	}

	if active == 0 {
		return neutralCredit
	}
	return float64(passed) / float64(active)
}

func productPrecision(intent *models.IndividualIntent, product models.CatalogRecord) models.SubScore {
	var acc accumulator
	criteria := product.MatchingCriteria

	accepted, known := budgetCompatibility[intent.UserContext.BudgetRange]
	if !known {
		accepted = unknownBudgetPrices
	}
	budget := budgetMismatchCredit
	if oneOf(criteria.ValueOr(models.CriteriaPriceRange, defaultPriceRange), accepted) {
		budget = 1
	}
	acc.add("budget", productBudgetWeight, budget)

	priority := neutralCredit
	if check, ok := priorityChecks[intent.TopPriority()]; ok {
		priority = binary(oneOf(criteria.ValueOr(check.criteria, check.def), check.accepted))
	}
	acc.add("priority", productPriorityWeight, priority)

	idealFor := idealForMissCredit
	if useCaseOverlap(intent.UseCase, product.TechnicalTruth.IdealFor) {
		idealFor = 1
	}
	acc.add("ideal_for", productIdealForWeight, idealFor)

	return acc.result()
}

func useCaseOverlap(useCase, idealFor string) bool {
	idealFor = strings.ToLower(idealFor)
	for _, token := range strings.Split(strings.ToLower(useCase), "_") {
		if token != "" && strings.Contains(idealFor, token) {
			return true
		}
	}
	return false
}

func binary(hit bool) float64 {
	if hit {
		return 1
	}
	return 0
}

func oneOf(value string, set []string) bool {
	for _, s := range set {
		if value == s {
			return true
		}
	}
	return false
}

func containsAny(text string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(text, f) {
			return true
		}
	}
	return false
}
