// internal/matching/scoring/tables.go
package scoring

import "matching-workers/internal/models"

// Factor weights inside each sub-score.
const (
	toolDomainWeight      = 0.4
	toolAutomationWeight  = 0.3
	toolScalabilityWeight = 0.3

	toolCostWeight  = 0.4
	toolAPIWeight   = 0.3
	toolTruthWeight = 0.3

	productUseCaseWeight   = 0.4
	productTechWeight      = 0.4
	productEcosystemWeight = 0.2

	productBudgetWeight   = 0.4
	productPriorityWeight = 0.3
	productIdealForWeight = 0.3
)

// Credits used when a factor has nothing to judge or only partly matches.
const (
	neutralCredit           = 0.5
	goodScalabilityCredit   = 0.7
	ecosystemMismatchCredit = 0.3
	budgetMismatchCredit    = 0.3
	moderateCostCredit      = 0.5
	useCaseMissCredit       = 0.5
	idealForMissCredit      = 0.5
)

// Tiers assumed when a catalog record does not declare the criterion.
const (
	defaultAutomationLevel = "moderate"
	defaultScalability     = "moderate"
	defaultCostEfficiency  = "moderate"
	defaultPerformanceTier = "moderate"
	defaultGPUPower        = "moderate"
	defaultPortability     = "moderate"
	defaultPriceRange      = "premium"
)

// Tool categories (lower-cased) that serve each problem domain. A domain
// missing here accepts any category.
var domainCompatibility = map[string][]string{
	models.DomainCustomerSupport:    {"general purpose llm", "safety-focused llm"},
	models.DomainContentCreation:    {"general purpose llm"},
	models.DomainDataAnalysis:       {"general purpose llm", "safety-focused llm"},
	models.DomainCodeAutomation:     {"agentic workflow", "general purpose llm"},
	models.DomainWorkflowAutomation: {"agentic workflow", "no-code integration"},
	models.DomainCommunication:      {"general purpose llm", "no-code integration"},
}

type automationPair struct {
	user string
	tool string
}

var automationPairing = map[automationPair]float64{
	{user: "high", tool: "excellent"}: 1.0,
	{user: "high", tool: "high"}:      0.9,
	{user: "moderate", tool: "high"}:  0.8,
	{user: "moderate", tool: "good"}:  0.9,
	{user: "low", tool: "moderate"}:   0.8,
	{user: "low", tool: "good"}:       0.7,
}

// truthConflict pairs a limitation phrase with a constraint phrase it rules out.
type truthConflict struct {
	limitation string
	constraint string
}

var truthConflicts = []truthConflict{
	{limitation: "cloud-only", constraint: "on-premise"},
}

// Product category fragments suited to each use case.
var useCaseCategories = map[string][]string{
	models.UseCaseMLDevelopment:       {"extreme performance"},
	models.UseCaseVideoEditing:        {"extreme performance", "precision creativity"},
	models.UseCaseCreativeWork:        {"precision creativity"},
	models.UseCaseSoftwareDevelopment: {"extreme performance", "ecosystem synergy"},
	models.UseCaseGaming:              {"extreme performance"},
	models.UseCaseGeneralProductivity: {"ecosystem synergy", "precision creativity"},
}

// Price tiers each budget accepts. An unrecognised budget accepts only
// unknownBudgetPrices.
var budgetCompatibility = map[string][]string{
	"budget":    {"budget", "mid-range"},
	"mid-range": {"budget", "mid-range", "premium"},
	"premium":   {"mid-range", "premium"},
	"unlimited": {"budget", "mid-range", "premium"},
}

var unknownBudgetPrices = []string{"premium"}

// priorityCheck names the product attribute a top priority is judged by and
// the tiers that satisfy it. Priorities without a check score neutral.
type priorityCheck struct {
	criteria string
	def      string
	accepted []string
}

var priorityChecks = map[string]priorityCheck{
	models.PriorityPerformance: {criteria: models.CriteriaPerformanceTier, def: defaultPerformanceTier, accepted: []string{"extreme", "high"}},
	models.PriorityPortability: {criteria: models.CriteriaPortability, def: defaultPortability, accepted: []string{"excellent", "good"}},
}

var (
	highTierTools    = []string{"excellent", "high"}
	costEfficient    = []string{"excellent", "good"}
	highPerformance  = []string{"extreme", "high"}
	portableTiers    = []string{"excellent", "good"}
	highGPUPower     = "high"
	apiMarkers       = []string{"API", "REST"}
	goodScalability  = "good"
	moderateCostTier = "moderate"
)
