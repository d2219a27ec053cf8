// internal/matching/synthesis/synthesizer_test.go
package synthesis

import (
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func supportIntent(size string) *models.BusinessIntent {
	return &models.BusinessIntent{
		ProblemDomain:       models.DomainCustomerSupport,
		Requirements:        []string{models.RequirementCustomization},
		AutomationPotential: models.AutomationModerate,
		CompanyContext:      models.CompanyContext{Size: size, Industry: "SaaS"},
	}
}

func createTestTool() models.CatalogRecord {
	return models.CatalogRecord{
		ID:       "gpt-4o",
		Name:     "GPT-4o",
		Category: "General Purpose LLM",
		MatchingCriteria: models.MatchingCriteria{
			AutomationPotential: "high",
		},
		DeploymentGuide: &models.DeploymentGuide{
			SetupSteps:    []string{"Create an API key"},
			BestPractices: []string{"Log every prompt"},
		},
		TechnicalTruth: models.TechnicalTruth{
			Strength:   "Strong multilingual reasoning",
			Limitation: "Cloud-only",
			IdealFor:   "Customer support",
		},
	}
}

func createTestProduct() models.CatalogRecord {
	return models.CatalogRecord{
		ID:       "blade-16",
		Name:     "Blade 16",
		Category: "Extreme Performance",
		TechnicalSpecs: map[string]interface{}{
			"gpu": "RTX 4090",
			"ram": "32GB",
		},
		MatchingCriteria: models.MatchingCriteria{
			PerformanceTier: "extreme",
			Portability:     "good",
		},
		TechnicalTruth: models.TechnicalTruth{
			Strength:   "desktop-class GPU performance",
			Limitation: "Battery life under heavy load is short",
		},
	}
}

func mlIntent(priorities ...string) *models.IndividualIntent {
	if len(priorities) == 0 {
		priorities = []string{models.PriorityPerformance}
	}
	return &models.IndividualIntent{
		UseCase:             models.UseCaseMLDevelopment,
		Priorities:          priorities,
		UserContext:         models.UserContext{BudgetRange: "premium", EcosystemPreference: models.EcosystemAgnostic},
		SophisticationLevel: models.SophisticationExpert,
	}
}

// ==========================
// Tool Guide Tests
// ==========================

func TestSynthesizer_SynthesizeToolGuide(t *testing.T) {
	s := NewSynthesizer()

	rec := s.SynthesizeToolGuide(createTestTool(), supportIntent("medium"), 0.741)

	assert.Equal(t, "gpt-4o", rec.ToolID)
	assert.Equal(t, "GPT-4o", rec.ToolName)
	assert.Equal(t, 0.741, rec.MatchScore)
	assert.Equal(t,
		"Match confidence: 74%. Specialized for customer_support with General Purpose LLM capabilities. "+
			"Key advantage: Strong multilingual reasoning. Strong automation capabilities matching moderate needs.",
		rec.Reasoning)
	assert.Equal(t, []string{"Create an API key"}, rec.DeploymentGuide.SetupSteps)
	assert.Equal(t, []string{"Log every prompt"}, rec.DeploymentGuide.BestPractices)
	assert.Equal(t, []string{
		"Configure response templates aligned with your brand voice",
		"Set up escalation paths for complex queries the AI cannot handle",
	}, rec.DeploymentGuide.CustomInstructions)
	assert.Equal(t, "Cloud-only", rec.TechnicalTruth.Limitation)
}

func TestSynthesizer_SynthesizeToolGuide_OptionalSentences(t *testing.T) {
	s := NewSynthesizer()
	tool := createTestTool()
	tool.TechnicalTruth.Strength = ""
	tool.MatchingCriteria.AutomationPotential = "moderate"
	tool.DeploymentGuide = nil

	rec := s.SynthesizeToolGuide(tool, supportIntent("unknown"), 0.5)

	assert.Equal(t, "Match confidence: 50%. Specialized for customer_support with General Purpose LLM capabilities.", rec.Reasoning)
	assert.NotNil(t, rec.DeploymentGuide.SetupSteps)
	assert.Empty(t, rec.DeploymentGuide.SetupSteps)
	assert.Len(t, rec.DeploymentGuide.CustomInstructions, 2)
}

func TestSynthesizer_CustomInstructions(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		size     string
		expected []string
	}{
		{
			name:   "content enterprise",
			domain: models.DomainContentCreation,
			size:   "enterprise",
			expected: []string{
				"Create style guide prompts for consistent content output",
				"Implement review workflow for AI-generated content",
				"Coordinate with IT security for enterprise policy compliance",
				"Plan phased rollout with pilot groups before full deployment",
			},
		},
		{
			name:   "workflow small",
			domain: models.DomainWorkflowAutomation,
			size:   "small",
			expected: []string{
				"Map existing workflow steps and identify automation points",
				"Set up monitoring for automated task success rates",
			},
		},
		{
			name:     "general large",
			domain:   models.DefaultProblemDomain,
			size:     "large",
			expected: []string{},
		},
	}

	s := NewSynthesizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &models.BusinessIntent{ProblemDomain: tt.domain, CompanyContext: models.CompanyContext{Size: tt.size}}
			rec := s.SynthesizeToolGuide(createTestTool(), intent, 0.5)
			assert.Equal(t, tt.expected, rec.DeploymentGuide.CustomInstructions)
		})
	}
}

// ==========================
// Product Guide Tests
// ==========================

func TestSynthesizer_SynthesizeProductGuide(t *testing.T) {
	s := NewSynthesizer()
	product := createTestProduct()

	rec := s.SynthesizeProductGuide(product, mlIntent(), 0.999)

	assert.Equal(t, "blade-16", rec.ProductID)
	assert.Equal(t,
		"Match confidence: 99%. Optimized for ml development in Extreme Performance category. "+
			"Technical advantage: desktop-class GPU performance. Delivers extreme performance as prioritized.",
		rec.Reasoning)
	assert.Equal(t, "RTX 4090", rec.TechnicalSpecs["gpu"])

	rec.TechnicalSpecs["gpu"] = "changed"
	assert.Equal(t, "RTX 4090", product.TechnicalSpecs["gpu"])
}

func TestSynthesizer_ProductPrioritySentence(t *testing.T) {
	s := NewSynthesizer()

	rec := s.SynthesizeProductGuide(createTestProduct(), mlIntent(models.PriorityCost, models.PriorityPortability), 0.6)
	assert.Contains(t, rec.Reasoning, "Offers excellent portability as needed.")
	assert.NotContains(t, rec.Reasoning, "Delivers extreme performance")

	rec = s.SynthesizeProductGuide(createTestProduct(), mlIntent(models.DefaultPriority), 0.6)
	assert.NotContains(t, rec.Reasoning, "portability")
	assert.NotContains(t, rec.Reasoning, "Delivers")
}

// ==========================
// Aggregate Text Tests
// ==========================

func TestSynthesizer_BuildStrategy(t *testing.T) {
	s := NewSynthesizer()
	first := s.SynthesizeToolGuide(createTestTool(), supportIntent("medium"), 0.8)
	second := models.ToolRecommendation{ToolName: "Claude", Category: "Safety-Focused LLM"}

	strategy := s.BuildStrategy([]models.ToolRecommendation{first, second}, supportIntent("medium"))

	assert.Equal(t,
		"Recommended solution for customer_support optimization using GPT-4o. "+
			"Deploy in human-in-the-loop mode with AI assistance. Gradually increase automation as confidence and metrics improve. "+
			"Quick deployment recommended: Low overhead setup, fast iteration, measure ROI early and often. "+
			"Consider supplementing with Claude for Safety-Focused LLM capabilities.",
		strategy)
}

func TestSynthesizer_BuildStrategy_Variants(t *testing.T) {
	s := NewSynthesizer()
	recs := []models.ToolRecommendation{{ToolName: "Zap"}}

	high := &models.BusinessIntent{ProblemDomain: models.DomainWorkflowAutomation, AutomationPotential: models.AutomationHigh, CompanyContext: models.CompanyContext{Size: "enterprise"}}
	text := s.BuildStrategy(recs, high)
	assert.Contains(t, text, "Deploy with full automation pipeline")
	assert.Contains(t, text, "For enterprise deployment:")
	assert.NotContains(t, text, "Consider supplementing")

	low := &models.BusinessIntent{ProblemDomain: models.DefaultProblemDomain, AutomationPotential: models.AutomationLow, CompanyContext: models.CompanyContext{Size: "unknown"}}
	text = s.BuildStrategy(recs, low)
	assert.Equal(t,
		"Recommended solution for general optimization using Zap. "+
			"Deploy as an assistant tool with human oversight. Focus on augmenting rather than replacing existing processes.",
		text)
}

func TestSynthesizer_BuildBuyingGuide(t *testing.T) {
	s := NewSynthesizer()
	top := s.SynthesizeProductGuide(createTestProduct(), mlIntent(), 0.9)
	alt := models.ProductRecommendation{ProductName: "MacBook Pro", Category: "Ecosystem Synergy"}

	guide := s.BuildBuyingGuide([]models.ProductRecommendation{top, alt}, mlIntent())

	assert.Equal(t,
		"Top recommendation: Blade 16 (Extreme Performance). "+
			"This device excels at ml development with desktop-class GPU performance. "+
			"Important to know: Battery life under heavy load is short. "+
			"Alternative option: MacBook Pro offers Ecosystem Synergy if you need different trade-offs. "+
			"As an expert user, you'll appreciate the technical capabilities and be able to leverage advanced features.",
		guide)
}

func TestSynthesizer_BuildBuyingGuide_Beginner(t *testing.T) {
	s := NewSynthesizer()
	intent := mlIntent()
	intent.SophisticationLevel = models.SophisticationBeginner

	guide := s.BuildBuyingGuide([]models.ProductRecommendation{{ProductName: "X", Category: "Y"}}, intent)
	assert.Contains(t, guide, "prioritizes ease of use")

	intent.SophisticationLevel = models.SophisticationIntermediate
	guide = s.BuildBuyingGuide([]models.ProductRecommendation{{ProductName: "X", Category: "Y"}}, intent)
	assert.NotContains(t, guide, "expert user")
	assert.NotContains(t, guide, "ease of use")
}

func TestSynthesizer_EstimateImpact(t *testing.T) {
	tests := []struct {
		name       string
		domain     string
		automation string
		expected   string
	}{
		{name: "support high", domain: models.DomainCustomerSupport, automation: models.AutomationHigh, expected: "Expected 60-80% reduction in response time, 40-60% reduction in support costs"},
		{name: "content low", domain: models.DomainContentCreation, automation: models.AutomationLow, expected: "Expected 20-30% time savings, better ideation support"},
		{name: "workflow moderate", domain: models.DomainWorkflowAutomation, automation: models.AutomationModerate, expected: "Expected 50-70% time savings on automated workflows"},
		{name: "fallback domain", domain: models.DomainDataAnalysis, automation: models.AutomationHigh, expected: "Expected 50-70% efficiency improvement"},
		{name: "unknown level", domain: models.DomainCustomerSupport, automation: "extreme", expected: "Impact varies by implementation"},
	}

	s := NewSynthesizer()
	recs := []models.ToolRecommendation{{ToolName: "any"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &models.BusinessIntent{ProblemDomain: tt.domain, AutomationPotential: tt.automation}
			assert.Equal(t, tt.expected, s.EstimateImpact(intent, recs))
		})
	}
}

func TestSynthesizer_EmptyRecommendations(t *testing.T) {
	s := NewSynthesizer()

	assert.Equal(t, "No suitable tools found for this use case.", s.BuildStrategy(nil, supportIntent("medium")))
	assert.Equal(t, "No suitable products found matching your criteria.", s.BuildBuyingGuide(nil, mlIntent()))
	assert.Equal(t, "Unable to estimate impact without suitable tools.", s.EstimateImpact(supportIntent("medium"), nil))
	assert.Nil(t, s.BuildComparison(nil))
}

func TestSynthesizer_BuildComparison(t *testing.T) {
	s := NewSynthesizer()

	single := []models.ProductRecommendation{{ProductName: "A", Category: "X", MatchScore: 0.9}}
	assert.Nil(t, s.BuildComparison(single))

	recs := []models.ProductRecommendation{
		{ProductName: "A", Category: "X", MatchScore: 0.9},
		{ProductName: "B", Category: "Y", MatchScore: 0.7},
		{ProductName: "C", Category: "Z", MatchScore: 0.5},
	}
	matrix := s.BuildComparison(recs)
	require.NotNil(t, matrix)
	assert.Equal(t, []string{"A", "B", "C"}, matrix.Products)
	assert.Equal(t, []string{"X", "Y", "Z"}, matrix.Categories)
	assert.Equal(t, []float64{0.9, 0.7, 0.5}, matrix.MatchScores)
}

func TestSynthesizer_Deterministic(t *testing.T) {
	s := NewSynthesizer()
	intent := supportIntent("enterprise")

	first := s.SynthesizeToolGuide(createTestTool(), intent, 0.77)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.SynthesizeToolGuide(createTestTool(), intent, 0.77))
	}
}

func TestSynthesizer_NilIntentUsesDefaults(t *testing.T) {
	s := NewSynthesizer()

	rec := s.SynthesizeToolGuide(createTestTool(), nil, 0.5)
	assert.Contains(t, rec.Reasoning, "Specialized for general with")

	prod := s.SynthesizeProductGuide(createTestProduct(), nil, 0.5)
	assert.Contains(t, prod.Reasoning, "Optimized for general use in")
}
