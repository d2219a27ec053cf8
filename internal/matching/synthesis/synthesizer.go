// internal/matching/synthesis/synthesizer.go
package synthesis

import (
	"fmt"
	"strings"

	"matching-workers/internal/models"
)

// Synthesizer turns ranked matches into recommendation text. Output depends
// only on its arguments.
type Synthesizer struct{}

// NewSynthesizer returns a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// SynthesizeToolGuide builds the recommendation entry for one ranked tool.
func (s *Synthesizer) SynthesizeToolGuide(tool models.CatalogRecord, intent *models.BusinessIntent, score float64) models.ToolRecommendation {
	intent = businessOrEmpty(intent)

	guide := models.ToolDeploymentGuide{
		SetupSteps:         []string{},
		BestPractices:      []string{},
		CustomInstructions: customInstructions(intent),
	}
	if tool.DeploymentGuide != nil {
		guide.SetupSteps = append(guide.SetupSteps, tool.DeploymentGuide.SetupSteps...)
		guide.BestPractices = append(guide.BestPractices, tool.DeploymentGuide.BestPractices...)
	}

	return models.ToolRecommendation{
		ToolID:          tool.ID,
		ToolName:        tool.Name,
		Category:        tool.Category,
		MatchScore:      score,
		Reasoning:       toolReasoning(tool, intent, score),
		DeploymentGuide: guide,
		TechnicalTruth:  tool.TechnicalTruth,
	}
}

// SynthesizeProductGuide builds the recommendation entry for one ranked product.
func (s *Synthesizer) SynthesizeProductGuide(product models.CatalogRecord, intent *models.IndividualIntent, score float64) models.ProductRecommendation {
	intent = individualOrEmpty(intent)

	specs := make(map[string]interface{}, len(product.TechnicalSpecs))
	for k, v := range product.TechnicalSpecs {
		specs[k] = v
	}

	return models.ProductRecommendation{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Category:       product.Category,
		MatchScore:     score,
		Reasoning:      productReasoning(product, intent, score),
		TechnicalSpecs: specs,
		TechnicalTruth: product.TechnicalTruth,
	}
}

// BuildStrategy describes how to roll out the top recommendation.
func (s *Synthesizer) BuildStrategy(recs []models.ToolRecommendation, intent *models.BusinessIntent) string {
	if len(recs) == 0 {
		return noToolsStrategy
	}
	intent = businessOrEmpty(intent)
	top := recs[0]

	parts := []string{
		fmt.Sprintf("Recommended solution for %s optimization using %s.", intent.ProblemDomain, top.ToolName),
	}

	approach, ok := deploymentApproach[intent.AutomationPotential]
	if !ok {
		approach = defaultDeploymentApproach
	}
	parts = append(parts, approach)

	if scale, ok := scaleApproach[intent.CompanyContext.Size]; ok {
		parts = append(parts, scale)
	}

	if len(recs) > 1 {
		parts = append(parts, fmt.Sprintf("Consider supplementing with %s for %s capabilities.", recs[1].ToolName, recs[1].Category))
	}

	return strings.Join(parts, " ")
}

// BuildBuyingGuide summarises the top product and the runner-up.
func (s *Synthesizer) BuildBuyingGuide(recs []models.ProductRecommendation, intent *models.IndividualIntent) string {
	if len(recs) == 0 {
		return noProductsGuide
	}
	intent = individualOrEmpty(intent)
	top := recs[0]

	parts := []string{
		sentence(fmt.Sprintf("Top recommendation: %s (%s)", top.ProductName, top.Category)),
		sentence(fmt.Sprintf("This device excels at %s with %s", humanize(intent.UseCase), top.TechnicalTruth.Strength)),
		sentence(fmt.Sprintf("Important to know: %s", top.TechnicalTruth.Limitation)),
	}

	if len(recs) > 1 {
		alt := recs[1]
		parts = append(parts, fmt.Sprintf("Alternative option: %s offers %s if you need different trade-offs.", alt.ProductName, alt.Category))
	}

	if advice, ok := sophisticationAdvice[intent.SophisticationLevel]; ok {
		parts = append(parts, advice)
	}

	return strings.Join(parts, " ")
}

// EstimateImpact looks up the expected effect for the intent's domain and
// automation level.
func (s *Synthesizer) EstimateImpact(intent *models.BusinessIntent, recs []models.ToolRecommendation) string {
	if len(recs) == 0 {
		return noToolsImpact
	}
	intent = businessOrEmpty(intent)

	estimates, ok := impactEstimates[intent.ProblemDomain]
	if !ok {
		estimates = genericImpact
	}
	if text, ok := estimates[intent.AutomationPotential]; ok {
		return text
	}
	return unknownImpactText
}

// BuildComparison projects the recommendations into parallel columns. It
// returns nil unless there is more than one recommendation to compare.
func (s *Synthesizer) BuildComparison(recs []models.ProductRecommendation) *models.ComparisonMatrix {
	if len(recs) <= 1 {
		return nil
	}

	matrix := &models.ComparisonMatrix{
		Products:    make([]string, len(recs)),
		Categories:  make([]string, len(recs)),
		MatchScores: make([]float64, len(recs)),
	}
	for i, rec := range recs {
		matrix.Products[i] = rec.ProductName
		matrix.Categories[i] = rec.Category
		matrix.MatchScores[i] = rec.MatchScore
	}
	return matrix
}

func toolReasoning(tool models.CatalogRecord, intent *models.BusinessIntent, score float64) string {
	reasons := []string{
		confidence(score),
		fmt.Sprintf("Specialized for %s with %s capabilities", intent.ProblemDomain, tool.Category),
	}

	if strength := tool.TechnicalTruth.Strength; strength != "" {
		reasons = append(reasons, "Key advantage: "+strength)
	}

	if oneOf(tool.MatchingCriteria.AutomationPotential, strongAutomationTiers) {
		reasons = append(reasons, fmt.Sprintf("Strong automation capabilities matching %s needs", intent.AutomationPotential))
	}

	return strings.Join(reasons, ". ") + "."
}

func productReasoning(product models.CatalogRecord, intent *models.IndividualIntent, score float64) string {
	reasons := []string{
		confidence(score),
		fmt.Sprintf("Optimized for %s in %s category", humanize(intent.UseCase), product.Category),
	}

	if strength := product.TechnicalTruth.Strength; strength != "" {
		reasons = append(reasons, "Technical advantage: "+strength)
	}

	criteria := product.MatchingCriteria
	switch {
	case hasPriority(intent, models.PriorityPerformance) && oneOf(criteria.PerformanceTier, highPerformanceTiers):
		reasons = append(reasons, "Delivers extreme performance as prioritized")
	case hasPriority(intent, models.PriorityPortability) && oneOf(criteria.Portability, portableTiers):
		reasons = append(reasons, "Offers excellent portability as needed")
	}

	return strings.Join(reasons, ". ") + "."
}

func customInstructions(intent *models.BusinessIntent) []string {
	steps := []string{}
	steps = append(steps, domainInstructions[intent.ProblemDomain]...)
	steps = append(steps, sizeInstructions[intent.CompanyContext.Size]...)
	return steps
}

// confidence truncates toward zero, so 0.999 reads as 99%.
func confidence(score float64) string {
	return fmt.Sprintf("Match confidence: %d%%", int(score*100))
}

func humanize(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

func hasPriority(intent *models.IndividualIntent, priority string) bool {
	return oneOf(priority, intent.Priorities)
}

func oneOf(value string, set []string) bool {
	for _, s := range set {
		if value == s {
			return true
		}
	}
	return false
}

func businessOrEmpty(intent *models.BusinessIntent) *models.BusinessIntent {
	if intent == nil {
		return &models.BusinessIntent{ProblemDomain: models.DefaultProblemDomain}
	}
	return intent
}

func individualOrEmpty(intent *models.IndividualIntent) *models.IndividualIntent {
	if intent == nil {
		return &models.IndividualIntent{UseCase: models.DefaultUseCase}
	}
	return intent
}
