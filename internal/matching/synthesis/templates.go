// internal/matching/synthesis/templates.go
package synthesis

import "matching-workers/internal/models"

const (
	noToolsStrategy   = "No suitable tools found for this use case."
	noProductsGuide   = "No suitable products found matching your criteria."
	noToolsImpact     = "Unable to estimate impact without suitable tools."
	unknownImpactText = "Impact varies by implementation"
)

var domainInstructions = map[string][]string{
	models.DomainCustomerSupport: {
		"Configure response templates aligned with your brand voice",
		"Set up escalation paths for complex queries the AI cannot handle",
	},
	models.DomainContentCreation: {
		"Create style guide prompts for consistent content output",
		"Implement review workflow for AI-generated content",
	},
	models.DomainWorkflowAutomation: {
		"Map existing workflow steps and identify automation points",
		"Set up monitoring for automated task success rates",
	},
}

var sizeInstructions = map[string][]string{
	"enterprise": {
		"Coordinate with IT security for enterprise policy compliance",
		"Plan phased rollout with pilot groups before full deployment",
	},
}

var deploymentApproach = map[string]string{
	models.AutomationHigh: "Deploy with full automation pipeline including monitoring, fallback handling, " +
		"and continuous improvement loops.",
	models.AutomationModerate: "Deploy in human-in-the-loop mode with AI assistance. " +
		"Gradually increase automation as confidence and metrics improve.",
}

const defaultDeploymentApproach = "Deploy as an assistant tool with human oversight. " +
	"Focus on augmenting rather than replacing existing processes."

var scaleApproach = map[string]string{
	"enterprise": enterpriseRollout,
	"large":      enterpriseRollout,
	"medium":     quickRollout,
	"small":      quickRollout,
}

const (
	enterpriseRollout = "For enterprise deployment: Start with pilot team, measure impact, " +
		"then roll out incrementally with proper change management."
	quickRollout = "Quick deployment recommended: Low overhead setup, fast iteration, " +
		"measure ROI early and often."
)

var sophisticationAdvice = map[string]string{
	models.SophisticationExpert: "As an expert user, you'll appreciate the technical capabilities " +
		"and be able to leverage advanced features.",
	models.SophisticationBeginner: "This recommendation prioritizes ease of use while still providing " +
		"room to grow into advanced features.",
}

// impactEstimates is keyed by problem domain, then automation potential.
var impactEstimates = map[string]map[string]string{
	models.DomainCustomerSupport: {
		models.AutomationHigh:     "Expected 60-80% reduction in response time, 40-60% reduction in support costs",
		models.AutomationModerate: "Expected 30-50% improvement in response quality, 20-30% efficiency gain",
		models.AutomationLow:      "Expected 15-25% time savings for support agents",
	},
	models.DomainContentCreation: {
		models.AutomationHigh:     "Expected 70-85% reduction in content creation time, 50-70% increase in output",
		models.AutomationModerate: "Expected 40-60% faster content production, improved consistency",
		models.AutomationLow:      "Expected 20-30% time savings, better ideation support",
	},
	models.DomainWorkflowAutomation: {
		models.AutomationHigh:     "Expected 80-95% automation of repetitive tasks, significant error reduction",
		models.AutomationModerate: "Expected 50-70% time savings on automated workflows",
		models.AutomationLow:      "Expected 25-40% efficiency improvement in selected processes",
	},
}

var genericImpact = map[string]string{
	models.AutomationHigh:     "Expected 50-70% efficiency improvement",
	models.AutomationModerate: "Expected 30-50% productivity gain",
	models.AutomationLow:      "Expected 15-30% time savings",
}

var (
	strongAutomationTiers = []string{"excellent", "high"}
	highPerformanceTiers  = []string{"extreme", "high"}
	portableTiers         = []string{"excellent", "good"}
)
