// internal/matching/intent/tables.go
package intent

import (
	"matching-workers/internal/matching/keyword"
	"matching-workers/internal/models"
)

// Rule order is significant: the first matching label wins.

var problemDomains = keyword.Table{
	{Label: models.DomainCustomerSupport, Keywords: []string{"customer support", "support ticket", "help desk", "customer service"}},
	{Label: models.DomainContentCreation, Keywords: []string{"content", "writing", "blog", "marketing copy", "social media"}},
	{Label: models.DomainDataAnalysis, Keywords: []string{"data analysis", "analytics", "insights", "reporting", "dashboard"}},
	{Label: models.DomainCodeAutomation, Keywords: []string{"code", "development", "programming", "testing", "devops"}},
	{Label: models.DomainWorkflowAutomation, Keywords: []string{"workflow", "process", "automation", "task"}},
	{Label: models.DomainCommunication, Keywords: []string{"communication", "email", "messaging", "collaboration"}},
}

var requirementRules = keyword.Table{
	{Label: models.RequirementAPICompatibility, Keywords: []string{"api", "integration", "connect"}},
	{Label: models.RequirementTaskAutomation, Keywords: []string{"automate", "automation", "automatic"}},
	{Label: models.RequirementScalability, Keywords: []string{"scale", "growth", "volume", "many"}},
	{Label: models.RequirementCustomization, Keywords: []string{"custom", "specific", "tailored"}},
	{Label: models.RequirementCostEfficiency, Keywords: []string{"cost", "budget", "affordable", "cheap"}},
}

var automationLevels = keyword.Table{
	{Label: models.AutomationHigh, Keywords: []string{"fully automate", "completely automate", "no human"}},
	{Label: models.AutomationModerate, Keywords: []string{"help", "assist", "support", "augment"}},
}

var complexityIndicators = []string{
	"multiple", "complex", "advanced", "sophisticated",
	"integration", "custom", "enterprise", "large-scale",
}

var useCases = keyword.Table{
	{Label: models.UseCaseMLDevelopment, Keywords: []string{"machine learning", "ai development", "model training", "data science"}},
	{Label: models.UseCaseVideoEditing, Keywords: []string{"video editing", "8k", "4k", "video production", "premiere"}},
	{Label: models.UseCaseCreativeWork, Keywords: []string{"design", "creative", "photoshop", "illustration", "art"}},
	{Label: models.UseCaseSoftwareDevelopment, Keywords: []string{"coding", "programming", "development", "developer", "ide"}},
	{Label: models.UseCaseGaming, Keywords: []string{"gaming", "games", "gamer"}},
	{Label: models.UseCaseGeneralProductivity, Keywords: []string{"productivity", "office", "work", "email", "documents"}},
}

var technicalIndicators = keyword.Table{
	{Label: models.TechPerformance, Keywords: []string{"fast", "powerful", "high-end", "performance", "speed"}},
	{Label: models.TechPortability, Keywords: []string{"portable", "lightweight", "travel", "mobile"}},
	{Label: models.TechGraphics, Keywords: []string{"gpu", "graphics", "rendering", "video", "gaming", "3d"}},
	{Label: models.TechMLAI, Keywords: []string{"machine learning", "ai", "ml", "model training", "deep learning"}},
	{Label: models.TechBattery, Keywords: []string{"battery", "battery life", "unplugged"}},
	{Label: models.TechDisplay, Keywords: []string{"display", "screen", "monitor", "4k", "8k", "color accuracy"}},
	{Label: models.TechEcosystem, Keywords: []string{"apple", "windows", "samsung", "ecosystem", "integration"}},
}

var priorityRules = keyword.Table{
	{Label: models.PriorityPerformance, Keywords: []string{"best", "top", "highest", "maximum"}},
	{Label: models.PriorityPortability, Keywords: []string{"portable", "light", "travel"}},
	{Label: models.PriorityCost, Keywords: []string{"budget", "affordable", "cheap", "value"}},
	{Label: models.PriorityBatteryLife, Keywords: []string{"battery", "unplugged", "battery life"}},
}

var technicalTerms = []string{
	"gpu", "cpu", "vram", "cuda", "thunderbolt", "pcie",
	"ml", "tensorflow", "pytorch", "llm", "api",
}

const (
	expertTermThreshold       = 3
	intermediateTermThreshold = 1
)
