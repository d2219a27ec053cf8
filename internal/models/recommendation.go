// internal/models/recommendation.go
package models

// FactorContribution is one weighted factor applied while computing a sub-score.
type FactorContribution struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Credit float64 `json:"credit"`
}

// SubScore is accumulated / denominator over the factors actually applied.
type SubScore struct {
	Value   float64              `json:"value"`
	Factors []FactorContribution `json:"factors"`
}

// ScoredMatch pairs a catalog record with its final score in [0,1].
type ScoredMatch struct {
	Record     CatalogRecord `json:"record"`
	Score      float64       `json:"score"`
	Structural SubScore      `json:"structural"`
	Precision  SubScore      `json:"precision"`
}

// ToolDeploymentGuide is the catalog's static guide plus the generated
// domain and company-size steps.
type ToolDeploymentGuide struct {
	SetupSteps         []string `json:"setup_steps"`
	BestPractices      []string `json:"best_practices"`
	CustomInstructions []string `json:"custom_instructions"`
}

type ToolRecommendation struct {
	ToolID          string              `json:"tool_id"`
	ToolName        string              `json:"tool_name"`
	Category        string              `json:"category"`
	MatchScore      float64             `json:"match_score"`
	Reasoning       string              `json:"reasoning"`
	DeploymentGuide ToolDeploymentGuide `json:"deployment_guide"`
	TechnicalTruth  TechnicalTruth      `json:"technical_truth"`
}

type ProductRecommendation struct {
	ProductID      string                 `json:"product_id"`
	ProductName    string                 `json:"product_name"`
	Category       string                 `json:"category"`
	MatchScore     float64                `json:"match_score"`
	Reasoning      string                 `json:"reasoning"`
	TechnicalSpecs map[string]interface{} `json:"technical_specs"`
	TechnicalTruth TechnicalTruth         `json:"technical_truth"`
}

// ComparisonMatrix holds parallel arrays aligned by recommendation index.
type ComparisonMatrix struct {
	Products    []string  `json:"products"`
	Categories  []string  `json:"categories"`
	MatchScores []float64 `json:"match_scores"`
}

type CompanyRecommendation struct {
	IntentAnalysis     IntentProfile        `json:"intent_analysis"`
	Recommendations    []ToolRecommendation `json:"recommendations"`
	DeploymentStrategy string               `json:"deployment_strategy"`
	EstimatedImpact    string               `json:"estimated_impact"`
}

type IndividualRecommendation struct {
	IntentAnalysis   IntentProfile           `json:"intent_analysis"`
	Recommendations  []ProductRecommendation `json:"recommendations"`
	ComparisonMatrix *ComparisonMatrix       `json:"comparison_matrix,omitempty"`
	BuyingGuide      string                  `json:"buying_guide"`
}
