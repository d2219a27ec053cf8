// internal/models/intent.go
package models

// Track selects the recommendation flow.
type Track string

const (
	TrackBusiness   Track = "company"
	TrackIndividual Track = "individual"
)

func (t Track) Valid() bool {
	return t == TrackBusiness || t == TrackIndividual
}

// IntentProfile is built once per request and never mutated afterwards.
// Exactly one of Business or Individual is set, matching Track.
type IntentProfile struct {
	Track      Track             `json:"track_type"`
	Business   *BusinessIntent   `json:"business,omitempty"`
	Individual *IndividualIntent `json:"individual,omitempty"`
}

type BusinessIntent struct {
	ProblemDomain       string         `json:"problem_domain"`
	Requirements        []string       `json:"requirements"`
	AutomationPotential string         `json:"automation_potential"`
	Constraints         []string       `json:"constraints"`
	CompanyContext      CompanyContext `json:"company_context"`
	ComplexityScore     float64        `json:"complexity_score"`
}

type CompanyContext struct {
	Size     string `json:"size"`
	Industry string `json:"industry"`
}

// HasRequirement reports whether tag was extracted for this intent.
func (b *BusinessIntent) HasRequirement(tag string) bool {
	for _, r := range b.Requirements {
		if r == tag {
			return true
		}
	}
	return false
}

type IndividualIntent struct {
	UseCase               string          `json:"use_case"`
	TechnicalRequirements map[string]bool `json:"technical_requirements"`
	Priorities            []string        `json:"priorities"`
	UserContext           UserContext     `json:"user_context"`
	SophisticationLevel   string          `json:"sophistication_level"`
}

type UserContext struct {
	BudgetRange         string   `json:"budget_range"`
	EcosystemPreference string   `json:"ecosystem_preference"`
	PrimaryUseCases     []string `json:"primary_use_cases"`
}

// TopPriority returns the first declared priority.
func (i *IndividualIntent) TopPriority() string {
	if len(i.Priorities) == 0 {
		return ""
	}
	return i.Priorities[0]
}

// Sentinel and default labels used when nothing in the text matches.
const (
	DefaultProblemDomain = "general"
	DefaultUseCase       = "general_use"
	DefaultPriority      = "balanced"
	DefaultRequirement   = "General_Purpose"
	DefaultUnknown       = "unknown"
	EcosystemAgnostic    = "agnostic"
)

// Business requirement tags.
const (
	RequirementAPICompatibility = "API_Compatibility"
	RequirementTaskAutomation   = "Task_Automation_Potential"
	RequirementScalability      = "Scalability"
	RequirementCustomization    = "Customization"
	RequirementCostEfficiency   = "Cost_Efficiency"
)

// Individual technical requirement keys.
const (
	TechPerformance = "performance"
	TechPortability = "portability"
	TechGraphics    = "graphics"
	TechMLAI        = "ml_ai"
	TechBattery     = "battery"
	TechDisplay     = "display"
	TechEcosystem   = "ecosystem"
)

// Individual priorities.
const (
	PriorityPerformance = "performance"
	PriorityPortability = "portability"
	PriorityCost        = "cost"
	PriorityBatteryLife = "battery_life"
)

// Automation potential levels.
const (
	AutomationHigh     = "high"
	AutomationModerate = "moderate"
	AutomationLow      = "low"
)

// Sophistication levels.
const (
	SophisticationBeginner     = "beginner"
	SophisticationIntermediate = "intermediate"
	SophisticationExpert       = "expert"
)

// Business problem domains.
const (
	DomainCustomerSupport    = "customer_support"
	DomainContentCreation    = "content_creation"
	DomainDataAnalysis       = "data_analysis"
	DomainCodeAutomation     = "code_automation"
	DomainWorkflowAutomation = "workflow_automation"
	DomainCommunication      = "communication"
)

// Individual use cases.
const (
	UseCaseMLDevelopment       = "ml_development"
	UseCaseVideoEditing        = "video_editing"
	UseCaseCreativeWork        = "creative_work"
	UseCaseSoftwareDevelopment = "software_development"
	UseCaseGaming              = "gaming"
	UseCaseGeneralProductivity = "general_productivity"
)
