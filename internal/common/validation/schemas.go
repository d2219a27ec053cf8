// internal/common/validation/schemas.go
package validation

// MinRequestTextLength is the shortest friction point or need accepted.
const MinRequestTextLength = 10

func stringList(description string) Property {
	return Property{
		Type:        "array",
		Description: description,
		Items:       &Property{Type: "string"},
	}
}

// CompanyRequestSchema describes a company matching request.
func CompanyRequestSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"friction_point"},
		Properties: map[string]Property{
			"friction_point": {
				Type:        "string",
				Description: "Specific business problem or friction point",
				MinLength:   IntPtr(MinRequestTextLength),
			},
			"company_size": {
				Type:        "string",
				Description: "Company size (startup, small, medium, enterprise)",
			},
			"industry": {
				Type:        "string",
				Description: "Industry sector",
			},
			"technical_constraints": stringList("Technical constraints or requirements"),
		},
	}
}

// IndividualRequestSchema describes a personal product matching request.
func IndividualRequestSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"need"},
		Properties: map[string]Property{
			"need": {
				Type:        "string",
				Description: "Specific need or use case",
				MinLength:   IntPtr(MinRequestTextLength),
			},
			"budget_range": {
				Type:        "string",
				Description: "Budget range (budget, mid-range, premium, unlimited)",
			},
			"ecosystem_preference": {
				Type:        "string",
				Description: "Ecosystem preference (apple, windows, linux, samsung, agnostic)",
			},
			"primary_use_cases": stringList("Primary use cases"),
		},
	}
}

func recordProperty() Property {
	nonEmpty := IntPtr(1)
	return Property{
		Type:     "object",
		Required: []string{"id", "name", "category"},
		Properties: map[string]Property{
			"id":                {Type: "string", MinLength: nonEmpty},
			"name":              {Type: "string", MinLength: nonEmpty},
			"category":          {Type: "string", MinLength: nonEmpty},
			"use_case":          {Type: "string"},
			"use_cases":         stringList("Use cases a tool serves"),
			"technical_specs":   {Type: "object"},
			"matching_criteria": {Type: "object"},
			"deployment_guide": {
				Type: "object",
				Properties: map[string]Property{
					"setup_steps":    stringList("Ordered setup steps"),
					"best_practices": stringList("Operating best practices"),
				},
			},
			"technical_truth": {
				Type: "object",
				Properties: map[string]Property{
					"strength":   {Type: "string"},
					"limitation": {Type: "string"},
					"ideal_for":  {Type: "string"},
				},
			},
		},
	}
}

// CatalogRecordSchema describes one tool or product record. Records may carry
// vendor keys the matcher does not read.
func CatalogRecordSchema() JSONSchema {
	p := recordProperty()
	return JSONSchema{
		Type:                 "object",
		Required:             p.Required,
		Properties:           p.Properties,
		AdditionalProperties: true,
	}
}

// CatalogFileSchema describes a whole catalog file.
func CatalogFileSchema() JSONSchema {
	record := recordProperty()
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"ai_tools": {Type: "array", Description: "AI tools for the company track", Items: &record},
			"products": {Type: "array", Description: "Hardware products for the individual track", Items: &record},
		},
	}
}
