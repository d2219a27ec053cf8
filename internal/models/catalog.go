// internal/models/catalog.go
package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Collection names a catalog collection.
type Collection string

const (
	CollectionTools    Collection = "tools"
	CollectionProducts Collection = "products"
)

// CatalogRecord is a single tool or product. Records are read-only once they
// are part of a catalog snapshot.
type CatalogRecord struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Category         string                 `json:"category"`
	UseCase          string                 `json:"use_case,omitempty"`
	UseCases         []string               `json:"use_cases,omitempty"`
	TechnicalSpecs   map[string]interface{} `json:"technical_specs,omitempty"`
	MatchingCriteria MatchingCriteria       `json:"matching_criteria"`
	DeploymentGuide  *DeploymentGuide       `json:"deployment_guide,omitempty"`
	TechnicalTruth   TechnicalTruth         `json:"technical_truth"`
}

type DeploymentGuide struct {
	SetupSteps    []string `json:"setup_steps"`
	BestPractices []string `json:"best_practices"`
}

type TechnicalTruth struct {
	Strength   string `json:"strength"`
	Limitation string `json:"limitation"`
	IdealFor   string `json:"ideal_for"`
}

// Criteria keys that scoring interprets against a fixed vocabulary.
const (
	CriteriaAutomationPotential = "automation_potential"
	CriteriaScalability         = "scalability"
	CriteriaCostEfficiency      = "cost_efficiency"
	CriteriaAPICompatibility    = "api_compatibility"
	CriteriaPerformanceTier     = "performance_tier"
	CriteriaGPUPower            = "gpu_power"
	CriteriaPortability         = "portability"
	CriteriaBatteryLife         = "battery_life"
	CriteriaEcosystem           = "ecosystem"
	CriteriaPriceRange          = "price_range"
)

// MatchingCriteria holds the load-bearing criteria as typed fields and keeps
// every other vendor key in Extensions. On the wire it is one flat object.
// An empty field means the catalog did not declare it.
type MatchingCriteria struct {
	AutomationPotential string
	Scalability         string
	CostEfficiency      string
	APICompatibility    string
	PerformanceTier     string
	GPUPower            string
	Portability         string
	BatteryLife         string
	Ecosystem           string
	PriceRange          string

	Extensions map[string]string
}

func (m *MatchingCriteria) fields() map[string]*string {
	return map[string]*string{
		CriteriaAutomationPotential: &m.AutomationPotential,
		CriteriaScalability:         &m.Scalability,
		CriteriaCostEfficiency:      &m.CostEfficiency,
		CriteriaAPICompatibility:    &m.APICompatibility,
		CriteriaPerformanceTier:     &m.PerformanceTier,
		CriteriaGPUPower:            &m.GPUPower,
		CriteriaPortability:         &m.Portability,
		CriteriaBatteryLife:         &m.BatteryLife,
		CriteriaEcosystem:           &m.Ecosystem,
		CriteriaPriceRange:          &m.PriceRange,
	}
}

// Value returns the declared value for key, typed or extension.
func (m MatchingCriteria) Value(key string) (string, bool) {
	if ptr, ok := m.fields()[key]; ok {
		return *ptr, *ptr != ""
	}
	v, ok := m.Extensions[key]
	return v, ok
}

// ValueOr returns the declared value for key or def when it is missing.
func (m MatchingCriteria) ValueOr(key, def string) string {
	if v, ok := m.Value(key); ok && v != "" {
		return v
	}
	return def
}

func (m *MatchingCriteria) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = MatchingCriteria{}
	known := m.fields()
	for key, val := range raw {
		if val == nil {
			continue
		}
		str, ok := val.(string)
		if !ok {
			str = fmt.Sprint(val)
		}
		if ptr, isKnown := known[key]; isKnown {
			*ptr = str
			continue
		}
		if m.Extensions == nil {
			m.Extensions = make(map[string]string)
		}
		m.Extensions[key] = str
	}
	return nil
}

func (m MatchingCriteria) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Flatten())
}

// Flatten returns all declared criteria as a single map.
func (m MatchingCriteria) Flatten() map[string]string {
	out := make(map[string]string, len(m.Extensions)+4)
	for k, v := range m.Extensions {
		out[k] = v
	}
	for key, ptr := range m.fields() {
		if *ptr != "" {
			out[key] = *ptr
		}
	}
	return out
}

// Keys returns the declared criteria keys in sorted order.
func (m MatchingCriteria) Keys() []string {
	flat := m.Flatten()
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Catalog is the on-disk layout of a catalog file.
type Catalog struct {
	Tools    []CatalogRecord `json:"ai_tools"`
	Products []CatalogRecord `json:"products"`
}
