package catalog

import "fmt"

// Signal identifies a higher-level governance indicator computed from one or
// more weighted contributing fields.
type Signal string

const (
	SignalCompleteness  Signal = "completeness"
	SignalOwnership     Signal = "ownership"
	SignalDocumentation Signal = "documentation"
	SignalLineage       Signal = "lineage"
	SignalTrust         Signal = "trust"
	SignalQuality       Signal = "quality"
	SignalUsage         Signal = "usage"
	SignalFreshness     Signal = "freshness"
)

// SignalContribution describes how a field contributes to a governance signal.
type SignalContribution struct {
	Signal   Signal  `yaml:"signal" json:"signal"`
	Weight   float64 `yaml:"weight" json:"weight"`
	Required bool    `yaml:"required,omitempty" json:"required,omitempty"`
}

// FieldDefinition is a semantically named metadata attribute independent of
// any physical column name. Definitions are loaded once and never mutated.
type FieldDefinition struct {
	ID                  string               `yaml:"id" json:"id"`
	DisplayName         string               `yaml:"displayName" json:"displayName"`
	Description         string               `yaml:"description,omitempty" json:"description,omitempty"`
	Category            string               `yaml:"category" json:"category"`
	CanonicalColumn     string               `yaml:"canonicalColumn" json:"canonicalColumn"`
	AlternateNames      []string             `yaml:"alternateNames,omitempty" json:"alternateNames,omitempty"`
	SignalContributions []SignalContribution `yaml:"signalContributions,omitempty" json:"signalContributions,omitempty"`
}

// CandidateColumns returns the canonical column followed by the alternates,
// in declared order.
func (f *FieldDefinition) CandidateColumns() []string {
	candidates := make([]string, 0, len(f.AlternateNames)+1)
	if f.CanonicalColumn != "" {
		candidates = append(candidates, f.CanonicalColumn)
	}
	candidates = append(candidates, f.AlternateNames...)
	return candidates
}

// Validate checks a field definition for configuration errors. A field with no
// canonical column and no alternates can never resolve and is rejected at
// catalog-load time rather than per call.
func (f *FieldDefinition) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("field definition has empty id")
	}
	if f.CanonicalColumn == "" && len(f.AlternateNames) == 0 {
		return fmt.Errorf("field %q has no canonical column and no alternates", f.ID)
	}
	for _, c := range f.SignalContributions {
		if c.Signal == "" {
			return fmt.Errorf("field %q has a signal contribution with empty signal", f.ID)
		}
		if c.Weight < 0 {
			return fmt.Errorf("field %q has negative weight %v for signal %q", f.ID, c.Weight, c.Signal)
		}
	}
	return nil
}
