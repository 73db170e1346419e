package roi

import "github.com/shopspring/decimal"

// =============================================================================
// SCENARIO FACTORY - Lifecycle without process-wide state
// =============================================================================

// ScenarioFactory creates and duplicates scenarios. Identifier generation is
// injected so the core carries no global counters.
type ScenarioFactory struct {
	IDs IDGenerator
}

func NewScenarioFactory(ids IDGenerator) *ScenarioFactory {
	return &ScenarioFactory{IDs: ids}
}

// defaultRampMonths keeps new scenarios valid (ramp must be positive).
const defaultRampMonths = 6

// NewScenario creates a scenario with zeroed cost/savings defaults. The
// caller mutates fields afterwards via field-level updates.
func (f *ScenarioFactory) NewScenario(name string) ScenarioInputs {
	if name == "" {
		name = "New Scenario"
	}
	return ScenarioInputs{
		ID:   ScenarioID(f.IDs.NewID()),
		Name: name,
		Savings: SavingsInputs{
			Model:              DirectSavings{RatePerUnit: decimal.Zero},
			ReferenceUnits:     1,
			UtilizationPercent: 1.0,
			AdoptionRampMonths: defaultRampMonths,
		},
	}
}

// Duplicate copies every field of an existing scenario under a new identity.
func (f *ScenarioFactory) Duplicate(s ScenarioInputs) ScenarioInputs {
	dup := s
	dup.ID = ScenarioID(f.IDs.NewID())
	dup.Name = s.Name + " (copy)"
	return dup
}
