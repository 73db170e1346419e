package roi_test

import (
	"fmt"
	"testing"

	"github.com/warp/roi-engine/roi"
)

// seqIDs is a deterministic IDGenerator for tests.
type seqIDs struct{ n int }

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func TestNewScenario_Defaults(t *testing.T) {
	// GIVEN: A factory
	// WHEN: Creating a scenario with a name
	// THEN: Valid defaults - direct mode at $0, one reference unit, full
	//       utilization, six-month ramp

	f := roi.NewScenarioFactory(&seqIDs{})
	s := f.NewScenario("Weld Cell")

	if s.ID != "id-1" {
		t.Fatalf("id: got %q", s.ID)
	}
	if s.Name != "Weld Cell" {
		t.Fatalf("name: got %q", s.Name)
	}
	if _, ok := s.Savings.Model.(roi.DirectSavings); !ok {
		t.Fatalf("model: got %T", s.Savings.Model)
	}
	if s.Savings.ReferenceUnits != 1 {
		t.Fatalf("reference units: got %d", s.Savings.ReferenceUnits)
	}
	if s.Savings.UtilizationPercent != 1.0 {
		t.Fatalf("utilization: got %f", s.Savings.UtilizationPercent)
	}
	if s.Savings.AdoptionRampMonths != 6 {
		t.Fatalf("ramp: got %d", s.Savings.AdoptionRampMonths)
	}
}

func TestNewScenario_EmptyName_GetsPlaceholder(t *testing.T) {
	f := roi.NewScenarioFactory(&seqIDs{})
	if s := f.NewScenario(""); s.Name != "New Scenario" {
		t.Fatalf("got %q", s.Name)
	}
}

func TestDuplicate_NewIdentity_SameConfiguration(t *testing.T) {
	// GIVEN: A fully configured scenario
	// WHEN: Duplicating it
	// THEN: Fresh ID, "(copy)" suffix, every other field identical

	f := roi.NewScenarioFactory(&seqIDs{})
	original := directScenario()
	original.Flags = roi.QualitativeFlags{SafetyCritical: true}

	dup := f.Duplicate(original)

	if dup.ID == original.ID {
		t.Fatal("duplicate kept the original ID")
	}
	if dup.Name != "Test Scenario (copy)" {
		t.Fatalf("name: got %q", dup.Name)
	}
	if !dup.Flags.SafetyCritical {
		t.Fatal("flags not copied")
	}
	requireEqual(t, original.Investment.InitialInvestment(),
		dup.Investment.InitialInvestment(), "investment copied")
	requireEqual(t, original.Savings.PerUnitRate(),
		dup.Savings.PerUnitRate(), "savings copied")
}
