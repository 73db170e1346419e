/*
Package portfolio rescales a single simulated scenario across real-world
deployments.

PURPOSE:
  A scenario is simulated against a reference volume. A portfolio entry is a
  real deployment of that scenario: an actual unit volume, a number of
  physical tools, a calendar window, and cost exclusions. This package turns
  one scenario simulation into per-entry scaled value/investment figures,
  organization-wide aggregates, and a calendar-aligned timeline.

KEY CONCEPTS:
  - Entry:       One real deployment record referencing a scenario
  - ScaledEntry: An entry's rescaled simulation output
  - Summary:     Aggregates across all non-hidden entries
  - Timeline:    Union calendar range with per-month contributions

SCALING RULES:
  Savings scale with actualUnits / referenceUnits (plus an overtime premium
  for time-based scenarios pushed past 40 h/week). Investment does NOT take
  that scale factor - it is rebuilt from the entry's own tool count and
  exclusions, then re-simulated.

SEE ALSO:
  - scale.go:     Per-entry rescaling
  - aggregate.go: Summary and timeline construction
*/
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// ENTRY - One real deployment of a scenario
// =============================================================================

type EntryID string

// Entry is a real deployment record. Scenario and BaselineSavings are
// resolved copies of the referenced scenario's inputs; BaselineSavings is the
// originating savings block whose reference volume forms the scale-factor
// denominator.
type Entry struct {
	ID         EntryID
	ScenarioID roi.ScenarioID

	Scenario        roi.ScenarioInputs
	BaselineSavings roi.SavingsInputs

	// ActualUnits is the deployment's real monthly volume.
	ActualUnits int

	// ToolCount is how many physical tools were built (>= 1).
	ToolCount int

	// ExcludeDesignControls zeroes design + controls costs (already paid
	// elsewhere); ExcludeTraining zeroes training cost.
	ExcludeDesignControls bool
	ExcludeTraining       bool

	// Deployment window, inclusive calendar months.
	StartMonth roi.MonthKey
	EndMonth   roi.MonthKey

	// AnalysisPeriod is the entry's own simulated horizon in months.
	AnalysisPeriod int

	// Hidden excludes the entry from aggregates and the timeline without
	// deleting it.
	Hidden bool
}

// EffectiveToolCount floors ToolCount at 1.
func (e Entry) EffectiveToolCount() int {
	if e.ToolCount < 1 {
		return 1
	}
	return e.ToolCount
}

// =============================================================================
// SCALED OUTPUT
// =============================================================================

// ScaledEntry is one entry's rescaled simulation output.
type ScaledEntry struct {
	Entry Entry

	// DurationMonths is the calendar window length capped by the entry's
	// analysis period - months beyond the horizon have no simulated data.
	DurationMonths int

	// ScaleFactor projects reference-volume savings onto actual volume.
	ScaleFactor decimal.Decimal

	ScaledSavings    decimal.Decimal // final cumulative savings × scale factor
	ScaledInvestment decimal.Decimal // final cumulative investment, NOT scaled
	ScaledValue      decimal.Decimal // savings − investment

	// Investment is the modified block the entry was re-simulated with.
	Investment roi.InvestmentInputs

	// Results is the re-run simulation (modified investment, entry horizon).
	Results roi.ScenarioResults
}

// Summary aggregates all non-hidden entries.
type Summary struct {
	TotalValueCreated      decimal.Decimal
	TotalInvestment        decimal.Decimal
	DepartmentAnnualSalary decimal.Decimal
	NetProfit              decimal.Decimal
	DepartmentROI          decimal.Decimal // percent, 0 when salary <= 0
	ActiveEntries          int
	Entries                []ScaledEntry
}

// TimelinePoint is one calendar month of the portfolio timeline.
type TimelinePoint struct {
	Month      roi.MonthKey
	Savings    decimal.Decimal // scaled monthly savings across active entries
	Investment decimal.Decimal // monthly investment incl. each entry's initial outlay
	Net        decimal.Decimal // running savings − investment
}
