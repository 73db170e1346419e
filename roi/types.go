/*
Package roi provides the core ROI projection engine.

PURPOSE:
  This package contains the types and algorithms for projecting the return
  on investment of a tool or process change over a fixed analysis horizon.
  Given a handful of scenario inputs it produces a month-by-month series of
  cash-flow facts plus derived KPIs (break-even month, Year-1 ROI, net
  savings at the horizon).

KEY CONCEPTS IN THIS FILE (types.go):
  - InvestmentInputs:  One-time and recurring costs of a deployment
  - ScenarioInputs:    Identity + savings + investment for one what-if case
  - MonthlyBreakdown:  One simulated month of the cash-flow series
  - ScenarioResults:   The complete output of one simulation run

DESIGN PRINCIPLES:
  1. Purity: same inputs always produce the same outputs, no shared state
  2. Precision: uses decimal.Decimal for money to avoid floating-point drift
  3. Totality: degenerate numeric inputs are clamped, never rejected
  4. Immutability: a MonthlyBreakdown is never modified once produced

USAGE:
  engine := &roi.Engine{Curve: roi.LinearAdoption}
  results := engine.ComputeScenario(inputs, 36)
  if results.BreakEvenMonth != nil {
      fmt.Println("pays off in month", *results.BreakEvenMonth)
  }

SEE ALSO:
  - savings.go:  SavingsModel variants and the per-unit rate derivation
  - adoption.go: Linear and S-curve adoption strategies
  - engine.go:   The month-by-month simulation loop
  - formula.go:  Human-readable formula/substitution/result records
*/
package roi

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ScenarioID string

// IDGenerator supplies identifiers for new scenarios. Implementations live
// outside the core so the simulation stays free of process-wide state.
type IDGenerator interface {
	// NewID returns a fresh unique identifier.
	NewID() string
}

// =============================================================================
// QUALITATIVE FLAGS - Display-only, no numeric effect
// =============================================================================

// QualitativeFlags mark a scenario as touching safety, quality, or operations.
// They are carried through to results unchanged and never affect the numbers.
type QualitativeFlags struct {
	SafetyCritical     bool
	QualityCritical    bool
	OperationsCritical bool
}

// =============================================================================
// INVESTMENT INPUTS - What the deployment costs
// =============================================================================

// InvestmentInputs describe the cost side of a scenario. Assembly, design and
// controls are one-time upfront engineering costs; training and deployment are
// one-time rollout costs; the recurring cost is charged every month.
type InvestmentInputs struct {
	AssemblyCost         decimal.Decimal
	DesignCost           decimal.Decimal
	ControlsCost         decimal.Decimal
	MonthlyRecurringCost decimal.Decimal
	TrainingCost         decimal.Decimal
	DeploymentCost       decimal.Decimal

	// ToolLifespanMonths is how long a tool lasts before it must be rebuilt.
	// Zero disables redeployment charges entirely.
	ToolLifespanMonths int
}

// Upfront is the one-time engineering cost: assembly + design + controls.
func (inv InvestmentInputs) Upfront() decimal.Decimal {
	return inv.AssemblyCost.Add(inv.DesignCost).Add(inv.ControlsCost)
}

// RedeploymentCost is charged each time a tool reaches end-of-life:
// assembly + design + controls + deployment.
func (inv InvestmentInputs) RedeploymentCost() decimal.Decimal {
	return inv.Upfront().Add(inv.DeploymentCost)
}

// InitialInvestment seeds the cumulative investment before month 1:
// upfront + training + deployment.
func (inv InvestmentInputs) InitialInvestment() decimal.Decimal {
	return inv.Upfront().Add(inv.TrainingCost).Add(inv.DeploymentCost)
}

// =============================================================================
// SCENARIO INPUTS - One complete what-if case
// =============================================================================

// ScenarioInputs is everything the engine needs to simulate one scenario.
type ScenarioInputs struct {
	ID    ScenarioID
	Name  string
	Color string

	Savings    SavingsInputs
	Investment InvestmentInputs
	Flags      QualitativeFlags

	// CostBreakdownLocked masks upfront cost fields in formula output.
	// It never affects computed numbers.
	CostBreakdownLocked bool
}

// =============================================================================
// SIMULATION OUTPUT
// =============================================================================

// MonthlyBreakdown is one simulated month. Owned exclusively by the
// ScenarioResults that contains it.
type MonthlyBreakdown struct {
	Month                 int     // 1-based
	AdoptionRate          float64 // curve output, before utilization
	MonthlySavings        decimal.Decimal
	MonthlyInvestmentCost decimal.Decimal // recurring + any redeployment charge
	CumulativeSavings     decimal.Decimal
	CumulativeInvestment  decimal.Decimal
	NetPosition           decimal.Decimal // cumulative savings - cumulative investment
}

// ScenarioResults is the output of one simulation run.
type ScenarioResults struct {
	ScenarioID ScenarioID
	Name       string
	Color      string
	Flags      QualitativeFlags

	// Months has length == analysisPeriod, Months[i].Month == i+1.
	Months []MonthlyBreakdown

	// BreakEvenMonth is the first month with NetPosition > 0, nil if the
	// investment never pays off within the horizon. Exact break-even
	// (NetPosition == 0) does not count as reached.
	BreakEvenMonth *int

	// Year1ROI is net position at month 12 (or the last simulated month for
	// shorter horizons) over cumulative investment at that month, in percent.
	// Guarded to 0 when the denominator is not positive.
	Year1ROI decimal.Decimal

	// ThreeYearNetSavings is the net position at the final simulated month.
	// The name is historical (persisted schema), not literally three years.
	ThreeYearNetSavings decimal.Decimal

	// TotalInvestment is cumulative investment at the final month.
	TotalInvestment decimal.Decimal

	// SavingsPerUnit is the full-adoption per-unit rate.
	SavingsPerUnit decimal.Decimal

	// MonthlySavingsAtFullAdoption is the steady-state monthly figure:
	// rate * referenceUnits * utilization, adoption ramp ignored.
	MonthlySavingsAtFullAdoption decimal.Decimal
}
