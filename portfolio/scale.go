/*
scale.go - Per-entry rescaling

PURPOSE:
  Projects one simulated scenario onto a real deployment:

  1. Cap the calendar window by the entry's analysis period
  2. Scale factor = actual units / reference units (floored at 1)
  3. Overtime premium for time-based scenarios pushed past 40 h/week
  4. Rebuild the investment block from exclusions and tool count
  5. Re-run the simulation with the modified investment
  6. Scale savings; keep investment unscaled (it already reflects the
     real tool count)

OVERTIME PREMIUM:
  When the actual volume forces the proposed crew beyond a 40-hour week,
  hours past 40 cost time-and-a-half. Weekly hours per worker are implied
  from the entry's volume: monthly hours = units × proposed minutes / 60
  ÷ crew, converted to weekly via ×12/52. Direct-rate scenarios carry no
  crew/time fields and never get the premium.

SEE ALSO:
  - aggregate.go: Consumes ScaledEntry for summaries and timelines
*/
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// RESCALER
// =============================================================================

const (
	standardWeeklyHours = 40.0
	overtimeMultiplier  = 1.5
	weeksPerMonth       = 52.0 / 12.0
)

// Rescaler re-simulates scenarios for portfolio entries. The zero value uses
// a linear-adoption engine.
type Rescaler struct {
	Engine *roi.Engine
}

func (r *Rescaler) engine() *roi.Engine {
	if r.Engine != nil {
		return r.Engine
	}
	return &roi.Engine{}
}

// ScaleEntry rescales one entry. Pure: same entry, same output.
func (r *Rescaler) ScaleEntry(e Entry) ScaledEntry {
	duration := roi.MonthsBetween(e.StartMonth, e.EndMonth)
	if duration > e.AnalysisPeriod {
		duration = e.AnalysisPeriod
	}

	refUnits := e.BaselineSavings.EffectiveReferenceUnits()
	scale := decimal.NewFromInt(int64(e.ActualUnits)).Div(decimal.NewFromInt(int64(refUnits)))
	scale = scale.Mul(overtimePremium(e))

	inputs := e.Scenario
	inputs.Investment = modifiedInvestment(e.Scenario.Investment, e)

	results := r.engine().ComputeScenario(inputs, e.AnalysisPeriod)

	finalSavings := decimal.Zero
	finalInvestment := inputs.Investment.InitialInvestment()
	if n := len(results.Months); n > 0 {
		finalSavings = results.Months[n-1].CumulativeSavings
		finalInvestment = results.Months[n-1].CumulativeInvestment
	}

	scaledSavings := finalSavings.Mul(scale)
	return ScaledEntry{
		Entry:            e,
		DurationMonths:   duration,
		ScaleFactor:      scale,
		ScaledSavings:    scaledSavings,
		ScaledInvestment: finalInvestment,
		ScaledValue:      scaledSavings.Sub(finalInvestment),
		Investment:       inputs.Investment,
		Results:          results,
	}
}

// overtimePremium models labor-law overtime inflation: hours past 40/week
// cost 1.5×, so the effective value of the deployment rises by
// effectiveHours / weeklyHours. Returns 1 for direct-rate scenarios and for
// crews within standard hours.
func overtimePremium(e Entry) decimal.Decimal {
	tb, ok := e.BaselineSavings.Model.(roi.TimeBasedSavings)
	if !ok {
		return decimal.NewFromInt(1)
	}

	crew := tb.ProposedCrewSize.InexactFloat64()
	if crew < 1 {
		crew = 1
	}
	minutesPerUnit := tb.ProposedMinutesPerUnit.InexactFloat64()
	monthlyHoursPerWorker := float64(e.ActualUnits) * minutesPerUnit / 60 / crew
	weeklyHours := monthlyHoursPerWorker / weeksPerMonth

	if weeklyHours <= standardWeeklyHours {
		return decimal.NewFromInt(1)
	}
	effectiveHours := standardWeeklyHours + (weeklyHours-standardWeeklyHours)*overtimeMultiplier
	return decimal.NewFromFloat(effectiveHours / weeklyHours)
}

// modifiedInvestment rebuilds the investment block for the deployment:
// exclusions first, then per-tool cost fields multiplied by the tool count.
// Design and controls are one-time engineering costs and never scale with
// tool count.
func modifiedInvestment(inv roi.InvestmentInputs, e Entry) roi.InvestmentInputs {
	if e.ExcludeDesignControls {
		inv.DesignCost = decimal.Zero
		inv.ControlsCost = decimal.Zero
	}
	if e.ExcludeTraining {
		inv.TrainingCost = decimal.Zero
	}

	tools := decimal.NewFromInt(int64(e.EffectiveToolCount()))
	inv.AssemblyCost = inv.AssemblyCost.Mul(tools)
	inv.TrainingCost = inv.TrainingCost.Mul(tools)
	inv.DeploymentCost = inv.DeploymentCost.Mul(tools)
	inv.MonthlyRecurringCost = inv.MonthlyRecurringCost.Mul(tools)
	return inv
}
