/*
engine.go - Month-by-month ROI simulation

PURPOSE:
  Turns ScenarioInputs into a ScenarioResults: an ordered series of monthly
  cash-flow facts plus derived KPIs. This is the single source of truth for
  the arithmetic; the formula layer mirrors it for display but never feeds
  back into it.

ALGORITHM (per month m = 1..analysisPeriod):
  1. Redeployment charge when the tool lifespan boundary is crossed
  2. Effective adoption = curve(m, ramp) * utilization
  3. Monthly savings = perUnitRate * referenceUnits * effective adoption
  4. Monthly investment = recurring + redeployment charge (if any)
  5. Running cumulative sums (investment seeded with the initial outlay)
  6. Net position = cumulative savings - cumulative investment
  7. First month with net position > 0 is captured as break-even, once

ERROR HANDLING:
  None. The engine is total over its numeric domain: degenerate inputs are
  clamped (see savings.go), and a never-reached break-even is a legitimate
  business outcome, not an error.

SEE ALSO:
  - adoption.go: Injectable adoption strategies
  - formula.go:  Display mirror of this arithmetic
*/
package roi

import "github.com/shopspring/decimal"

// =============================================================================
// ENGINE
// =============================================================================

var oneHundred = decimal.NewFromInt(100)

// Engine runs scenario simulations with a configurable adoption curve.
// The zero value uses LinearAdoption.
type Engine struct {
	Curve AdoptionCurve
}

// ComputeScenario simulates one scenario over analysisPeriod months.
// analysisPeriod is validated by the caller; a non-positive period yields
// an empty month series with the KPIs reading off the initial seeds.
func (e *Engine) ComputeScenario(in ScenarioInputs, analysisPeriod int) ScenarioResults {
	curve := e.Curve
	if curve == nil {
		curve = LinearAdoption
	}

	rate := in.Savings.PerUnitRate()
	units := decimal.NewFromInt(int64(in.Savings.EffectiveReferenceUnits()))
	utilization := decimal.NewFromFloat(in.Savings.UtilizationPercent)
	lifespan := in.Investment.ToolLifespanMonths

	cumulativeSavings := decimal.Zero
	cumulativeInvestment := in.Investment.InitialInvestment()

	var breakEven *int
	capacity := analysisPeriod
	if capacity < 0 {
		capacity = 0
	}
	months := make([]MonthlyBreakdown, 0, capacity)

	for month := 1; month <= analysisPeriod; month++ {
		investmentCost := in.Investment.MonthlyRecurringCost
		if lifespan > 0 && month > 1 && (month-1)%lifespan == 0 {
			investmentCost = investmentCost.Add(in.Investment.RedeploymentCost())
		}

		adoption := curve(month, in.Savings.AdoptionRampMonths)
		effective := decimal.NewFromFloat(adoption).Mul(utilization)
		savings := rate.Mul(units).Mul(effective)

		cumulativeSavings = cumulativeSavings.Add(savings)
		cumulativeInvestment = cumulativeInvestment.Add(investmentCost)
		net := cumulativeSavings.Sub(cumulativeInvestment)

		if breakEven == nil && net.IsPositive() {
			m := month
			breakEven = &m
		}

		months = append(months, MonthlyBreakdown{
			Month:                 month,
			AdoptionRate:          adoption,
			MonthlySavings:        savings,
			MonthlyInvestmentCost: investmentCost,
			CumulativeSavings:     cumulativeSavings,
			CumulativeInvestment:  cumulativeInvestment,
			NetPosition:           net,
		})
	}

	return ScenarioResults{
		ScenarioID:                   in.ID,
		Name:                         in.Name,
		Color:                        in.Color,
		Flags:                        in.Flags,
		Months:                       months,
		BreakEvenMonth:               breakEven,
		Year1ROI:                     year1ROI(months),
		ThreeYearNetSavings:          cumulativeSavings.Sub(cumulativeInvestment),
		TotalInvestment:              cumulativeInvestment,
		SavingsPerUnit:               rate,
		MonthlySavingsAtFullAdoption: rate.Mul(units).Mul(utilization),
	}
}

// year1ROI reads net position and cumulative investment at month 12, clamped
// to the last available month for shorter horizons. Guarded to 0 when the
// denominator is not positive.
func year1ROI(months []MonthlyBreakdown) decimal.Decimal {
	if len(months) == 0 {
		return decimal.Zero
	}
	idx := len(months) - 1
	if idx > 11 {
		idx = 11
	}
	m := months[idx]
	if !m.CumulativeInvestment.IsPositive() {
		return decimal.Zero
	}
	return m.NetPosition.Div(m.CumulativeInvestment).Mul(oneHundred)
}
