/*
formula.go - Human-readable mirror of the engine arithmetic

PURPOSE:
  Emits an ordered list of {id, label, formula, substituted, result} records
  for transparency UIs: the symbolic formula, the same formula with literal
  values substituted in, and the numeric result.

KEY INSIGHT:
  This layer recomputes the engine's intermediate values itself instead of
  reaching into engine internals, so it stays presentation-pure. It must be
  kept numerically identical to engine.go - the test suite asserts that the
  per-formula results reproduce the engine's ScenarioResults fields.

COST LOCKING:
  When the scenario's cost breakdown is locked, upfront cost components are
  masked with a placeholder in the substituted string only. Results are
  never masked.

SEE ALSO:
  - engine.go: The authoritative arithmetic this file mirrors
*/
package roi

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FORMULA DISPLAY
// =============================================================================

// FormulaDisplay is one formula + substitution + result triple.
type FormulaDisplay struct {
	ID          string
	Label       string
	Formula     string
	Substituted string
	Result      decimal.Decimal
}

// maskedValue replaces upfront cost literals in substituted strings when the
// scenario's cost breakdown is locked.
const maskedValue = "•••"

// FormulaDisplays mirrors the engine's arithmetic for one scenario over the
// given horizon, using the default linear adoption curve. costLocked masks
// upfront components in substitutions only.
func FormulaDisplays(in ScenarioInputs, analysisPeriod int, costLocked bool) []FormulaDisplay {
	rate := in.Savings.PerUnitRate()
	units := decimal.NewFromInt(int64(in.Savings.EffectiveReferenceUnits()))
	utilization := decimal.NewFromFloat(in.Savings.UtilizationPercent)
	inv := in.Investment

	money := func(d decimal.Decimal) string {
		if costLocked {
			return maskedValue
		}
		return FormatMoney(d)
	}

	displays := []FormulaDisplay{
		savingsPerUnitDisplay(in.Savings, rate),
		{
			ID:      "monthly-savings-full-adoption",
			Label:   "Monthly savings at full adoption",
			Formula: "savings/unit × reference units × utilization",
			Substituted: fmt.Sprintf("%s × %s × %s",
				FormatMoney(rate), units.String(), FormatPercent(utilization.Mul(oneHundred))),
			Result: rate.Mul(units).Mul(utilization),
		},
		{
			ID:      "initial-investment",
			Label:   "Initial investment",
			Formula: "assembly + design + controls + training + deployment",
			Substituted: fmt.Sprintf("%s + %s + %s + %s + %s",
				money(inv.AssemblyCost), money(inv.DesignCost), money(inv.ControlsCost),
				FormatMoney(inv.TrainingCost), FormatMoney(inv.DeploymentCost)),
			Result: inv.InitialInvestment(),
		},
	}

	if inv.ToolLifespanMonths > 0 {
		displays = append(displays, FormulaDisplay{
			ID:      "redeployment-cost",
			Label:   fmt.Sprintf("Redeployment cost (every %d months)", inv.ToolLifespanMonths),
			Formula: "assembly + design + controls + deployment",
			Substituted: fmt.Sprintf("%s + %s + %s + %s",
				money(inv.AssemblyCost), money(inv.DesignCost), money(inv.ControlsCost),
				FormatMoney(inv.DeploymentCost)),
			Result: inv.RedeploymentCost(),
		})
	}

	// Recompute the running sums the way the engine does, without calling it.
	totalSavings := decimal.Zero
	totalInvestment := inv.InitialInvestment()
	redeployments := 0
	for month := 1; month <= analysisPeriod; month++ {
		cost := inv.MonthlyRecurringCost
		if inv.ToolLifespanMonths > 0 && month > 1 && (month-1)%inv.ToolLifespanMonths == 0 {
			cost = cost.Add(inv.RedeploymentCost())
			redeployments++
		}
		adoption := LinearAdoption(month, in.Savings.AdoptionRampMonths)
		effective := decimal.NewFromFloat(adoption).Mul(utilization)
		totalSavings = totalSavings.Add(rate.Mul(units).Mul(effective))
		totalInvestment = totalInvestment.Add(cost)
	}
	net := totalSavings.Sub(totalInvestment)

	displays = append(displays,
		FormulaDisplay{
			ID:      "total-investment",
			Label:   fmt.Sprintf("Total investment over %d months", analysisPeriod),
			Formula: "initial + recurring × months + redeployments",
			Substituted: fmt.Sprintf("%s + %s × %d + %d × %s",
				money(inv.InitialInvestment()), FormatMoney(inv.MonthlyRecurringCost),
				analysisPeriod, redeployments, FormatMoney(inv.RedeploymentCost())),
			Result: totalInvestment,
		},
		FormulaDisplay{
			ID:      "cumulative-savings",
			Label:   fmt.Sprintf("Cumulative savings over %d months", analysisPeriod),
			Formula: "Σ savings/unit × reference units × adoption(m) × utilization",
			Substituted: fmt.Sprintf("Σ %s × %s × adoption(m) × %s",
				FormatMoney(rate), units.String(), FormatPercent(utilization.Mul(oneHundred))),
			Result: totalSavings,
		},
		FormulaDisplay{
			ID:          "net-savings",
			Label:       "Net savings at horizon",
			Formula:     "cumulative savings − total investment",
			Substituted: fmt.Sprintf("%s − %s", FormatMoney(totalSavings), money(totalInvestment)),
			Result:      net,
		},
		year1ROIDisplay(in, analysisPeriod, rate, units, utilization),
	)

	return displays
}

func savingsPerUnitDisplay(s SavingsInputs, rate decimal.Decimal) FormulaDisplay {
	switch m := s.Model.(type) {
	case TimeBasedSavings:
		return FormulaDisplay{
			ID:      "savings-per-unit",
			Label:   "Savings per unit",
			Formula: "max(0, (current crew × current min/60 − proposed crew × proposed min/60) × rate + additional)",
			Substituted: fmt.Sprintf("max(0, (%s × %s/60 − %s × %s/60) × %s + %s)",
				m.CurrentCrewSize.String(), m.CurrentMinutesPerUnit.String(),
				m.ProposedCrewSize.String(), m.ProposedMinutesPerUnit.String(),
				FormatMoney(m.HourlyRate), FormatMoney(s.AdditionalSavingsPerUnit)),
			Result: rate,
		}
	default:
		direct := decimal.Zero
		if d, ok := s.Model.(DirectSavings); ok {
			direct = d.RatePerUnit
		}
		return FormulaDisplay{
			ID:      "savings-per-unit",
			Label:   "Savings per unit",
			Formula: "max(0, direct rate + additional)",
			Substituted: fmt.Sprintf("max(0, %s + %s)",
				FormatMoney(direct), FormatMoney(s.AdditionalSavingsPerUnit)),
			Result: rate,
		}
	}
}

func year1ROIDisplay(in ScenarioInputs, analysisPeriod int, rate, units, utilization decimal.Decimal) FormulaDisplay {
	// Same clamp as the engine: month 12 or the last available month.
	horizon := analysisPeriod
	if horizon > 12 {
		horizon = 12
	}
	result := decimal.Zero

	savings := decimal.Zero
	investment := in.Investment.InitialInvestment()
	inv := in.Investment
	for month := 1; month <= horizon; month++ {
		cost := inv.MonthlyRecurringCost
		if inv.ToolLifespanMonths > 0 && month > 1 && (month-1)%inv.ToolLifespanMonths == 0 {
			cost = cost.Add(inv.RedeploymentCost())
		}
		adoption := LinearAdoption(month, in.Savings.AdoptionRampMonths)
		savings = savings.Add(rate.Mul(units).Mul(decimal.NewFromFloat(adoption).Mul(utilization)))
		investment = investment.Add(cost)
	}
	if horizon >= 1 && investment.IsPositive() {
		result = savings.Sub(investment).Div(investment).Mul(oneHundred)
	}

	return FormulaDisplay{
		ID:      "year1-roi",
		Label:   "Year-1 ROI",
		Formula: "(net position at month 12 ÷ cumulative investment at month 12) × 100",
		Substituted: fmt.Sprintf("(%s ÷ %s) × 100",
			FormatMoney(savings.Sub(investment)), FormatMoney(investment)),
		Result: result,
	}
}

// =============================================================================
// PRESENTATION FORMATTING
// =============================================================================
// Consumed only by this layer, never by the numeric core.

// FormatMoney renders a decimal as "$1,234.56" (or "-$1,234.56").
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	parts := strings.SplitN(s, ".", 2)
	return sign + "$" + groupThousands(parts[0]) + "." + parts[1]
}

// FormatPercent renders a decimal as "42.0%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
