package roi_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// directScenario: $500/unit, 100 units, instant adoption, full utilization.
// Initial investment $2,000 (1000+200+300 upfront, 250 training, 250
// deployment), $100/month recurring, 12-month tool lifespan.
func directScenario() roi.ScenarioInputs {
	return roi.ScenarioInputs{
		ID:   "scn-test",
		Name: "Test Scenario",
		Savings: roi.SavingsInputs{
			Model:              roi.DirectSavings{RatePerUnit: money(500)},
			ReferenceUnits:     100,
			UtilizationPercent: 1.0,
		},
		Investment: roi.InvestmentInputs{
			AssemblyCost:         money(1000),
			DesignCost:           money(200),
			ControlsCost:         money(300),
			TrainingCost:         money(250),
			DeploymentCost:       money(250),
			MonthlyRecurringCost: money(100),
			ToolLifespanMonths:   12,
		},
	}
}

func requireEqual(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: want %s, got %s", label, want, got)
	}
}

// =============================================================================
// MONTHLY SERIES TESTS
// =============================================================================

func TestComputeScenario_InstantAdoption_FullMonthlySavings(t *testing.T) {
	// GIVEN: $500/unit, 100 units, no ramp, full utilization
	// WHEN: Simulating 36 months
	// THEN: Every month saves exactly $50,000

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 36)

	if len(results.Months) != 36 {
		t.Fatalf("expected 36 months, got %d", len(results.Months))
	}
	for _, m := range results.Months {
		requireEqual(t, money(50000), m.MonthlySavings, "monthly savings")
	}
	requireEqual(t, money(50000), results.MonthlySavingsAtFullAdoption, "full-adoption savings")
	requireEqual(t, money(500), results.SavingsPerUnit, "savings per unit")
}

func TestComputeScenario_CumulativeInvestment_SeededWithInitialOutlay(t *testing.T) {
	// GIVEN: Initial investment $2,000 and $100/month recurring
	// WHEN: Simulating
	// THEN: Month 1 cumulative investment is $2,100, month 2 is $2,200

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 3)

	requireEqual(t, money(2100), results.Months[0].CumulativeInvestment, "month 1")
	requireEqual(t, money(2200), results.Months[1].CumulativeInvestment, "month 2")
}

func TestComputeScenario_Redeployment_OnLifespanBoundary(t *testing.T) {
	// GIVEN: 12-month tool lifespan
	// WHEN: Simulating 36 months
	// THEN: Months 13 and 25 carry the redeployment charge (upfront $1,500 +
	//       deployment $250 on top of $100 recurring); month 1 does not

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 36)

	requireEqual(t, money(100), results.Months[0].MonthlyInvestmentCost, "month 1")
	requireEqual(t, money(1850), results.Months[12].MonthlyInvestmentCost, "month 13")
	requireEqual(t, money(1850), results.Months[24].MonthlyInvestmentCost, "month 25")
	requireEqual(t, money(100), results.Months[11].MonthlyInvestmentCost, "month 12")
	requireEqual(t, money(100), results.Months[13].MonthlyInvestmentCost, "month 14")
}

func TestComputeScenario_NoLifespan_NoRedeployment(t *testing.T) {
	// GIVEN: Tool lifespan 0 (tool never wears out)
	// WHEN: Simulating 36 months
	// THEN: Every month's investment is the recurring cost only

	in := directScenario()
	in.Investment.ToolLifespanMonths = 0

	engine := &roi.Engine{}
	results := engine.ComputeScenario(in, 36)

	for _, m := range results.Months {
		requireEqual(t, money(100), m.MonthlyInvestmentCost, "recurring only")
	}
}

func TestComputeScenario_LinearRamp_ScalesMonthlySavings(t *testing.T) {
	// GIVEN: 6-month linear ramp
	// WHEN: Simulating
	// THEN: Month 3 saves half of full adoption, month 6 and later save all of it

	in := directScenario()
	in.Savings.AdoptionRampMonths = 6

	engine := &roi.Engine{}
	results := engine.ComputeScenario(in, 12)

	requireEqual(t, money(25000), results.Months[2].MonthlySavings, "month 3 at 50%")
	requireEqual(t, money(50000), results.Months[5].MonthlySavings, "month 6 at 100%")
	requireEqual(t, money(50000), results.Months[11].MonthlySavings, "month 12 at 100%")
}

func TestComputeScenario_Utilization_ScalesSavingsNotInvestment(t *testing.T) {
	// GIVEN: 50% utilization
	// WHEN: Simulating
	// THEN: Savings halve, investment costs are untouched

	in := directScenario()
	in.Savings.UtilizationPercent = 0.5

	engine := &roi.Engine{}
	results := engine.ComputeScenario(in, 3)

	requireEqual(t, money(25000), results.Months[0].MonthlySavings, "halved savings")
	requireEqual(t, money(100), results.Months[0].MonthlyInvestmentCost, "investment unchanged")
}

// =============================================================================
// KPI TESTS
// =============================================================================

func TestComputeScenario_BreakEven_FirstPositiveNet_CapturedOnce(t *testing.T) {
	// GIVEN: Savings that overtake the investment in month 1
	// WHEN: Simulating
	// THEN: Break-even is month 1 and stays there

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 36)

	if results.BreakEvenMonth == nil {
		t.Fatal("expected break-even month")
	}
	if *results.BreakEvenMonth != 1 {
		t.Fatalf("expected break-even at month 1, got %d", *results.BreakEvenMonth)
	}
}

func TestComputeScenario_NeverBreaksEven_NilBreakEven(t *testing.T) {
	// GIVEN: Zero savings, positive recurring cost
	// WHEN: Simulating 36 months
	// THEN: Break-even is nil; net position only gets worse

	in := directScenario()
	in.Savings.Model = roi.DirectSavings{RatePerUnit: decimal.Zero}

	engine := &roi.Engine{}
	results := engine.ComputeScenario(in, 36)

	if results.BreakEvenMonth != nil {
		t.Fatalf("expected no break-even, got month %d", *results.BreakEvenMonth)
	}
	if !results.Months[35].NetPosition.IsNegative() {
		t.Fatalf("expected negative net position, got %s", results.Months[35].NetPosition)
	}
}

func TestComputeScenario_Year1ROI_ReadAtMonth12(t *testing.T) {
	// GIVEN: The standard direct scenario
	// WHEN: Simulating 36 months
	// THEN: ROI = net at month 12 / cumulative investment at month 12 × 100
	//       = 596,800 / 3,200 × 100 = 18,650%

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 36)

	requireEqual(t, money(18650), results.Year1ROI, "year-1 ROI")
}

func TestComputeScenario_Year1ROI_ShortHorizon_ClampsToLastMonth(t *testing.T) {
	// GIVEN: A 6-month analysis period
	// WHEN: Simulating
	// THEN: Year-1 ROI reads month 6 instead of a nonexistent month 12

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 6)

	last := results.Months[5]
	want := last.NetPosition.Div(last.CumulativeInvestment).Mul(money(100))
	requireEqual(t, want, results.Year1ROI, "clamped ROI")
}

func TestComputeScenario_Year1ROI_ZeroInvestment_GuardedToZero(t *testing.T) {
	// GIVEN: A scenario with no investment at all
	// WHEN: Simulating
	// THEN: ROI is 0, not a division panic or infinity

	in := directScenario()
	in.Investment = roi.InvestmentInputs{}

	engine := &roi.Engine{}
	results := engine.ComputeScenario(in, 12)

	requireEqual(t, decimal.Zero, results.Year1ROI, "guarded ROI")
}

func TestComputeScenario_ThreeYearNetSavings_MatchesFinalMonth(t *testing.T) {
	// GIVEN: The standard direct scenario
	// WHEN: Simulating 36 months
	// THEN: The headline KPI equals the final month's net position

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 36)

	requireEqual(t, results.Months[35].NetPosition, results.ThreeYearNetSavings, "net at horizon")
	requireEqual(t, results.Months[35].CumulativeInvestment, results.TotalInvestment, "total investment")
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestComputeScenario_ZeroPeriod_EmptySeries(t *testing.T) {
	// GIVEN: Analysis period of 0
	// WHEN: Simulating
	// THEN: No months; KPIs read off the initial seeds

	engine := &roi.Engine{}
	results := engine.ComputeScenario(directScenario(), 0)

	if len(results.Months) != 0 {
		t.Fatalf("expected no months, got %d", len(results.Months))
	}
	requireEqual(t, money(2000), results.TotalInvestment, "seeded investment")
	requireEqual(t, decimal.Zero, results.Year1ROI, "ROI without months")
	if results.BreakEvenMonth != nil {
		t.Fatal("expected no break-even")
	}
}

func TestComputeScenario_SCurve_SavingsMonotonicallyRise(t *testing.T) {
	// GIVEN: An S-curve engine with a 12-month ramp
	// WHEN: Simulating
	// THEN: Monthly savings never decrease during the ramp

	in := directScenario()
	in.Savings.AdoptionRampMonths = 12

	engine := &roi.Engine{Curve: roi.SCurveAdoption}
	results := engine.ComputeScenario(in, 12)

	for i := 1; i < len(results.Months); i++ {
		prev, cur := results.Months[i-1].MonthlySavings, results.Months[i].MonthlySavings
		if cur.LessThan(prev) {
			t.Fatalf("savings fell from %s to %s at month %d", prev, cur, i+1)
		}
	}
}

func TestComputeScenario_DeterministicForSameInputs(t *testing.T) {
	// GIVEN: The same inputs
	// WHEN: Simulating twice
	// THEN: Identical results

	engine := &roi.Engine{}
	a := engine.ComputeScenario(directScenario(), 36)
	b := engine.ComputeScenario(directScenario(), 36)

	for i := range a.Months {
		requireEqual(t, a.Months[i].NetPosition, b.Months[i].NetPosition, "net position")
	}
	requireEqual(t, a.Year1ROI, b.Year1ROI, "ROI")
}
