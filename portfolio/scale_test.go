package portfolio_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/portfolio"
	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func requireEqual(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: want %s, got %s", label, want, got)
	}
}

func approxEqual(t *testing.T, want, got decimal.Decimal, label string) {
	t.Helper()
	if math.Abs(want.InexactFloat64()-got.InexactFloat64()) >= 0.0001 {
		t.Fatalf("%s: want ~%s, got %s", label, want, got)
	}
}

func mk(year int, month time.Month) roi.MonthKey {
	return roi.MonthKey{Year: year, Month: month}
}

// directEntry deploys a direct-savings scenario at reference volume for one
// calendar year with a 12-month horizon.
func directEntry() portfolio.Entry {
	scn := roi.ScenarioInputs{
		ID:   "scn-1",
		Name: "Direct",
		Savings: roi.SavingsInputs{
			Model:              roi.DirectSavings{RatePerUnit: money(10)},
			ReferenceUnits:     100,
			UtilizationPercent: 1.0,
		},
		Investment: roi.InvestmentInputs{
			AssemblyCost:         money(1000),
			DesignCost:           money(500),
			ControlsCost:         money(500),
			TrainingCost:         money(200),
			DeploymentCost:       money(300),
			MonthlyRecurringCost: money(50),
		},
	}
	return portfolio.Entry{
		ID:              "entry-1",
		ScenarioID:      scn.ID,
		Scenario:        scn,
		BaselineSavings: scn.Savings,
		ActualUnits:     100,
		ToolCount:       1,
		StartMonth:      mk(2026, time.January),
		EndMonth:        mk(2026, time.December),
		AnalysisPeriod:  12,
	}
}

// timeBasedEntry: 1-person proposed crew at 12 min/unit. Overtime starts
// above ~867 units/month.
func timeBasedEntry(actualUnits int) portfolio.Entry {
	e := directEntry()
	e.Scenario.Savings.Model = roi.TimeBasedSavings{
		CurrentCrewSize:        money(2),
		ProposedCrewSize:       money(1),
		CurrentMinutesPerUnit:  money(30),
		ProposedMinutesPerUnit: money(12),
		HourlyRate:             money(55),
	}
	e.BaselineSavings = e.Scenario.Savings
	e.ActualUnits = actualUnits
	return e
}

// =============================================================================
// SCALE FACTOR TESTS
// =============================================================================

func TestScaleEntry_ReferenceVolume_IdentityScale(t *testing.T) {
	// GIVEN: A deployment at exactly the reference volume
	// WHEN: Rescaling
	// THEN: Scale factor 1; scaled savings equal the simulation's final
	//       cumulative savings, scaled value is savings minus investment

	r := &portfolio.Rescaler{}
	se := r.ScaleEntry(directEntry())

	requireEqual(t, money(1), se.ScaleFactor, "scale factor")

	last := se.Results.Months[len(se.Results.Months)-1]
	requireEqual(t, last.CumulativeSavings, se.ScaledSavings, "scaled savings")
	requireEqual(t, last.CumulativeInvestment, se.ScaledInvestment, "scaled investment")
	requireEqual(t, se.ScaledSavings.Sub(se.ScaledInvestment), se.ScaledValue, "scaled value")
}

func TestScaleEntry_DoubleVolume_DoublesSavingsNotInvestment(t *testing.T) {
	// GIVEN: A deployment at twice the reference volume
	// WHEN: Rescaling
	// THEN: Savings double, investment stays put

	r := &portfolio.Rescaler{}
	base := r.ScaleEntry(directEntry())

	e := directEntry()
	e.ActualUnits = 200
	doubled := r.ScaleEntry(e)

	requireEqual(t, money(2), doubled.ScaleFactor, "scale factor")
	requireEqual(t, base.ScaledSavings.Mul(money(2)), doubled.ScaledSavings, "doubled savings")
	requireEqual(t, base.ScaledInvestment, doubled.ScaledInvestment, "investment unchanged")
}

func TestScaleEntry_ZeroReferenceUnits_FlooredDenominator(t *testing.T) {
	// GIVEN: A degenerate baseline with zero reference units
	// WHEN: Rescaling 50 actual units
	// THEN: Denominator floors at 1, so the scale factor is 50

	e := directEntry()
	e.BaselineSavings.ReferenceUnits = 0
	e.ActualUnits = 50

	r := &portfolio.Rescaler{}
	requireEqual(t, money(50), r.ScaleEntry(e).ScaleFactor, "floored scale")
}

// =============================================================================
// DURATION TESTS
// =============================================================================

func TestScaleEntry_Duration_CappedByAnalysisPeriod(t *testing.T) {
	// GIVEN: A 24-month calendar window but a 12-month analysis period
	// WHEN: Rescaling
	// THEN: Duration is capped at 12 - months beyond the horizon have no data

	e := directEntry()
	e.EndMonth = mk(2027, time.December)

	r := &portfolio.Rescaler{}
	if got := r.ScaleEntry(e).DurationMonths; got != 12 {
		t.Fatalf("want 12, got %d", got)
	}
}

func TestScaleEntry_Duration_WindowShorterThanHorizon(t *testing.T) {
	e := directEntry()
	e.EndMonth = mk(2026, time.March)

	r := &portfolio.Rescaler{}
	if got := r.ScaleEntry(e).DurationMonths; got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
}

// =============================================================================
// INVESTMENT MODIFIER TESTS
// =============================================================================

func TestScaleEntry_ToolCount_MultipliesPerToolCosts(t *testing.T) {
	// GIVEN: A three-tool deployment
	// WHEN: Rescaling
	// THEN: Assembly, training, deployment, recurring × 3; design and
	//       controls (one-time engineering) untouched

	e := directEntry()
	e.ToolCount = 3

	r := &portfolio.Rescaler{}
	inv := r.ScaleEntry(e).Investment

	requireEqual(t, money(3000), inv.AssemblyCost, "assembly ×3")
	requireEqual(t, money(600), inv.TrainingCost, "training ×3")
	requireEqual(t, money(900), inv.DeploymentCost, "deployment ×3")
	requireEqual(t, money(150), inv.MonthlyRecurringCost, "recurring ×3")
	requireEqual(t, money(500), inv.DesignCost, "design untouched")
	requireEqual(t, money(500), inv.ControlsCost, "controls untouched")
}

func TestScaleEntry_Exclusions_AppliedBeforeToolCount(t *testing.T) {
	// GIVEN: Both exclusions on a two-tool deployment
	// WHEN: Rescaling
	// THEN: Design, controls, training all zero; remaining per-tool costs ×2

	e := directEntry()
	e.ToolCount = 2
	e.ExcludeDesignControls = true
	e.ExcludeTraining = true

	r := &portfolio.Rescaler{}
	inv := r.ScaleEntry(e).Investment

	requireEqual(t, decimal.Zero, inv.DesignCost, "design excluded")
	requireEqual(t, decimal.Zero, inv.ControlsCost, "controls excluded")
	requireEqual(t, decimal.Zero, inv.TrainingCost, "training excluded")
	requireEqual(t, money(2000), inv.AssemblyCost, "assembly ×2")
}

// =============================================================================
// OVERTIME PREMIUM TESTS
// =============================================================================

func TestScaleEntry_Overtime_PremiumAboveFortyHours(t *testing.T) {
	// GIVEN: 1300 units/month at 12 min/unit, crew of 1
	//        -> 260 h/month -> 60 h/week, 20 hours of overtime
	// WHEN: Rescaling
	// THEN: Scale factor carries the (40 + 20×1.5)/60 premium on top of the
	//       13× volume ratio

	e := timeBasedEntry(1300)
	e.BaselineSavings.ReferenceUnits = 100

	r := &portfolio.Rescaler{}
	se := r.ScaleEntry(e)

	premium := (40.0 + 20.0*1.5) / 60.0
	approxEqual(t, money(13*premium), se.ScaleFactor, "overtime-adjusted scale")
}

func TestScaleEntry_Overtime_NoneWithinStandardWeek(t *testing.T) {
	// GIVEN: 400 units/month -> 80 h/month -> ~18.5 h/week
	// WHEN: Rescaling
	// THEN: No premium, plain volume ratio

	e := timeBasedEntry(400)
	r := &portfolio.Rescaler{}
	requireEqual(t, money(4), r.ScaleEntry(e).ScaleFactor, "plain ratio")
}

func TestScaleEntry_Overtime_NeverForDirectSavings(t *testing.T) {
	// GIVEN: A direct-rate deployment at absurd volume
	// WHEN: Rescaling
	// THEN: No crew, no overtime - plain volume ratio

	e := directEntry()
	e.ActualUnits = 100000

	r := &portfolio.Rescaler{}
	requireEqual(t, money(1000), r.ScaleEntry(e).ScaleFactor, "no premium")
}

func TestScaleEntry_Deterministic(t *testing.T) {
	r := &portfolio.Rescaler{}
	e := timeBasedEntry(1300)
	a, b := r.ScaleEntry(e), r.ScaleEntry(e)
	requireEqual(t, a.ScaledValue, b.ScaledValue, "scaled value")
	requireEqual(t, a.ScaleFactor, b.ScaleFactor, "scale factor")
}
