/*
savings.go - Per-unit savings rate derivation

PURPOSE:
  Derives how many dollars one unit of work saves per month. Two modes:

  direct:     A flat rate entered directly ($/unit/month).
  time-based: Derived from a labor comparison - current crew and minutes
              per unit vs. proposed crew and minutes per unit, priced at
              an hourly rate.

KEY INSIGHT:
  The mode is a tagged variant, not a bag of optional fields. Each mode's
  required fields are enforced at construction by its concrete type, the
  same way accrual strategies are modeled elsewhere in this codebase's
  lineage.

CLAMPING:
  The derived per-unit rate is never negative: a proposed process that
  costs MORE than the current one yields a rate of zero, not a negative
  savings stream.

SEE ALSO:
  - engine.go: Consumes SavingsInputs via PerUnitRate
*/
package roi

import "github.com/shopspring/decimal"

// =============================================================================
// SAVINGS MODEL - Tagged variant for the two derivation modes
// =============================================================================

type SavingsKind string

const (
	SavingsDirect    SavingsKind = "direct"
	SavingsTimeBased SavingsKind = "time-based"
)

// SavingsModel derives the raw per-unit monthly savings before additional
// savings and clamping are applied.
type SavingsModel interface {
	// LaborSavingsPerUnit returns $/unit/month saved by the change.
	LaborSavingsPerUnit() decimal.Decimal

	// Kind identifies the variant for serialization and display.
	Kind() SavingsKind
}

// DirectSavings is a flat per-unit rate.
type DirectSavings struct {
	RatePerUnit decimal.Decimal
}

func (d DirectSavings) LaborSavingsPerUnit() decimal.Decimal { return d.RatePerUnit }
func (d DirectSavings) Kind() SavingsKind                    { return SavingsDirect }

// TimeBasedSavings compares the labor cost of the current process against
// the proposed one. Times are minutes per unit.
type TimeBasedSavings struct {
	CurrentCrewSize        decimal.Decimal
	ProposedCrewSize       decimal.Decimal
	CurrentMinutesPerUnit  decimal.Decimal
	ProposedMinutesPerUnit decimal.Decimal
	HourlyRate             decimal.Decimal
}

var minutesPerHour = decimal.NewFromInt(60)

// CurrentCostPerUnit is crew * minutes/60 * hourly rate.
func (tb TimeBasedSavings) CurrentCostPerUnit() decimal.Decimal {
	return tb.CurrentCrewSize.Mul(tb.CurrentMinutesPerUnit).Div(minutesPerHour).Mul(tb.HourlyRate)
}

// ProposedCostPerUnit is the same comparison for the proposed process.
func (tb TimeBasedSavings) ProposedCostPerUnit() decimal.Decimal {
	return tb.ProposedCrewSize.Mul(tb.ProposedMinutesPerUnit).Div(minutesPerHour).Mul(tb.HourlyRate)
}

// LaborSavingsPerUnit is current cost minus proposed cost. The comparison is
// only meaningful when the current process takes time at all.
func (tb TimeBasedSavings) LaborSavingsPerUnit() decimal.Decimal {
	if !tb.CurrentMinutesPerUnit.IsPositive() {
		return decimal.Zero
	}
	return tb.CurrentCostPerUnit().Sub(tb.ProposedCostPerUnit())
}

func (tb TimeBasedSavings) Kind() SavingsKind { return SavingsTimeBased }

// =============================================================================
// SAVINGS INPUTS - Model plus the common fields
// =============================================================================

// SavingsInputs couple a derivation model with the fields shared by both modes.
type SavingsInputs struct {
	Model SavingsModel

	// UnitName is a label only ("part", "inspection", "ticket").
	UnitName string

	// ReferenceUnits is the monthly volume the per-unit rate is normalized
	// against. Floored at 1 wherever it is used as a multiplier or divisor.
	ReferenceUnits int

	AdditionalSavingsPerUnit decimal.Decimal

	// UtilizationPercent in [0,1] scales adoption for partial rollout.
	UtilizationPercent float64

	// AdoptionRampMonths is months to reach full adoption. Zero or less
	// means instant full adoption.
	AdoptionRampMonths int
}

// PerUnitRate is the derived savings rate: max(0, labor + additional).
func (s SavingsInputs) PerUnitRate() decimal.Decimal {
	labor := decimal.Zero
	if s.Model != nil {
		labor = s.Model.LaborSavingsPerUnit()
	}
	rate := labor.Add(s.AdditionalSavingsPerUnit)
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// EffectiveReferenceUnits floors ReferenceUnits at 1 so savings scale
// degenerately rather than vanish and downstream per-unit math never
// divides by zero.
func (s SavingsInputs) EffectiveReferenceUnits() int {
	if s.ReferenceUnits < 1 {
		return 1
	}
	return s.ReferenceUnits
}
