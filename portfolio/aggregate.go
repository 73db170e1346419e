package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/warp/roi-engine/roi"
)

// =============================================================================
// AGGREGATION - Organization-wide rollup
// =============================================================================

// Aggregate sums scaled value and investment across all non-hidden entries
// and derives department-level KPIs against the department's annual salary.
// DepartmentROI is guarded to 0 when salary is not positive.
func (r *Rescaler) Aggregate(entries []Entry, departmentAnnualSalary decimal.Decimal) Summary {
	s := Summary{
		TotalValueCreated:      decimal.Zero,
		TotalInvestment:        decimal.Zero,
		DepartmentAnnualSalary: departmentAnnualSalary,
		NetProfit:              decimal.Zero,
		DepartmentROI:          decimal.Zero,
	}

	for _, e := range entries {
		if e.Hidden {
			continue
		}
		scaled := r.ScaleEntry(e)
		s.Entries = append(s.Entries, scaled)
		s.TotalValueCreated = s.TotalValueCreated.Add(scaled.ScaledValue)
		s.TotalInvestment = s.TotalInvestment.Add(scaled.ScaledInvestment)
		s.ActiveEntries++
	}

	s.NetProfit = s.TotalValueCreated.Sub(departmentAnnualSalary)
	if departmentAnnualSalary.IsPositive() {
		s.DepartmentROI = s.NetProfit.Div(departmentAnnualSalary).Mul(decimal.NewFromInt(100))
	}
	return s
}

// =============================================================================
// TIMELINE - Calendar-aligned monthly series
// =============================================================================

// Timeline builds the union calendar range across all non-hidden entries and
// sums each month's contributions. An entry contributes its scaled monthly
// breakdown for the months inside its own window (capped by its duration) and
// zero elsewhere; its initial investment lands on its first calendar month.
func (r *Rescaler) Timeline(entries []Entry) []TimelinePoint {
	var scaled []ScaledEntry
	var rangeStart, rangeEnd roi.MonthKey
	for _, e := range entries {
		if e.Hidden || e.StartMonth.IsZero() || e.EndMonth.IsZero() {
			continue
		}
		se := r.ScaleEntry(e)
		scaled = append(scaled, se)
		if rangeStart.IsZero() || e.StartMonth.Before(rangeStart) {
			rangeStart = e.StartMonth
		}
		if rangeEnd.IsZero() || e.EndMonth.After(rangeEnd) {
			rangeEnd = e.EndMonth
		}
	}
	if len(scaled) == 0 {
		return nil
	}

	running := decimal.Zero
	var points []TimelinePoint
	for _, month := range roi.EnumerateRange(rangeStart, rangeEnd) {
		savings := decimal.Zero
		investment := decimal.Zero

		for _, se := range scaled {
			e := se.Entry
			if month.Before(e.StartMonth) || month.After(e.EndMonth) {
				continue
			}
			// Index of this calendar month inside the entry's own window.
			idx := roi.MonthsBetween(e.StartMonth, month) - 1
			if idx >= se.DurationMonths || idx >= len(se.Results.Months) {
				continue
			}
			breakdown := se.Results.Months[idx]
			savings = savings.Add(breakdown.MonthlySavings.Mul(se.ScaleFactor))
			investment = investment.Add(breakdown.MonthlyInvestmentCost)
			if idx == 0 {
				investment = investment.Add(se.Investment.InitialInvestment())
			}
		}

		running = running.Add(savings).Sub(investment)
		points = append(points, TimelinePoint{
			Month:      month,
			Savings:    savings,
			Investment: investment,
			Net:        running,
		})
	}
	return points
}
