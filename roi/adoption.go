package roi

import "math"

// =============================================================================
// ADOPTION CURVES - How fast the promised gain is actually realized
// =============================================================================

// AdoptionCurve maps (month, rampMonths) to an adoption fraction in [0, 1].
// The engine accepts any curve; two strategies are provided. Both are pure,
// deterministic, and defined for all month >= 1.
type AdoptionCurve func(month, rampMonths int) float64

// LinearAdoption ramps evenly, reaching exactly 1.0 at month == rampMonths
// and staying there. A ramp of zero or less means instant full adoption.
func LinearAdoption(month, rampMonths int) float64 {
	if rampMonths <= 0 {
		return 1
	}
	f := float64(month) / float64(rampMonths)
	if f > 1 {
		return 1
	}
	return f
}

// sCurveSteepness is tuned so the logistic curve reaches ~95% adoption at
// month == rampMonths (k = 6/ramp, midpoint ramp/2).
const sCurveSteepness = 6.0

// SCurveAdoption is a logistic ramp: slow start, fast middle, slow finish.
// Same zero-ramp guard as LinearAdoption.
func SCurveAdoption(month, rampMonths int) float64 {
	if rampMonths <= 0 {
		return 1
	}
	midpoint := float64(rampMonths) / 2
	k := sCurveSteepness / float64(rampMonths)
	return 1 / (1 + math.Exp(-k*(float64(month)-midpoint)))
}
