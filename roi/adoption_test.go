package roi_test

import (
	"math"
	"testing"

	"github.com/warp/roi-engine/roi"
)

// approxEqual checks two fractions for equality within float tolerance.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

// =============================================================================
// LINEAR ADOPTION TESTS
// =============================================================================

func TestLinearAdoption_ReachesFullAtRampEnd(t *testing.T) {
	// GIVEN: A 6-month ramp
	// WHEN: Evaluating across the ramp
	// THEN: Month 3 is exactly 0.5, month 6 is exactly 1.0, later months stay at 1.0

	if got := roi.LinearAdoption(3, 6); !approxEqual(got, 0.5) {
		t.Fatalf("month 3: want 0.5, got %f", got)
	}
	if got := roi.LinearAdoption(6, 6); got != 1.0 {
		t.Fatalf("month 6: want 1.0, got %f", got)
	}
	if got := roi.LinearAdoption(24, 6); got != 1.0 {
		t.Fatalf("month 24: want 1.0, got %f", got)
	}
}

func TestLinearAdoption_ZeroRamp_InstantFullAdoption(t *testing.T) {
	for _, ramp := range []int{0, -3} {
		if got := roi.LinearAdoption(1, ramp); got != 1.0 {
			t.Fatalf("ramp %d: want 1.0, got %f", ramp, got)
		}
	}
}

// =============================================================================
// S-CURVE ADOPTION TESTS
// =============================================================================

func TestSCurveAdoption_HalfAdoptionAtMidpoint(t *testing.T) {
	// GIVEN: A 12-month ramp
	// WHEN: Evaluating at the midpoint (month 6)
	// THEN: Adoption is exactly 0.5 (logistic midpoint)

	if got := roi.SCurveAdoption(6, 12); !approxEqual(got, 0.5) {
		t.Fatalf("midpoint: want 0.5, got %f", got)
	}
}

func TestSCurveAdoption_NearlyFullAtRampEnd(t *testing.T) {
	// GIVEN: A 12-month ramp
	// WHEN: Evaluating at the ramp end
	// THEN: Adoption is ~95% (logistic with k=6/ramp)

	got := roi.SCurveAdoption(12, 12)
	if got < 0.94 || got > 0.96 {
		t.Fatalf("ramp end: want ~0.95, got %f", got)
	}
}

func TestSCurveAdoption_MonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for month := 1; month <= 24; month++ {
		got := roi.SCurveAdoption(month, 12)
		if got < 0 || got > 1 {
			t.Fatalf("month %d: %f out of [0,1]", month, got)
		}
		if got < prev {
			t.Fatalf("month %d: adoption fell from %f to %f", month, prev, got)
		}
		prev = got
	}
}

func TestSCurveAdoption_ZeroRamp_InstantFullAdoption(t *testing.T) {
	if got := roi.SCurveAdoption(1, 0); got != 1.0 {
		t.Fatalf("want 1.0, got %f", got)
	}
}
