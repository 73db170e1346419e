package roi_test

import (
	"testing"
	"time"

	"github.com/warp/roi-engine/roi"
)

func mk(year int, month time.Month) roi.MonthKey {
	return roi.MonthKey{Year: year, Month: month}
}

func TestParseMonthKey_RoundTrip(t *testing.T) {
	key, err := roi.ParseMonthKey("2026-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != mk(2026, time.March) {
		t.Fatalf("got %+v", key)
	}
	if key.String() != "2026-03" {
		t.Fatalf("round trip: got %q", key.String())
	}
}

func TestParseMonthKey_Invalid(t *testing.T) {
	for _, s := range []string{"", "2026", "2026-13", "03-2026", "2026-3"} {
		if _, err := roi.ParseMonthKey(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestMonthKey_AddMonths_CrossesYearBoundary(t *testing.T) {
	if got := mk(2026, time.November).AddMonths(3); got != mk(2027, time.February) {
		t.Fatalf("forward: got %s", got)
	}
	if got := mk(2026, time.February).AddMonths(-3); got != mk(2025, time.November) {
		t.Fatalf("backward: got %s", got)
	}
}

func TestMonthsBetween_Inclusive(t *testing.T) {
	for _, tc := range []struct {
		from, to roi.MonthKey
		want     int
	}{
		{mk(2026, time.January), mk(2026, time.January), 1},
		{mk(2026, time.January), mk(2026, time.March), 3},
		{mk(2026, time.November), mk(2027, time.February), 4},
		{mk(2026, time.March), mk(2026, time.January), 0},
	} {
		if got := roi.MonthsBetween(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s..%s: want %d, got %d", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestEnumerateRange(t *testing.T) {
	keys := roi.EnumerateRange(mk(2026, time.November), mk(2027, time.January))
	if len(keys) != 3 {
		t.Fatalf("want 3 keys, got %d", len(keys))
	}
	want := []roi.MonthKey{mk(2026, time.November), mk(2026, time.December), mk(2027, time.January)}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("index %d: want %s, got %s", i, want[i], keys[i])
		}
	}
}

func TestMonthKey_Ordering(t *testing.T) {
	a, b := mk(2026, time.December), mk(2027, time.January)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Fatal("ordering broken across year boundary")
	}
	if !a.Equal(a) {
		t.Fatal("key not equal to itself")
	}
	if !(roi.MonthKey{}).IsZero() || a.IsZero() {
		t.Fatal("zero detection broken")
	}
}
