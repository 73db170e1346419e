package roi

import (
	"fmt"
	"time"
)

// =============================================================================
// MONTH KEY - Calendar month arithmetic ("YYYY-MM")
// =============================================================================

// MonthKey identifies one calendar month. Portfolio entries pin their
// deployment windows to these keys; the simulation itself only ever sees
// 1-based month indexes.
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) IsZero() bool { return k.Year == 0 && k.Month == 0 }

// ordinal is a total order over calendar months.
func (k MonthKey) ordinal() int { return k.Year*12 + int(k.Month) - 1 }

func (k MonthKey) Before(other MonthKey) bool { return k.ordinal() < other.ordinal() }
func (k MonthKey) After(other MonthKey) bool  { return k.ordinal() > other.ordinal() }
func (k MonthKey) Equal(other MonthKey) bool  { return k.ordinal() == other.ordinal() }

// AddMonths returns the key n months later (or earlier for negative n).
func (k MonthKey) AddMonths(n int) MonthKey {
	o := k.ordinal() + n
	return MonthKey{Year: o / 12, Month: time.Month(o%12 + 1)}
}

// MonthsBetween is the inclusive month count from 'from' to 'to':
// MonthsBetween(2025-01, 2025-03) == 3. Zero when 'to' precedes 'from'.
func MonthsBetween(from, to MonthKey) int {
	n := to.ordinal() - from.ordinal() + 1
	if n < 0 {
		return 0
	}
	return n
}

// EnumerateRange lists every month from 'from' through 'to' inclusive.
func EnumerateRange(from, to MonthKey) []MonthKey {
	n := MonthsBetween(from, to)
	keys := make([]MonthKey, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, from.AddMonths(i))
	}
	return keys
}
