// Package core holds the billing domain: money and month handling, the
// pricing resolver, and the bill form synchronization rules. Everything in
// this package is pure; I/O lives behind the backend ports.
package core

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Money is an amount in Vietnamese đồng. The đồng has no circulating
// subunit, so whole-đồng int64 arithmetic is exact.
type Money struct {
	Dong int64
}

// ParseAmount converts a numeric form value to whole đồng. Absent or
// malformed input coerces to zero, matching Number(x) || 0 semantics on
// the submission path; any fractional part is dropped.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return 0
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// Format renders the amount with thousands separators and the ₫ sign,
// e.g. ₫2,780,000.
func (m Money) Format() string {
	neg := m.Dong < 0
	v := m.Dong
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-₫" + b.String()
	}
	return "₫" + b.String()
}

func (m Money) Add(o Money) Money {
	return Money{Dong: m.Dong + o.Dong}
}

// MulUnits multiplies a unit price by a consumed quantity.
func (m Money) MulUnits(units int64) Money {
	return Money{Dong: m.Dong * units}
}

// Month is a billing period at year-month granularity, normalized to the
// first day of the month in UTC.
type Month struct {
	time.Time
}

// NewMonth builds a Month from a year and a 1-12 month number.
func NewMonth(year, month int) Month {
	return Month{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)}
}

// ParseMonth accepts the canonical YYYY-MM form as well as full dates and
// datetime strings, since month input widgets differ in what they emit.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if len(s) > 7 {
		s = s[:7]
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return Month{Time: t}, nil
}

// String renders the canonical YYYY-MM representation the backend expects.
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return m.Format("2006-01")
}

func (m Month) Before(o Month) bool {
	return m.Time.Before(o.Time)
}

// CurrentMonth returns the month containing now, the default for a new bill.
func CurrentMonth() Month {
	now := time.Now()
	return NewMonth(now.Year(), int(now.Month()))
}
