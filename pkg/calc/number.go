package calc

import (
	"math"
	"strconv"
)

// Number is the result of an evaluation: a finite float64 that remembers
// whether it is mathematically integral.
type Number struct {
	value    float64
	integral bool
}

// Int returns an integer-typed Number.
func Int(v int64) Number {
	return Number{value: float64(v), integral: true}
}

// Float returns a Number for v, integer-typed when v has no fractional part.
func Float(v float64) Number {
	return Number{value: v, integral: isIntegral(v)}
}

func isIntegral(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// IsInteger reports whether the number is integer-typed.
func (n Number) IsInteger() bool {
	return n.integral
}

// Float64 returns the numeric value.
func (n Number) Float64() float64 {
	return n.value
}

// String renders integers without a decimal point and other values in
// their shortest decimal form ("191", "2.5", "-0.125").
func (n Number) String() string {
	if n.integral {
		if n.value == 0 {
			// Avoid "-0".
			return "0"
		}
		return strconv.FormatFloat(n.value, 'f', 0, 64)
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalJSON encodes the number as a bare JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}
