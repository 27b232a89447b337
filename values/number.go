package values

import (
	"math"
	"strconv"
)

// NumberValue wraps a float64 scalar
type NumberValue struct {
	d float64
}

// Number creates a number value
func Number(d float64) NumberValue {
	return NumberValue{d: d}
}

// Float returns the wrapped scalar
func (n NumberValue) Float() float64 { return n.d }

func (NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) sealed()    {}

// String renders the shortest decimal that parses back to the same float64,
// switching to exponent form below 1e-4 and from 1e21 up.
// Non-finite numbers render as NaN, +Inf or -Inf.
func (n NumberValue) String() string {
	return formatFloat(n.d)
}

// Equal compares numerically. NaN equals NaN so that Equal stays reflexive.
func (n NumberValue) Equal(other Value) bool {
	o, ok := deref(other).(NumberValue)
	return ok && compareFloats(n.d, o.d) == 0
}

func (n NumberValue) Hash() uint64 {
	h := newHasher(KindNumber)
	h.writeFloat(n.d)
	return h.sum()
}

func formatFloat(d float64) string {
	if abs := math.Abs(d); abs == 0 || (abs >= 1e-4 && abs < 1e21) {
		return strconv.FormatFloat(d, 'f', -1, 64)
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// compareFloats orders NaN before every other number and treats -0 as 0
func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// floatBits normalises -0 and NaN payloads so equal numbers share their bits
func floatBits(d float64) uint64 {
	switch {
	case d == 0:
		return 0
	case math.IsNaN(d):
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(d)
}
