// Package numeric holds the arithmetic primitives shared by every
// aggregation in the ledger engine. The engine recognizes exactly one
// failure mode, malformed numeric input, and handles it by coercing to
// zero; nothing in this package ever returns an error or produces
// NaN/Inf.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
)

// epsilon matches IEEE 754 double machine epsilon, added before rounding to
// suppress floating-point residue (10.000000000000002 -> 10.00).
const epsilon = 2.220446049250313e-16

// RoundToTwo rounds a monetary value to two decimal places, half away from
// zero. Applied where a derived total is stored, not on intermediate terms.
func RoundToTwo(v float64) float64 {
	return math.Round((v+epsilon)*100) / 100
}

// Coerce converts an arbitrarily-typed field to a float64, degrading to zero
// on nil, non-numeric, or unparseable input. It is the single coercion
// boundary for loosely-typed documents (legacy exports, spreadsheet cells).
func Coerce(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return sanitize(x)
	case float32:
		return sanitize(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return sanitize(f)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return sanitize(f)
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// SafeDiv divides num by den, substituting zero when the denominator is not
// strictly positive.
func SafeDiv(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}

// Ratio returns num/den and true only when both operands are strictly
// positive; otherwise the ratio is reported as not applicable.
func Ratio(num, den float64) (float64, bool) {
	if num > 0 && den > 0 {
		return num / den, true
	}
	return 0, false
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
