// Package nutrient holds the provider-independent pieces of food
// normalization: numeric coercion, fixed-precision rounding and serving
// resolution.
package nutrient

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// Coerce extracts a finite number from a loosely typed provider value.
// Strings yield their first embedded decimal ("3 g" -> 3, "120 kcal" -> 120).
// Anything that does not produce a finite number returns nil.
func Coerce(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return finite(float64(x))
	case int64:
		return finite(float64(x))
	case int32:
		return finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return FirstNumber(x.String())
		}
		return finite(f)
	case string:
		return FirstNumber(x)
	case bool:
		if x {
			return finite(1)
		}
		return finite(0)
	case *float64:
		if x == nil {
			return nil
		}
		return finite(*x)
	default:
		return nil
	}
}

// FirstNumber parses the first signed decimal found anywhere in s
func FirstNumber(s string) *float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

// NonNegative drops negative values, which no macro or mass can carry
func NonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}

// Positive drops zero and negative values
func Positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
