package nutrient

import (
	"regexp"
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
)

var (
	// Matches a gram quantity such as "28 g", "28g" or "100 grams", but not mg/kg
	gramPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:grams?|gr|g)\b`)

	parentheticalPattern = regexp.MustCompile(`\(([^)]*)\)`)
)

// Scale converts a per-100g set to a serving of the given mass. Any missing
// input field, or a missing mass, produces a nil output field.
func Scale(per100g *domain.MacroSet, grams *float64) *domain.MacroSet {
	out := &domain.MacroSet{}
	if per100g == nil || grams == nil || *grams <= 0 {
		return out
	}
	factor := *grams / 100
	out.Calories = scaleField(per100g.Calories, factor, CaloriePrecision)
	out.Protein = scaleField(per100g.Protein, factor, MacroPrecision)
	out.Carbs = scaleField(per100g.Carbs, factor, MacroPrecision)
	out.Fat = scaleField(per100g.Fat, factor, MacroPrecision)
	return out
}

func scaleField(v *float64, factor float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	return Float(Round(*v*factor, places))
}

// GramsInText returns the first gram quantity stated in free text
func GramsInText(s string) *float64 {
	m := gramPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return Positive(FirstNumber(m[1]))
}

// GramsInParentheses scans parenthetical groups in order and returns the
// first gram quantity found inside one, e.g. "1 slice (28 g)" -> 28.
func GramsInParentheses(s string) *float64 {
	for _, group := range parentheticalPattern.FindAllStringSubmatch(s, -1) {
		if g := GramsInText(group[1]); g != nil {
			return g
		}
	}
	return nil
}

// IsGramUnit reports whether a structured unit field denotes grams
func IsGramUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gm", "grm", "gram", "grams":
		return true
	}
	return false
}

// Per100gFromServing back-computes a per-100g value from a serving value
func Per100gFromServing(v, grams *float64, places int32) *float64 {
	if v == nil || grams == nil || *grams <= 0 {
		return nil
	}
	return Float(Round(*v*100 / *grams, places))
}
