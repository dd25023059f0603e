package usda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/nutrient"
)

// USDA Nutrient IDs for key macronutrients
const (
	NutrientIDEnergy          = 1008 // Energy (kcal)
	NutrientIDEnergyAtwaterSp = 2048 // Energy, Atwater specific factors (kcal)
	NutrientIDEnergyAtwaterGn = 2047 // Energy, Atwater general factors (kcal)
	NutrientIDProtein         = 1003 // Protein (g)
	NutrientIDCarbohydrate    = 1005 // Carbohydrate, by difference (g)
	NutrientIDTotalFat        = 1004 // Total lipid (fat) (g)
)

// Legacy SR nutrient numbers, present on some records without an ID
const (
	nutrientNumberEnergy       = "208"
	nutrientNumberProtein      = "203"
	nutrientNumberCarbohydrate = "205"
	nutrientNumberTotalFat     = "204"
)

// Mapper normalizes FoodData Central records
type Mapper struct{}

var _ domain.Normalizer[domain.USDAFood] = Mapper{}

// Normalize converts a USDA food into a FoodResult. Records without a
// description are rejected.
func (Mapper) Normalize(food domain.USDAFood, _ string) *domain.FoodResult {
	name := strings.TrimSpace(food.Description)
	if name == "" {
		return nil
	}

	per100g := extractPer100g(food.Nutrients)
	grams := servingGrams(food)

	perServing := labelMacros(food.LabelNutrients)
	if perServing.IsEmpty() {
		perServing = nutrient.Scale(&per100g, grams)
	}

	result := &domain.FoodResult{
		ID:           strconv.Itoa(food.FdcID),
		Provider:     domain.ProviderUSDA,
		Name:         name,
		BrandName:    brandName(food),
		ServingGrams: grams,
		ServingLabel: servingLabel(food),
	}
	if !per100g.IsEmpty() {
		result.Per100g = &per100g
	}
	result.SetPerServing(perServing)

	result.CaloriesPer100g = per100g.Calories
	if result.CaloriesPer100g == nil {
		result.CaloriesPer100g = nutrient.Per100gFromServing(result.Calories, grams, nutrient.CaloriePrecision)
	}

	return result
}

// extractPer100g reads the four macros from the nutrient list. Codes are
// tried first; names are a fallback for records that omit or reuse codes.
func extractPer100g(nutrients []domain.USDANutrient) domain.MacroSet {
	set := domain.MacroSet{
		Calories: findByCode(nutrients, nutrientNumberEnergy, NutrientIDEnergy, NutrientIDEnergyAtwaterSp, NutrientIDEnergyAtwaterGn),
		Protein:  findByCode(nutrients, nutrientNumberProtein, NutrientIDProtein),
		Carbs:    findByCode(nutrients, nutrientNumberCarbohydrate, NutrientIDCarbohydrate),
		Fat:      findByCode(nutrients, nutrientNumberTotalFat, NutrientIDTotalFat),
	}

	if set.Calories == nil {
		set.Calories = findByName(nutrients, func(name, unit string) bool {
			return strings.Contains(name, "energy") && unit == "kcal"
		})
	}
	if set.Protein == nil {
		set.Protein = findByName(nutrients, func(name, _ string) bool {
			return strings.Contains(name, "protein")
		})
	}
	if set.Carbs == nil {
		set.Carbs = findByName(nutrients, func(name, _ string) bool {
			return strings.Contains(name, "carbohydrate")
		})
	}
	if set.Fat == nil {
		set.Fat = findByName(nutrients, func(name, _ string) bool {
			return strings.Contains(name, "total lipid") || strings.Contains(name, "total fat")
		})
	}

	return set
}

// findByCode returns the value of the first nutrient matching ids in
// priority order, then the legacy nutrient number
func findByCode(nutrients []domain.USDANutrient, number string, ids ...int) *float64 {
	for _, id := range ids {
		for _, n := range nutrients {
			if n.NutrientID == id {
				if v := nutrient.NonNegative(nutrient.Coerce(n.Value)); v != nil {
					return v
				}
			}
		}
	}
	for _, n := range nutrients {
		if n.NutrientNumber == number {
			if v := nutrient.NonNegative(nutrient.Coerce(n.Value)); v != nil {
				return v
			}
		}
	}
	return nil
}

func findByName(nutrients []domain.USDANutrient, match func(name, unit string) bool) *float64 {
	for _, n := range nutrients {
		if match(strings.ToLower(n.NutrientName), strings.ToLower(n.UnitName)) {
			if v := nutrient.NonNegative(nutrient.Coerce(n.Value)); v != nil {
				return v
			}
		}
	}
	return nil
}

// labelMacros reads the label nutrition block, which FDC has already scaled
// to one serving
func labelMacros(label map[string]domain.USDALabelItem) *domain.MacroSet {
	set := &domain.MacroSet{}
	if len(label) == 0 {
		return set
	}
	pick := func(key string) *float64 {
		item, ok := label[key]
		if !ok {
			return nil
		}
		return nutrient.NonNegative(nutrient.Coerce(item.Value))
	}
	set.Calories = pick("calories")
	set.Protein = pick("protein")
	set.Carbs = pick("carbohydrates")
	set.Fat = pick("fat")
	return set
}

// servingGrams discovers the serving mass: the structured serving size when
// it is in grams, else a gram amount in the household serving text
func servingGrams(food domain.USDAFood) *float64 {
	if nutrient.IsGramUnit(food.ServingSizeUnit) {
		if g := nutrient.Positive(nutrient.Coerce(food.ServingSize)); g != nil {
			return g
		}
	}
	return nutrient.GramsInText(food.HouseholdServingFullText)
}

func brandName(food domain.USDAFood) *string {
	for _, b := range []string{food.BrandName, food.BrandOwner} {
		if b = strings.TrimSpace(b); b != "" {
			return &b
		}
	}
	return nil
}

func servingLabel(food domain.USDAFood) *string {
	if text := strings.TrimSpace(food.HouseholdServingFullText); text != "" {
		return &text
	}
	size := nutrient.Positive(nutrient.Coerce(food.ServingSize))
	if size == nil {
		return nil
	}
	label := strings.TrimSpace(fmt.Sprintf("%g %s", *size, strings.ToLower(food.ServingSizeUnit)))
	return &label
}
