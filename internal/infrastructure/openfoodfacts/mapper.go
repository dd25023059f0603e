package openfoodfacts

import (
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/nutrient"
)

// UnknownItemName is used when a product has no name and the query is blank
const UnknownItemName = "Unknown item"

// Nutriment keys
const (
	keyEnergyKcal100g = "energy-kcal_100g"
	keyEnergyKJ100g   = "energy-kj_100g"
	keyProteins100g   = "proteins_100g"
	keyCarbs100g      = "carbohydrates_100g"
	keyFat100g        = "fat_100g"
	keyEnergyKcalServ = "energy-kcal_serving"
	keyProteinsServ   = "proteins_serving"
	keyCarbsServing   = "carbohydrates_serving"
	keyFatServing     = "fat_serving"
)

// Mapper normalizes Open Food Facts products
type Mapper struct{}

var _ domain.Normalizer[domain.OFFProduct] = Mapper{}

// Normalize converts a product into a FoodResult. Products are never
// rejected; a missing name falls back to the query.
func (Mapper) Normalize(p domain.OFFProduct, query string) *domain.FoodResult {
	per100g := per100gMacros(p.Nutriments)
	grams := servingGrams(p)

	perServing := servingMacros(p.Nutriments)
	if perServing.IsEmpty() {
		perServing = nutrient.Scale(&per100g, grams)
	}

	result := &domain.FoodResult{
		ID:              productID(p),
		Provider:        domain.ProviderOpenFoodFacts,
		Name:            productName(p, query),
		BrandName:       firstBrand(p.Brands),
		ServingGrams:    grams,
		ServingLabel:    nonEmpty(p.ServingSize),
		CaloriesPer100g: per100g.Calories,
	}
	if !per100g.IsEmpty() {
		result.Per100g = &per100g
	}
	result.SetPerServing(perServing)

	return result
}

func per100gMacros(n map[string]any) domain.MacroSet {
	set := domain.MacroSet{
		Calories: lookup(n, keyEnergyKcal100g),
		Protein:  lookup(n, keyProteins100g),
		Carbs:    lookup(n, keyCarbs100g),
		Fat:      lookup(n, keyFat100g),
	}
	if set.Calories == nil {
		if kj := lookup(n, keyEnergyKJ100g); kj != nil {
			set.Calories = nutrient.Float(nutrient.KilojoulesToKcal(*kj))
		}
	}
	return set
}

func servingMacros(n map[string]any) *domain.MacroSet {
	return &domain.MacroSet{
		Calories: lookup(n, keyEnergyKcalServ),
		Protein:  lookup(n, keyProteinsServ),
		Carbs:    lookup(n, keyCarbsServing),
		Fat:      lookup(n, keyFatServing),
	}
}

func lookup(n map[string]any, key string) *float64 {
	v, ok := n[key]
	if !ok {
		return nil
	}
	return nutrient.NonNegative(nutrient.Coerce(v))
}

// servingGrams discovers the serving mass, first success wins:
// a gram amount in parentheses in the serving text, a gram amount anywhere
// in it, the product quantity, then serving_quantity when its unit is grams.
func servingGrams(p domain.OFFProduct) *float64 {
	if g := nutrient.GramsInParentheses(p.ServingSize); g != nil {
		return g
	}
	if g := nutrient.GramsInText(p.ServingSize); g != nil {
		return g
	}
	if g := nutrient.Positive(nutrient.Coerce(p.ProductQuantity)); g != nil {
		return g
	}
	if nutrient.IsGramUnit(p.ServingQuantityUnit) {
		return nutrient.Positive(nutrient.Coerce(p.ServingQuantity))
	}
	return nil
}

func productName(p domain.OFFProduct, query string) string {
	for _, name := range []string{p.ProductName, p.GenericName, query} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return UnknownItemName
}

func productID(p domain.OFFProduct) string {
	if p.Code != "" {
		return p.Code
	}
	return p.ID
}

func firstBrand(brands string) *string {
	first, _, _ := strings.Cut(brands, ",")
	return nonEmpty(first)
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
