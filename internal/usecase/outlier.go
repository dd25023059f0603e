package usecase

import (
	"fmt"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/nutrient"
)

// Density limits for a plain-ingredient answer to a simple query
const (
	smallServingGrams         = 80.0
	smallServingMaxCalories   = 250.0
	denseMaxCaloriesPer100g   = 350.0
	unknownServingMaxCalories = 400.0
)

// DetectOutliers flags results whose calorie density suggests a prepared
// dish rather than the ingredient a simple query names. Results for other
// queries are always cleared.
func DetectOutliers(query string, results []domain.FoodResult) {
	simple := IsSimpleQuery(query)
	for i := range results {
		results[i].IsOutlier = false
		results[i].OutlierReason = nil
		if !simple {
			continue
		}
		if reason, ok := outlierReason(results[i]); ok {
			results[i].IsOutlier = true
			results[i].OutlierReason = &reason
		}
	}
}

func outlierReason(r domain.FoodResult) (string, bool) {
	calories := r.Calories
	grams := r.ServingGrams

	if calories != nil && grams != nil && *calories > smallServingMaxCalories && *grams <= smallServingGrams {
		return fmt.Sprintf("%.0f kcal in a %g g serving is too dense for a plain ingredient", *calories, *grams), true
	}

	density := r.CaloriesPer100g
	if density == nil {
		density = nutrient.Per100gFromServing(calories, grams, nutrient.CaloriePrecision)
	}
	if density != nil && *density > denseMaxCaloriesPer100g {
		return fmt.Sprintf("%.0f kcal per 100 g is too dense for a plain ingredient", *density), true
	}

	if grams == nil && calories != nil && *calories > unknownServingMaxCalories {
		return fmt.Sprintf("%.0f kcal per serving with no stated serving weight", *calories), true
	}

	return "", false
}
