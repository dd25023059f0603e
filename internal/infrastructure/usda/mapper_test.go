package usda

import (
	"testing"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Per100gOnly(t *testing.T) {
	food := domain.USDAFood{
		FdcID:       12345,
		Description: "Milk, whole",
		DataType:    "SR Legacy",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, NutrientName: "Energy", Value: 61.0, UnitName: "KCAL"},
			{NutrientID: NutrientIDProtein, NutrientName: "Protein", Value: 3.15, UnitName: "G"},
			{NutrientID: NutrientIDCarbohydrate, NutrientName: "Carbohydrate, by difference", Value: 4.8, UnitName: "G"},
			{NutrientID: NutrientIDTotalFat, NutrientName: "Total lipid (fat)", Value: 3.25, UnitName: "G"},
		},
	}

	result := Mapper{}.Normalize(food, "milk")

	require.NotNil(t, result)
	assert.Equal(t, "12345", result.ID)
	assert.Equal(t, "Milk, whole", result.Name)
	assert.Nil(t, result.BrandName)
	require.NotNil(t, result.Per100g)
	assert.Equal(t, 61.0, *result.Per100g.Calories)
	assert.Equal(t, 3.25, *result.Per100g.Fat)
	assert.Equal(t, 61.0, *result.CaloriesPer100g)

	// No serving size anywhere: per-serving values stay unknown
	assert.Nil(t, result.ServingGrams)
	assert.Nil(t, result.PerServing)
	assert.Nil(t, result.Calories)
	assert.Nil(t, result.Protein)
	assert.False(t, result.IsOutlier)
}

func TestNormalize_ScalesToGramServing(t *testing.T) {
	food := domain.USDAFood{
		FdcID:           1,
		Description:     "Oats",
		ServingSize:     40.0,
		ServingSizeUnit: "g",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, Value: 380.0, UnitName: "KCAL"},
			{NutrientID: NutrientIDProtein, Value: 13.2, UnitName: "G"},
			{NutrientID: NutrientIDCarbohydrate, Value: 67.7, UnitName: "G"},
			{NutrientID: NutrientIDTotalFat, Value: 6.5, UnitName: "G"},
		},
	}

	result := Mapper{}.Normalize(food, "oats")

	require.NotNil(t, result)
	require.NotNil(t, result.ServingGrams)
	assert.Equal(t, 40.0, *result.ServingGrams)
	assert.Equal(t, 152.0, *result.Calories)
	assert.Equal(t, 5.3, *result.Protein)
	assert.Equal(t, 27.1, *result.Carbs)
	assert.Equal(t, 2.6, *result.Fat)
	assert.Equal(t, result.Calories, result.PerServing.Calories)
	assert.Equal(t, "40 g", *result.ServingLabel)
}

func TestNormalize_HouseholdTextGrams(t *testing.T) {
	food := domain.USDAFood{
		FdcID:                    2,
		Description:              "Almonds",
		ServingSizeUnit:          "ml",
		ServingSize:              30.0,
		HouseholdServingFullText: "1 oz (28 g)",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, Value: 579.0, UnitName: "KCAL"},
		},
	}

	result := Mapper{}.Normalize(food, "almonds")

	require.NotNil(t, result.ServingGrams)
	assert.Equal(t, 28.0, *result.ServingGrams)
	assert.Equal(t, 162.0, *result.Calories)
	assert.Equal(t, "1 oz (28 g)", *result.ServingLabel)
}

func TestNormalize_PrefersLabelNutrients(t *testing.T) {
	food := domain.USDAFood{
		FdcID:           3,
		Description:     "Peanut Butter",
		BrandOwner:      "Acme Foods",
		ServingSize:     32.0,
		ServingSizeUnit: "GRM",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, Value: 588.0, UnitName: "KCAL"},
		},
		LabelNutrients: map[string]domain.USDALabelItem{
			"calories":      {Value: 190.0},
			"protein":       {Value: 7.0},
			"carbohydrates": {Value: "8"},
			"fat":           {Value: 16.0},
		},
	}

	result := Mapper{}.Normalize(food, "peanut butter")

	assert.Equal(t, 190.0, *result.Calories)
	assert.Equal(t, 8.0, *result.Carbs)
	assert.Equal(t, 588.0, *result.CaloriesPer100g)
	require.NotNil(t, result.BrandName)
	assert.Equal(t, "Acme Foods", *result.BrandName)
}

func TestNormalize_BackComputesCaloriesPer100g(t *testing.T) {
	food := domain.USDAFood{
		FdcID:           4,
		Description:     "Butter",
		ServingSize:     14.0,
		ServingSizeUnit: "g",
		LabelNutrients: map[string]domain.USDALabelItem{
			"calories": {Value: 100.0},
		},
	}

	result := Mapper{}.Normalize(food, "butter")

	assert.Nil(t, result.Per100g)
	require.NotNil(t, result.CaloriesPer100g)
	assert.Equal(t, 714.0, *result.CaloriesPer100g)
}

func TestNormalize_NameFallbackForNutrients(t *testing.T) {
	food := domain.USDAFood{
		FdcID:       5,
		Description: "Lentils",
		Nutrients: []domain.USDANutrient{
			{NutrientName: "Energy", UnitName: "kJ", Value: 1470.0},
			{NutrientName: "Energy", UnitName: "KCAL", Value: 352.0},
			{NutrientName: "Fatty acids, total saturated", UnitName: "G", Value: 0.15},
			{NutrientName: "Total lipid (fat)", UnitName: "G", Value: 1.06},
			{NutrientName: "Protein", UnitName: "G", Value: "24.6"},
			{NutrientNumber: "205", UnitName: "G", Value: 63.4},
		},
	}

	result := Mapper{}.Normalize(food, "lentils")

	require.NotNil(t, result.Per100g)
	assert.Equal(t, 352.0, *result.Per100g.Calories)
	assert.Equal(t, 24.6, *result.Per100g.Protein)
	assert.Equal(t, 63.4, *result.Per100g.Carbs)
	assert.Equal(t, 1.06, *result.Per100g.Fat)
}

func TestNormalize_AtwaterEnergy(t *testing.T) {
	food := domain.USDAFood{
		FdcID:       6,
		Description: "Chicken breast, raw",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergyAtwaterGn, Value: 118.0, UnitName: "KCAL"},
			{NutrientID: NutrientIDEnergyAtwaterSp, Value: 114.0, UnitName: "KCAL"},
		},
	}

	result := Mapper{}.Normalize(food, "chicken")

	assert.Equal(t, 114.0, *result.Per100g.Calories)
}

func TestNormalize_RejectsNamelessRecord(t *testing.T) {
	assert.Nil(t, Mapper{}.Normalize(domain.USDAFood{FdcID: 7}, "x"))
}

func TestNormalize_DropsNegativeValues(t *testing.T) {
	food := domain.USDAFood{
		FdcID:       8,
		Description: "Odd record",
		Nutrients: []domain.USDANutrient{
			{NutrientID: NutrientIDEnergy, Value: -5.0},
			{NutrientID: NutrientIDProtein, Value: nil},
		},
	}

	result := Mapper{}.Normalize(food, "odd")

	assert.Nil(t, result.Per100g)
	assert.Nil(t, result.CaloriesPer100g)
}

func TestNormalizeAll(t *testing.T) {
	foods := []domain.USDAFood{
		{FdcID: 1, Description: "Rice, white"},
		{FdcID: 2},
		{FdcID: 3, Description: "Rice, brown", Nutrients: []domain.USDANutrient{{NutrientID: NutrientIDEnergy, Value: 111.0}}},
	}

	results := domain.NormalizeAll[domain.USDAFood](Mapper{}, foods, "rice")

	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "3", results[1].ID)
	assert.Equal(t, 111.0, *results[1].Per100g.Calories)
}
