package nutrient

import "github.com/shopspring/decimal"

// Display precisions, in decimal places
const (
	CaloriePrecision int32 = 0
	MacroPrecision   int32 = 1
	EnergyPrecision  int32 = 2
)

// KilojoulesPerKilocalorie converts provider energy values reported in kJ
const KilojoulesPerKilocalorie = 4.184

// Round rounds v half away from zero to the given number of decimal places
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// KilojoulesToKcal converts an energy value and rounds it to EnergyPrecision
func KilojoulesToKcal(kj float64) float64 {
	kcal := decimal.NewFromFloat(kj).Div(decimal.NewFromFloat(KilojoulesPerKilocalorie))
	f, _ := kcal.Round(EnergyPrecision).Float64()
	return f
}
