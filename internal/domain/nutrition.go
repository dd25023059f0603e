package domain

// Provider identifies the upstream database a result came from
type Provider string

const (
	ProviderUSDA          Provider = "usda"
	ProviderOpenFoodFacts Provider = "openfoodfacts"
)

// Mode selects which provider a search is dispatched to
type Mode string

const (
	ModeCommon  Mode = "common"  // whole foods from the composition database
	ModeBranded Mode = "branded" // packaged products from the branded database
)

// ParseMode maps a raw query value to a Mode. Anything other than "branded"
// falls back to ModeCommon.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeBranded {
		return ModeBranded
	}
	return ModeCommon
}

// MacroSet is the canonical macronutrient record. A nil field means the
// provider supplied no usable value; it is never replaced by zero.
type MacroSet struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

// IsEmpty reports whether no field carries a value
func (m MacroSet) IsEmpty() bool {
	return m.Calories == nil && m.Protein == nil && m.Carbs == nil && m.Fat == nil
}

// FoodResult is the normalized search result returned to callers
type FoodResult struct {
	ID           string   `json:"id"`
	Provider     Provider `json:"provider"`
	Name         string   `json:"name"`
	BrandName    *string  `json:"brandName"`
	ServingGrams *float64 `json:"servingGrams"`
	ServingLabel *string  `json:"servingLabel"`

	// Per-serving values mirrored from PerServing
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`

	CaloriesPer100g *float64  `json:"caloriesPer100g"`
	PerServing      *MacroSet `json:"perServing"`
	Per100g         *MacroSet `json:"per100g"`

	IsOutlier     bool    `json:"isOutlier"`
	OutlierReason *string `json:"outlierReason"`
}

// SetPerServing stores the per-serving set and mirrors it onto the flat fields.
// An empty set is stored as nil.
func (r *FoodResult) SetPerServing(m *MacroSet) {
	if m == nil || m.IsEmpty() {
		r.PerServing = nil
		r.Calories, r.Protein, r.Carbs, r.Fat = nil, nil, nil, nil
		return
	}
	r.PerServing = m
	r.Calories = m.Calories
	r.Protein = m.Protein
	r.Carbs = m.Carbs
	r.Fat = m.Fat
}

// SearchRequest is a validated food search
type SearchRequest struct {
	Query string
	Mode  Mode
	Limit int
}

// SearchResponse is the success body of a food search
type SearchResponse struct {
	OK      bool         `json:"ok"`
	Query   string       `json:"q"`
	Mode    Mode         `json:"mode"`
	Results []FoodResult `json:"results"`
}
