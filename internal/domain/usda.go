package domain

// USDAFood represents a food item from the USDA FoodData Central search API.
// Numeric fields are left untyped because the API is not consistent about
// sending numbers vs strings; the mapper coerces them.
type USDAFood struct {
	FdcID                    int                      `json:"fdcId"`
	Description              string                   `json:"description"`
	DataType                 string                   `json:"dataType"`
	BrandOwner               string                   `json:"brandOwner,omitempty"`
	BrandName                string                   `json:"brandName,omitempty"`
	ServingSize              any                      `json:"servingSize,omitempty"`
	ServingSizeUnit          string                   `json:"servingSizeUnit,omitempty"`
	HouseholdServingFullText string                   `json:"householdServingFullText,omitempty"`
	Nutrients                []USDANutrient           `json:"foodNutrients"`
	LabelNutrients           map[string]USDALabelItem `json:"labelNutrients,omitempty"`
}

// USDANutrient represents a single nutrient from USDA data, per 100 g
type USDANutrient struct {
	NutrientID     int    `json:"nutrientId"`
	NutrientName   string `json:"nutrientName"`
	NutrientNumber string `json:"nutrientNumber,omitempty"`
	UnitName       string `json:"unitName"`
	Value          any    `json:"value"`
}

// USDALabelItem is one entry of the label nutrition block, already per serving
type USDALabelItem struct {
	Value any `json:"value"`
}

// USDASearchResponse represents the response from USDA search API
type USDASearchResponse struct {
	Foods       []USDAFood `json:"foods"`
	TotalHits   int        `json:"totalHits"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
