package domain

// OFFProduct is the subset of an Open Food Facts product record the branded
// adapter reads. Quantities and nutriments arrive as numbers or strings.
type OFFProduct struct {
	Code                string         `json:"code"`
	ID                  string         `json:"_id"`
	ProductName         string         `json:"product_name"`
	GenericName         string         `json:"generic_name"`
	Brands              string         `json:"brands"`
	ServingSize         string         `json:"serving_size"`
	ServingQuantity     any            `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	ProductQuantity     any            `json:"product_quantity"`
	Nutriments          map[string]any `json:"nutriments"`
}

// OFFSearchResponse represents the response from the Open Food Facts search API
type OFFSearchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Products []OFFProduct `json:"products"`
}
