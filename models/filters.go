package models

import "github.com/shopspring/decimal"

// PartFilterMetadata feeds the catalog sidebar.
type PartFilterMetadata struct {
	Categories   []FacetCount      `json:"categories"`
	Brands       []FacetCount      `json:"brands"`
	Availability *AvailabilityData `json:"availability"`
	PriceRange   *PriceRangeData   `json:"priceRange"`
}

type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
	RareFind   int `json:"rareFind"`
}

type PriceRangeData struct {
	Min decimal.Decimal `json:"min" swaggertype:"string"`
	Max decimal.Decimal `json:"max" swaggertype:"string"`
}

// PartFilter is the parsed storefront catalog query. Nil fields are unset.
type PartFilter struct {
	Search       *string
	Category     *string
	Subcategory  *string
	Brands       []string
	Availability *string
	Make         *string
	Model        *string
	Year         *int
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}
