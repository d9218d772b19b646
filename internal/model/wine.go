package model

import "time"

// Wine represents one wine inventory line item. Optional numeric fields
// are pointers so that absent and zero stay distinct; nil is stored as
// NULL and omitted from JSON.
type Wine struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Producer          string    `json:"producer,omitempty"`
	Vintage           *int      `json:"vintage,omitempty"`
	WineType          string    `json:"wine_type"`
	Country           string    `json:"country,omitempty"`
	Region            string    `json:"region,omitempty"`
	GrapeVariety      string    `json:"grape_variety,omitempty"`
	Quantity          int       `json:"quantity"`
	Location          string    `json:"location,omitempty"`
	SupplierName      string    `json:"supplier_name,omitempty"`
	SupplierURL       string    `json:"supplier_url,omitempty"`
	SupplierSKU       string    `json:"supplier_sku,omitempty"`
	PurchasePrice     *float64  `json:"purchase_price,omitempty"`
	PurchaseDate      string    `json:"purchase_date,omitempty"`
	EstimatedValue    *float64  `json:"estimated_value,omitempty"`
	AlcoholPercentage *float64  `json:"alcohol_percentage,omitempty"`
	BottleSize        string    `json:"bottle_size"`
	Notes             string    `json:"notes,omitempty"`
	Rating            *int      `json:"rating,omitempty"`
	LabelMime         string    `json:"label_mime,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Wine types.
const (
	WineTypeRed       = "red"
	WineTypeWhite     = "white"
	WineTypeRose      = "rose"
	WineTypeSparkling = "sparkling"
	WineTypeDessert   = "dessert"
	WineTypeOther     = "other"
)

// WineTypes lists all valid wine types in display order.
var WineTypes = []string{
	WineTypeRed,
	WineTypeWhite,
	WineTypeRose,
	WineTypeSparkling,
	WineTypeDessert,
	WineTypeOther,
}

// ValidWineType checks if t is a known wine type.
func ValidWineType(t string) bool {
	for _, wt := range WineTypes {
		if t == wt {
			return true
		}
	}
	return false
}

// DefaultBottleSize is used when the form leaves the size unset.
const DefaultBottleSize = "750ml"

// BottleSizes lists the selectable bottle sizes.
var BottleSizes = []string{"375ml", "750ml", "1500ml", "3000ml"}

// ValidBottleSize checks if s is a known bottle size.
func ValidBottleSize(s string) bool {
	for _, bs := range BottleSizes {
		if s == bs {
			return true
		}
	}
	return false
}

// ValidRating checks if r is within the 1-5 scale. A nil rating is valid
// (not rated).
func ValidRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 5)
}
