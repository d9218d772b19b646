package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/eivindmo/vinlager/internal/model"
)

// parseWineForm maps the add-wine form fields to a wine record.
// Empty optional numeric fields become nil; a non-numeric value in a
// numeric field is rejected with the field named, rather than passed
// through to the database.
func parseWineForm(r *http.Request) (*model.Wine, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return nil, fmt.Errorf("navn er påkrevd")
	}

	wineType := r.FormValue("wine_type")
	if wineType == "" {
		wineType = model.WineTypeRed
	}
	if !model.ValidWineType(wineType) {
		return nil, fmt.Errorf("ugyldig vintype")
	}

	bottleSize := r.FormValue("bottle_size")
	if bottleSize == "" {
		bottleSize = model.DefaultBottleSize
	}
	if !model.ValidBottleSize(bottleSize) {
		return nil, fmt.Errorf("ugyldig flaskestørrelse")
	}

	quantity := 1
	if v := strings.TrimSpace(r.FormValue("quantity")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("antall flasker må være et tall")
		}
		quantity = n
	}
	if quantity < 1 {
		return nil, fmt.Errorf("antall flasker må være minst 1")
	}

	vintage, err := optionalInt(r, "vintage", "årgang")
	if err != nil {
		return nil, err
	}
	rating, err := optionalInt(r, "rating", "rating")
	if err != nil {
		return nil, err
	}
	if !model.ValidRating(rating) {
		return nil, fmt.Errorf("rating må være mellom 1 og 5")
	}

	purchasePrice, err := optionalFloat(r, "purchase_price", "kjøpspris")
	if err != nil {
		return nil, err
	}
	estimatedValue, err := optionalFloat(r, "estimated_value", "estimert verdi")
	if err != nil {
		return nil, err
	}
	alcohol, err := optionalFloat(r, "alcohol_percentage", "alkoholprosent")
	if err != nil {
		return nil, err
	}

	return &model.Wine{
		Name:              name,
		Producer:          strings.TrimSpace(r.FormValue("producer")),
		Vintage:           vintage,
		WineType:          wineType,
		Country:           strings.TrimSpace(r.FormValue("country")),
		Region:            strings.TrimSpace(r.FormValue("region")),
		GrapeVariety:      strings.TrimSpace(r.FormValue("grape_variety")),
		Quantity:          quantity,
		Location:          strings.TrimSpace(r.FormValue("location")),
		SupplierName:      strings.TrimSpace(r.FormValue("supplier_name")),
		SupplierURL:       strings.TrimSpace(r.FormValue("supplier_url")),
		SupplierSKU:       strings.TrimSpace(r.FormValue("supplier_sku")),
		PurchasePrice:     purchasePrice,
		PurchaseDate:      strings.TrimSpace(r.FormValue("purchase_date")),
		EstimatedValue:    estimatedValue,
		AlcoholPercentage: alcohol,
		BottleSize:        bottleSize,
		Notes:             strings.TrimSpace(r.FormValue("notes")),
		Rating:            rating,
	}, nil
}

// optionalInt parses an optional integer form field. Empty means absent.
func optionalInt(r *http.Request, field, label string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s må være et tall", label)
	}
	return &n, nil
}

// optionalFloat parses an optional decimal form field. Empty means absent.
func optionalFloat(r *http.Request, field, label string) (*float64, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil, nil
	}
	// Accept both decimal comma and decimal point.
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s må være et tall", label)
	}
	return &f, nil
}
