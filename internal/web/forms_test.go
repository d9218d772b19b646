package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/eivindmo/vinlager/internal/model"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/wines", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseWineFormFull(t *testing.T) {
	wine, err := parseWineForm(formRequest(t, url.Values{
		"name":               {"Château Margaux"},
		"producer":           {"Château Margaux"},
		"vintage":            {"2015"},
		"wine_type":          {"red"},
		"country":            {"Frankrike"},
		"region":             {"Bordeaux"},
		"grape_variety":      {"Cabernet Sauvignon"},
		"quantity":           {"2"},
		"location":           {"Kjellerhylle 3"},
		"purchase_price":     {"4500"},
		"purchase_date":      {"2020-06-15"},
		"alcohol_percentage": {"13.5"},
		"bottle_size":        {"750ml"},
		"rating":             {"5"},
	}))
	if err != nil {
		t.Fatalf("parseWineForm: %v", err)
	}

	if wine.Name != "Château Margaux" {
		t.Errorf("expected name 'Château Margaux', got %q", wine.Name)
	}
	if wine.Vintage == nil || *wine.Vintage != 2015 {
		t.Errorf("expected vintage 2015, got %v", wine.Vintage)
	}
	if wine.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", wine.Quantity)
	}
	if wine.AlcoholPercentage == nil || *wine.AlcoholPercentage != 13.5 {
		t.Errorf("expected alcohol 13.5, got %v", wine.AlcoholPercentage)
	}
	if wine.Rating == nil || *wine.Rating != 5 {
		t.Errorf("expected rating 5, got %v", wine.Rating)
	}
}

func TestParseWineFormDefaults(t *testing.T) {
	wine, err := parseWineForm(formRequest(t, url.Values{
		"name": {"Enkel Vin"},
	}))
	if err != nil {
		t.Fatalf("parseWineForm: %v", err)
	}

	if wine.WineType != model.WineTypeRed {
		t.Errorf("expected default type 'red', got %q", wine.WineType)
	}
	if wine.Quantity != 1 {
		t.Errorf("expected default quantity 1, got %d", wine.Quantity)
	}
	if wine.BottleSize != model.DefaultBottleSize {
		t.Errorf("expected default bottle size %q, got %q", model.DefaultBottleSize, wine.BottleSize)
	}
	if wine.Vintage != nil || wine.PurchasePrice != nil || wine.Rating != nil {
		t.Error("expected empty optional fields to be nil")
	}
}

func TestParseWineFormDecimalComma(t *testing.T) {
	wine, err := parseWineForm(formRequest(t, url.Values{
		"name":               {"Vin"},
		"alcohol_percentage": {"13,5"},
	}))
	if err != nil {
		t.Fatalf("parseWineForm: %v", err)
	}
	if wine.AlcoholPercentage == nil || *wine.AlcoholPercentage != 13.5 {
		t.Errorf("expected alcohol 13.5 from '13,5', got %v", wine.AlcoholPercentage)
	}
}

func TestParseWineFormRejections(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing name", url.Values{}},
		{"blank name", url.Values{"name": {"   "}}},
		{"invalid wine type", url.Values{"name": {"Vin"}, "wine_type": {"orange"}}},
		{"invalid bottle size", url.Values{"name": {"Vin"}, "bottle_size": {"1000ml"}}},
		{"non-numeric quantity", url.Values{"name": {"Vin"}, "quantity": {"mange"}}},
		{"zero quantity", url.Values{"name": {"Vin"}, "quantity": {"0"}}},
		{"negative quantity", url.Values{"name": {"Vin"}, "quantity": {"-1"}}},
		{"non-numeric vintage", url.Values{"name": {"Vin"}, "vintage": {"årgang"}}},
		{"non-numeric price", url.Values{"name": {"Vin"}, "purchase_price": {"dyr"}}},
		{"rating too low", url.Values{"name": {"Vin"}, "rating": {"0"}}},
		{"rating too high", url.Values{"name": {"Vin"}, "rating": {"6"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseWineForm(formRequest(t, tt.values))
			if err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
