package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/eivindmo/vinlager/internal/imaging"
	"github.com/eivindmo/vinlager/internal/model"
	"github.com/eivindmo/vinlager/internal/store"
)

var (
	errName       = errors.New("name required")
	errWineType   = errors.New("invalid wine type")
	errQuantity   = errors.New("quantity must be a positive integer")
	errBottleSize = errors.New("invalid bottle size")
	errRating     = errors.New("rating must be between 1 and 5")
)

// WinesHandler handles wine CRUD endpoints.
type WinesHandler struct {
	DB *sql.DB
}

type createWineRequest struct {
	Name              string   `json:"name"`
	Producer          string   `json:"producer"`
	Vintage           *int     `json:"vintage"`
	WineType          string   `json:"wine_type"`
	Country           string   `json:"country"`
	Region            string   `json:"region"`
	GrapeVariety      string   `json:"grape_variety"`
	Quantity          *int     `json:"quantity"`
	Location          string   `json:"location"`
	SupplierName      string   `json:"supplier_name"`
	SupplierURL       string   `json:"supplier_url"`
	SupplierSKU       string   `json:"supplier_sku"`
	PurchasePrice     *float64 `json:"purchase_price"`
	PurchaseDate      string   `json:"purchase_date"`
	EstimatedValue    *float64 `json:"estimated_value"`
	AlcoholPercentage *float64 `json:"alcohol_percentage"`
	BottleSize        string   `json:"bottle_size"`
	Notes             string   `json:"notes"`
	Rating            *int     `json:"rating"`
}

// List handles GET /api/wines.
func (h *WinesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	wineType := r.URL.Query().Get("type")
	if wineType != "" && !model.ValidWineType(wineType) {
		jsonError(w, http.StatusBadRequest, "invalid wine type")
		return
	}

	wines, err := store.ListWines(r.Context(), h.DB, claims.UserID, wineType)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list wines")
		return
	}
	if wines == nil {
		wines = []model.Wine{}
	}
	jsonResponse(w, http.StatusOK, wines)
}

// Create handles POST /api/wines.
func (h *WinesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createWineRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wine, err := wineFromRequest(&req)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := store.CreateWine(r.Context(), h.DB, claims.UserID, wine)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create wine")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/wines/{id}.
func (h *WinesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid wine id")
		return
	}

	wine, err := store.GetWine(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get wine")
		return
	}
	if wine == nil {
		jsonError(w, http.StatusNotFound, "wine not found")
		return
	}

	jsonResponse(w, http.StatusOK, wine)
}

// Delete handles DELETE /api/wines/{id}.
func (h *WinesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid wine id")
		return
	}

	deleted, err := store.DeleteWine(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete wine")
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, "wine not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "wine deleted"})
}

// UploadLabel handles PUT /api/wines/{id}/image.
func (h *WinesHandler) UploadLabel(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid wine id")
		return
	}

	wine, err := store.GetWine(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get wine")
		return
	}
	if wine == nil {
		jsonError(w, http.StatusNotFound, "wine not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.ProcessLabel(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetWineLabel(r.Context(), h.DB, claims.UserID, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save label photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "label uploaded"})
}

// GetLabel handles GET /api/wines/{id}/image.
func (h *WinesHandler) GetLabel(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid wine id")
		return
	}

	data, mime, err := store.GetWineLabel(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get label photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no label photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

// wineFromRequest validates a create request and maps it to a record.
// Defaults match the add-wine form: type red, quantity 1, 750ml bottle.
func wineFromRequest(req *createWineRequest) (*model.Wine, error) {
	if req.Name == "" {
		return nil, errName
	}

	wineType := req.WineType
	if wineType == "" {
		wineType = model.WineTypeRed
	}
	if !model.ValidWineType(wineType) {
		return nil, errWineType
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return nil, errQuantity
	}

	bottleSize := req.BottleSize
	if bottleSize == "" {
		bottleSize = model.DefaultBottleSize
	}
	if !model.ValidBottleSize(bottleSize) {
		return nil, errBottleSize
	}

	if !model.ValidRating(req.Rating) {
		return nil, errRating
	}

	return &model.Wine{
		Name:              req.Name,
		Producer:          req.Producer,
		Vintage:           req.Vintage,
		WineType:          wineType,
		Country:           req.Country,
		Region:            req.Region,
		GrapeVariety:      req.GrapeVariety,
		Quantity:          quantity,
		Location:          req.Location,
		SupplierName:      req.SupplierName,
		SupplierURL:       req.SupplierURL,
		SupplierSKU:       req.SupplierSKU,
		PurchasePrice:     req.PurchasePrice,
		PurchaseDate:      req.PurchaseDate,
		EstimatedValue:    req.EstimatedValue,
		AlcoholPercentage: req.AlcoholPercentage,
		BottleSize:        bottleSize,
		Notes:             req.Notes,
		Rating:            req.Rating,
	}, nil
}
