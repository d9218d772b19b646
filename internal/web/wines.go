package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eivindmo/vinlager/internal/imaging"
	"github.com/eivindmo/vinlager/internal/model"
	"github.com/eivindmo/vinlager/internal/store"
)

// WinesPage handles GET /wines. The type filter runs in the store
// query, not in the page.
func (s *Server) WinesPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	filter := r.URL.Query().Get("type")
	if filter != "" && !model.ValidWineType(filter) {
		filter = ""
	}

	wines, err := store.ListWines(r.Context(), s.DB, claims.UserID, filter)
	if err != nil {
		slog.Error("failed to list wines", "error", err)
	}

	s.Templates.Render(w, "wines.html", &struct {
		PageData
		Wines     []model.Wine
		Filter    string
		WineTypes []string
	}{
		PageData:  PageData{Title: "Mine viner", User: claims},
		Wines:     wines,
		Filter:    filter,
		WineTypes: model.WineTypes,
	})
}

// wineDetailData is the page data for the detail screen.
type wineDetailData struct {
	PageData
	Wine *model.Wine
}

// WineDetailPage handles GET /wines/{id}.
func (s *Server) WineDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	wine, err := store.GetWine(r.Context(), s.DB, claims.UserID, id)
	if err != nil {
		slog.Error("failed to get wine", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if wine == nil {
		http.Error(w, "wine not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "wine_detail.html", &wineDetailData{
		PageData: PageData{Title: wine.Name, User: claims},
		Wine:     wine,
	})
}

// WineAddPage handles GET /wines/new.
func (s *Server) WineAddPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "wine_add.html", &struct {
		PageData
		WineTypes   []string
		BottleSizes []string
	}{
		PageData:    PageData{Title: "Legg til ny vin", User: claims},
		WineTypes:   model.WineTypes,
		BottleSizes: model.BottleSizes,
	})
}

// WineCreateSubmit handles POST /wines.
func (s *Server) WineCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	wine, err := parseWineForm(r)
	if err != nil {
		s.Templates.Render(w, "wine_add.html", &struct {
			PageData
			WineTypes   []string
			BottleSizes []string
		}{
			PageData:    PageData{Title: "Legg til ny vin", User: claims, Error: err.Error()},
			WineTypes:   model.WineTypes,
			BottleSizes: model.BottleSizes,
		})
		return
	}

	created, err := store.CreateWine(r.Context(), s.DB, claims.UserID, wine)
	if err != nil {
		slog.Error("failed to create wine", "error", err)
		s.Templates.Render(w, "wine_add.html", &struct {
			PageData
			WineTypes   []string
			BottleSizes []string
		}{
			PageData:    PageData{Title: "Legg til ny vin", User: claims, Error: "Kunne ikke lagre vinen."},
			WineTypes:   model.WineTypes,
			BottleSizes: model.BottleSizes,
		})
		return
	}

	slog.Info("wine created", "phone", claims.Phone, "wine", created.Name)
	http.Redirect(w, r, "/wines", http.StatusSeeOther)
}

// WineDeleteSubmit handles POST /wines/{id}/delete. The confirm dialog
// lives in the page; the delete is irreversible.
func (s *Server) WineDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	wine, err := store.GetWine(r.Context(), s.DB, claims.UserID, id)
	if err != nil {
		slog.Error("failed to get wine", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if wine == nil {
		http.Error(w, "wine not found", http.StatusNotFound)
		return
	}

	if _, err := store.DeleteWine(r.Context(), s.DB, claims.UserID, id); err != nil {
		slog.Error("failed to delete wine", "error", err)
		s.Templates.Render(w, "wine_detail.html", &wineDetailData{
			PageData: PageData{Title: wine.Name, User: claims, Error: "Kunne ikke slette vinen."},
			Wine:     wine,
		})
		return
	}

	slog.Info("wine deleted", "phone", claims.Phone, "wine", wine.Name)
	http.Redirect(w, r, "/wines", http.StatusSeeOther)
}

// WineLabelSubmit handles POST /wines/{id}/image.
func (s *Server) WineLabelSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	wine, err := store.GetWine(r.Context(), s.DB, claims.UserID, id)
	if err != nil || wine == nil {
		http.Error(w, "wine not found", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Process the photo: validate format by sniffing bytes, downscale, compress.
	result, err := imaging.ProcessLabel(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetWineLabel(r.Context(), s.DB, claims.UserID, id, result.Data, result.MIME); err != nil {
		slog.Error("failed to save label photo", "error", err)
		http.Error(w, "failed to save label photo", http.StatusInternalServerError)
		return
	}

	slog.Info("label photo uploaded", "phone", claims.Phone, "wine", wine.Name)
	http.Redirect(w, r, fmt.Sprintf("/wines/%d", id), http.StatusSeeOther)
}

// WineLabelGet handles GET /wines/{id}/image.
func (s *Server) WineLabelGet(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetWineLabel(r.Context(), s.DB, claims.UserID, id)
	if err != nil {
		slog.Error("failed to get label photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write label response", "error", err)
	}
}
