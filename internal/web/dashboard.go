package web

import (
	"log/slog"
	"net/http"

	"github.com/eivindmo/vinlager/internal/model"
	"github.com/eivindmo/vinlager/internal/store"
)

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	stats, err := store.GetCollectionStats(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to get collection stats", "error", err)
		stats = &store.CollectionStats{ByType: map[string]int{}}
	}

	recent, err := store.ListWines(r.Context(), s.DB, claims.UserID, "")
	if err != nil {
		slog.Error("failed to list wines for dashboard", "error", err)
	}

	// Limit recent wines to 5.
	if len(recent) > 5 {
		recent = recent[:5]
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats     *store.CollectionStats
		Recent    []model.Wine
		WineTypes []string
	}{
		PageData:  PageData{Title: "Vinlager", User: claims},
		Stats:     stats,
		Recent:    recent,
		WineTypes: model.WineTypes,
	})
}
