package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/eivindmo/vinlager/internal/auth"
	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
	webembed "github.com/eivindmo/vinlager/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"wineTypeName": func(wineType string) string {
			switch wineType {
			case "red":
				return "Rødvin"
			case "white":
				return "Hvitvin"
			case "rose":
				return "Rosévin"
			case "sparkling":
				return "Musserende"
			case "dessert":
				return "Dessertvin"
			case "other":
				return "Annet"
			default:
				return wineType
			}
		},
		"wineTypeIcon": func(wineType string) string {
			switch wineType {
			case "red":
				return "🍷"
			case "white":
				return "🥂"
			case "rose":
				return "🌸"
			case "sparkling":
				return "🍾"
			case "dessert":
				return "🍯"
			default:
				return "🍇"
			}
		},
		"stars": func(rating *int) string {
			if rating == nil {
				return ""
			}
			s := ""
			for i := 0; i < *rating; i++ {
				s += "⭐"
			}
			return s
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"invite.html",
		"login.html",
		"verify.html",
		"dashboard.html",
		"wines.html",
		"wine_detail.html",
		"wine_add.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *auth.Claims
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	JWTSecret string
	OTP       *otp.Service
	Invites   *invite.Client
}
