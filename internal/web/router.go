package web

import (
	"database/sql"
	"net/http"

	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
	webembed "github.com/eivindmo/vinlager/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, otpService *otp.Service, invites *invite.Client) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		OTP:       otpService,
		Invites:   invites,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /invite", s.InvitePage)
	mux.HandleFunc("POST /invite", s.InviteSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /verify", s.VerifyPage)
	mux.HandleFunc("POST /verify", s.VerifySubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.Dashboard)))

	mux.Handle("GET /wines", cookieAuth(http.HandlerFunc(s.WinesPage)))
	mux.Handle("POST /wines", cookieAuth(http.HandlerFunc(s.WineCreateSubmit)))
	mux.Handle("GET /wines/new", cookieAuth(http.HandlerFunc(s.WineAddPage)))
	mux.Handle("GET /wines/{id}", cookieAuth(http.HandlerFunc(s.WineDetailPage)))
	mux.Handle("POST /wines/{id}/delete", cookieAuth(http.HandlerFunc(s.WineDeleteSubmit)))
	mux.Handle("POST /wines/{id}/image", cookieAuth(http.HandlerFunc(s.WineLabelSubmit)))
	mux.Handle("GET /wines/{id}/image", cookieAuth(http.HandlerFunc(s.WineLabelGet)))

	return mux, nil
}
