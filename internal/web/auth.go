package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/eivindmo/vinlager/internal/auth"
	"github.com/eivindmo/vinlager/internal/otp"
	"github.com/eivindmo/vinlager/internal/store"
)

// loginData is the page data for the login screen.
type loginData struct {
	PageData
	Phone string
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &loginData{PageData: PageData{Title: "Logg inn"}})
}

// LoginSubmit handles POST /login: requests an SMS code and redirects
// to the verify screen.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	phone, err := otp.NormalizePhone(r.FormValue("phone"))
	if err != nil {
		s.Templates.Render(w, "login.html", &loginData{
			PageData: PageData{Title: "Logg inn", Error: "Ugyldig telefonnummer. Husk landskode, f.eks. +47."},
			Phone:    r.FormValue("phone"),
		})
		return
	}

	if err := s.OTP.RequestCode(r.Context(), phone); err != nil {
		msg := "Kunne ikke sende kode. Prøv igjen senere."
		if errors.Is(err, otp.ErrCooldown) {
			msg = "En kode ble nylig sendt. Vent litt før du ber om en ny."
		}
		slog.Warn("failed to send login code", "phone", phone, "error", err)
		s.Templates.Render(w, "login.html", &loginData{
			PageData: PageData{Title: "Logg inn", Error: msg},
			Phone:    r.FormValue("phone"),
		})
		return
	}

	http.Redirect(w, r, "/verify?phone="+url.QueryEscape(phone), http.StatusSeeOther)
}

// verifyData is the page data for the verify screen.
type verifyData struct {
	PageData
	Phone string
}

// VerifyPage handles GET /verify.
func (s *Server) VerifyPage(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "verify.html", &verifyData{
		PageData: PageData{Title: "Bekreft kode"},
		Phone:    phone,
	})
}

// VerifySubmit handles POST /verify: exchanges the code for a session
// cookie.
func (s *Server) VerifySubmit(w http.ResponseWriter, r *http.Request) {
	phone, err := otp.NormalizePhone(r.FormValue("phone"))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	code := r.FormValue("code")

	if err := s.OTP.VerifyCode(r.Context(), phone, code); err != nil {
		s.Templates.Render(w, "verify.html", &verifyData{
			PageData: PageData{Title: "Bekreft kode", Error: "Feil eller utløpt kode."},
			Phone:    phone,
		})
		return
	}

	user, err := store.EnsureUser(r.Context(), s.DB, phone)
	if err != nil {
		slog.Error("failed to ensure user", "error", err)
		s.Templates.Render(w, "verify.html", &verifyData{
			PageData: PageData{Title: "Bekreft kode", Error: "Noe gikk galt ved innlogging."},
			Phone:    phone,
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Phone)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		s.Templates.Render(w, "verify.html", &verifyData{
			PageData: PageData{Title: "Bekreft kode", Error: "Noe gikk galt ved innlogging."},
			Phone:    phone,
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	slog.Info("user logged in", "phone", user.Phone)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout: revokes the session token and clears
// the cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil {
			if claims.ID != "" && claims.ExpiresAt != nil {
				if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
					slog.Error("failed to revoke token on logout", "error", err)
				}
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
