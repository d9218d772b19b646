package api

import (
	"database/sql"
	"net/http"

	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, otpService *otp.Service, invites *invite.Client) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, OTP: otpService, JWTSecret: jwtSecret}
	winesHandler := &WinesHandler{DB: db}
	invitesHandler := &InvitesHandler{Invites: invites}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: OTP login and invite requests.
	mux.HandleFunc("POST /api/auth/otp/request", authHandler.RequestCode)
	mux.HandleFunc("POST /api/auth/otp/verify", authHandler.VerifyCode)
	mux.HandleFunc("POST /api/invites", invitesHandler.Create)

	// Authenticated session routes.
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Wines, scoped to the caller's account.
	mux.Handle("GET /api/wines", authMW(http.HandlerFunc(winesHandler.List)))
	mux.Handle("POST /api/wines", authMW(http.HandlerFunc(winesHandler.Create)))
	mux.Handle("GET /api/wines/{id}", authMW(http.HandlerFunc(winesHandler.Get)))
	mux.Handle("DELETE /api/wines/{id}", authMW(http.HandlerFunc(winesHandler.Delete)))
	mux.Handle("PUT /api/wines/{id}/image", authMW(http.HandlerFunc(winesHandler.UploadLabel)))
	mux.Handle("GET /api/wines/{id}/image", authMW(http.HandlerFunc(winesHandler.GetLabel)))

	return mux
}
