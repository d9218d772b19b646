package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eivindmo/vinlager/internal/auth"
	"github.com/eivindmo/vinlager/internal/otp"
	"github.com/eivindmo/vinlager/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB        *sql.DB
	OTP       *otp.Service
	JWTSecret string
}

type requestCodeRequest struct {
	Phone string `json:"phone"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type verifyCodeResponse struct {
	Token string `json:"token"`
}

// RequestCode handles POST /api/auth/otp/request.
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	phone, err := otp.NormalizePhone(req.Phone)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.OTP.RequestCode(r.Context(), phone); err != nil {
		if errors.Is(err, otp.ErrCooldown) {
			jsonError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		slog.Error("failed to send login code", "error", err)
		jsonError(w, http.StatusBadGateway, "failed to send login code")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifyCode handles POST /api/auth/otp/verify.
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	phone, err := otp.NormalizePhone(req.Phone)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.OTP.VerifyCode(r.Context(), phone, req.Code); err != nil {
		if errors.Is(err, otp.ErrInvalidCode) {
			jsonError(w, http.StatusUnauthorized, "invalid or expired code")
			return
		}
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := store.EnsureUser(r.Context(), h.DB, phone)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Phone)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "phone", user.Phone)
	jsonResponse(w, http.StatusOK, verifyCodeResponse{Token: token})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || user.DeletedAt != nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if claims.ID != "" && claims.ExpiresAt != nil {
		if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token", "error", err)
			jsonError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	slog.Info("user logged out", "phone", claims.Phone)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
