package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
)

// InvitesHandler proxies invitation requests to the external invite
// service.
type InvitesHandler struct {
	Invites *invite.Client
}

type createInviteRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Create handles POST /api/invites.
func (h *InvitesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FullName == "" || req.Phone == "" {
		jsonError(w, http.StatusBadRequest, "full_name and phone required")
		return
	}

	phone, err := otp.NormalizePhone(req.Phone)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Invites.Send(r.Context(), req.FullName, phone, req.Email); err != nil {
		if errors.Is(err, invite.ErrNotConfigured) {
			jsonError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		slog.Warn("invite request failed", "phone", phone, "error", err)
		jsonError(w, http.StatusBadGateway, err.Error())
		return
	}

	slog.Info("invite sent", "name", req.FullName, "phone", phone)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "invite sent"})
}
