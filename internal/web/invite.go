package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
)

// inviteData is the page data for the public landing screen.
type inviteData struct {
	PageData
	FullName string
	Phone    string
	Email    string
}

// InvitePage handles GET /invite, the public landing form.
func (s *Server) InvitePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "invite.html", &inviteData{PageData: PageData{Title: "Be om invitasjon"}})
}

// InviteSubmit handles POST /invite: forwards the request to the
// external invite service and surfaces its detail message on failure.
func (s *Server) InviteSubmit(w http.ResponseWriter, r *http.Request) {
	fullName := r.FormValue("full_name")
	email := r.FormValue("email")

	render := func(errMsg, successMsg string) {
		s.Templates.Render(w, "invite.html", &inviteData{
			PageData: PageData{Title: "Be om invitasjon", Error: errMsg, Success: successMsg},
			FullName: fullName,
			Phone:    r.FormValue("phone"),
			Email:    email,
		})
	}

	if fullName == "" {
		render("Fyll inn navn.", "")
		return
	}

	phone, err := otp.NormalizePhone(r.FormValue("phone"))
	if err != nil {
		render("Ugyldig telefonnummer. Husk landskode, f.eks. +47.", "")
		return
	}

	if err := s.Invites.Send(r.Context(), fullName, phone, email); err != nil {
		msg := err.Error()
		if errors.Is(err, invite.ErrNotConfigured) {
			msg = "Invitasjoner er ikke tilgjengelige akkurat nå."
		}
		slog.Warn("invite request failed", "phone", phone, "error", err)
		render(msg, "")
		return
	}

	slog.Info("invite sent", "name", fullName, "phone", phone)
	render("", fmt.Sprintf("Invitasjon sendt til %s (%s)!", fullName, phone))
}
