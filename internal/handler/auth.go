package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

type registerRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Register creates a Regular account. On success the response carries the
// login redirect target so the presentation layer can navigate with the
// status banner.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}

	user, st := h.svc.Users.Register(body.Username, body.Email, body.Password, body.ConfirmPassword)
	if st != status.RegistrationSuccess {
		writeStatus(w, st)
		return
	}

	h.svc.Subject.Notify(user, domain.ActionRegister, "")

	w.Header().Set("Location", "/login?status="+string(status.RegistrationSuccess))
	writeStatus(w, st)
}

// Login verifies credentials and issues the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}

	user, st := h.svc.Users.Login(body.Identifier, body.Password)
	if st != status.Success {
		writeStatus(w, st)
		return
	}

	token, err := h.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		writeStatus(w, status.Error)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.svc.Subject.Notify(user, domain.ActionLogin, "")

	writeResult(w, st, user)
}

// Logout clears the session cookie. The token itself simply expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeStatus(w, status.Success)
}
