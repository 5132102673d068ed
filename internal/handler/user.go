package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

type editUserRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// EditUser updates the session user's details. The session cookie keeps the
// old claims until it expires or the user logs in again.
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body editUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.EditDetails(body.Username, body.Email, body.CurrentPassword))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body changePasswordRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.ChangePassword(body.CurrentPassword, body.NewPassword, body.ConfirmPassword))
}
