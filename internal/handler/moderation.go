package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

// GetUsers lists all Regular users with their ban status.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	mod := h.moderator(w, r)
	if mod == nil {
		return
	}
	users, st := mod.RegularUsers()
	writeList(w, st, users)
}

// GetAllUsersActivity returns audit activity aggregated by username.
func (h *Handler) GetAllUsersActivity(w http.ResponseWriter, r *http.Request) {
	mod := h.moderator(w, r)
	if mod == nil {
		return
	}
	summaries, st := mod.AllUsersActivity(timePeriod(r))
	writeList(w, st, summaries)
}

// GetUserActivityByName returns one named user's audit rows.
func (h *Handler) GetUserActivityByName(w http.ResponseWriter, r *http.Request) {
	mod := h.moderator(w, r)
	if mod == nil {
		return
	}
	username := r.URL.Query().Get("username")
	if username == "" {
		writeStatus(w, status.MissingFields)
		return
	}
	records, st := mod.UserActivity(username, timePeriod(r))
	writeList(w, st, records)
}

type banRequest struct {
	Username string `json:"username" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

type unbanRequest struct {
	Username string `json:"username" validate:"required"`
}

func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	mod := h.moderator(w, r)
	if mod == nil {
		return
	}
	var body banRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, mod.Ban(body.Username, body.Reason))
}

func (h *Handler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	mod := h.moderator(w, r)
	if mod == nil {
		return
	}
	var body unbanRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, mod.Unban(body.Username))
}

// GetModerators lists moderator accounts. Administrator floor.
func (h *Handler) GetModerators(w http.ResponseWriter, r *http.Request) {
	admin := h.administrator(w, r)
	if admin == nil {
		return
	}
	moderators, st := admin.Moderators()
	writeList(w, st, moderators)
}
