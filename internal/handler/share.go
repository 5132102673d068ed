package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

type shareRequest struct {
	SetId    int64  `json:"setID" validate:"required"`
	Username string `json:"username" validate:"required"`
}

func (h *Handler) ShareSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body shareRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.ShareSet(body.SetId, body.Username))
}

// UnshareSet removes a share row. With a username query value the owner
// revokes that user's access; without one the caller drops a set shared to
// them.
func (h *Handler) UnshareSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	setId, ok := queryId(r, "setID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.UnshareSet(setId, r.URL.Query().Get("username")))
}

func (h *Handler) GetSharedSets(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	sets, st := reg.SharedSets()
	writeList(w, st, sets)
}
