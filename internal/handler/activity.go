package handler

import (
	"net/http"
)

// GetUserActivity returns the session user's own audit rows for the
// requested period.
func (h *Handler) GetUserActivity(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	records, st := reg.Activity(timePeriod(r))
	writeList(w, st, records)
}
