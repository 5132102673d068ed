package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

type cardRequest struct {
	CardId int64  `json:"cardID,omitempty"`
	SetId  int64  `json:"setID" validate:"required"`
	Front  string `json:"frontText" validate:"required"`
	Back   string `json:"backText" validate:"required"`
}

func (h *Handler) GetCards(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	setId, ok := queryId(r, "setID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	cards, st := reg.Cards(setId)
	writeList(w, st, cards)
}

func (h *Handler) NewCard(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body cardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}

	id, st := reg.NewCard(body.SetId, body.Front, body.Back)
	if st != status.Success {
		writeStatus(w, st)
		return
	}
	writeCreated(w, id)
}

func (h *Handler) EditCard(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body cardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.EditCard(body.CardId, body.SetId, body.Front, body.Back))
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	cardId, ok := queryId(r, "cardID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	setId, ok := queryId(r, "setID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.DeleteCard(cardId, setId))
}
