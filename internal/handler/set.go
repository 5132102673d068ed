package handler

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/status"
	"github.com/quizdeck-dev/quizdeck/internal/utils"
)

type setRequest struct {
	SetId       int64  `json:"setID,omitempty"`
	Name        string `json:"setName" validate:"required"`
	Category    int    `json:"category"`
	Subcategory string `json:"subCategory" validate:"required"`
	Description string `json:"description"`
	Public      bool   `json:"publicSet"`
}

func (h *Handler) GetSets(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	sets, st := reg.Sets()
	writeList(w, st, sets)
}

func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	setId, ok := queryId(r, "setID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	set, st := reg.Set(setId)
	if st != status.Success {
		writeStatus(w, st)
		return
	}
	writeResult(w, st, set)
}

func (h *Handler) NewSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body setRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}

	id, st := reg.NewSet(body.Name, domain.Category(body.Category), body.Subcategory, body.Description, body.Public)
	if st != status.Success {
		writeStatus(w, st)
		return
	}
	writeCreated(w, id)
}

func (h *Handler) EditSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body setRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}

	st := reg.EditSet(body.SetId, body.Name, domain.Category(body.Category), body.Subcategory, body.Description, body.Public)
	writeStatus(w, st)
}

func (h *Handler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	setId, ok := queryId(r, "setID")
	if !ok {
		writeStatus(w, status.MissingFields)
		return
	}
	st := reg.DeleteSet(setId)
	if st != status.Success {
		writeStatus(w, st)
		return
	}
	// successful deletes answer 201
	writeCreated(w, nil)
}

type reportRequest struct {
	SetId  int64  `json:"setID" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

func (h *Handler) ReportSet(w http.ResponseWriter, r *http.Request) {
	reg := h.regular(w, r)
	if reg == nil {
		return
	}
	var body reportRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		writeStatus(w, status.MissingFields)
		return
	}
	writeStatus(w, reg.ReportSet(body.SetId, body.Reason))
}

// GetCategories serves the static category/subcategory table.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	type categoryEntry struct {
		Id            int      `json:"id"`
		Name          string   `json:"name"`
		Subcategories []string `json:"subcategories"`
	}
	var entries []categoryEntry
	for c := domain.CategoryLanguage; c <= domain.CategoryMilitary; c++ {
		entries = append(entries, categoryEntry{Id: int(c), Name: c.String(), Subcategories: c.Subcategories()})
	}
	writeResult(w, status.Success, entries)
}
