package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

func TestNewCardHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, storage := newTestHandler(t)
		user := seedUser(t, storage, "alice", domain.RoleRegular)
		seedSet(t, storage, user.Id, "Vocab", false)

		body := `{"setID":1,"frontText":"hello","backText":"konnichiwa"}`
		rec := httptest.NewRecorder()
		h.NewCard(rec, authed(httptest.NewRequest(http.MethodPost, "/api/newCard", strings.NewReader(body)), user))

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, storage.cards, 1)
		assert.Equal(t, "hello", storage.cards[1].Front)
	})

	t.Run("Someone else's set reads as missing", func(t *testing.T) {
		h, storage := newTestHandler(t)
		alice := seedUser(t, storage, "alice", domain.RoleRegular)
		bob := seedUser(t, storage, "bob", domain.RoleRegular)
		seedSet(t, storage, alice.Id, "Vocab", true)

		body := `{"setID":1,"frontText":"hello","backText":"konnichiwa"}`
		rec := httptest.NewRecorder()
		h.NewCard(rec, authed(httptest.NewRequest(http.MethodPost, "/api/newCard", strings.NewReader(body)), bob))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "set-does-not-exist", decodeResponse(t, rec).Status)
		assert.Empty(t, storage.cards)
	})
}

func TestGetCardsHandler(t *testing.T) {
	t.Run("Empty owned set is no_cards", func(t *testing.T) {
		h, storage := newTestHandler(t)
		user := seedUser(t, storage, "alice", domain.RoleRegular)
		seedSet(t, storage, user.Id, "Vocab", false)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/getCards?setID=1", nil)
		h.GetCards(rec, authed(req, user))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no_cards", decodeResponse(t, rec).Status)
	})

	t.Run("Unknown set is 404", func(t *testing.T) {
		h, storage := newTestHandler(t)
		user := seedUser(t, storage, "alice", domain.RoleRegular)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/getCards?setID=9", nil)
		h.GetCards(rec, authed(req, user))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "set-does-not-exist", decodeResponse(t, rec).Status)
	})

	t.Run("Shared set lists for the sharee", func(t *testing.T) {
		h, storage := newTestHandler(t)
		alice := seedUser(t, storage, "alice", domain.RoleRegular)
		bob := seedUser(t, storage, "bob", domain.RoleRegular)
		set := seedSet(t, storage, alice.Id, "Vocab", false)
		_, err := storage.SaveCard(domain.Card{SetId: set.Id, Front: "hello", Back: "konnichiwa"})
		require.NoError(t, err)
		require.NoError(t, storage.SaveShare(domain.SharedSet{UserId: bob.Id, SetId: set.Id}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/getCards?setID=1", nil)
		h.GetCards(rec, authed(req, bob))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "success", resp.Status)
		var cards []domain.Card
		require.NoError(t, json.Unmarshal(resp.Result, &cards))
		require.Len(t, cards, 1)
	})
}

func TestEditCardHandler(t *testing.T) {
	h, storage := newTestHandler(t)
	user := seedUser(t, storage, "alice", domain.RoleRegular)
	set := seedSet(t, storage, user.Id, "Vocab", false)
	cardId, err := storage.SaveCard(domain.Card{SetId: set.Id, Front: "hello", Back: "bonjur"})
	require.NoError(t, err)

	body := `{"cardID":1,"setID":1,"frontText":"hello","backText":"bonjour"}`
	rec := httptest.NewRecorder()
	h.EditCard(rec, authed(httptest.NewRequest(http.MethodPut, "/api/editCard", strings.NewReader(body)), user))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bonjour", storage.cards[cardId].Back)
}

func TestDeleteCardHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, storage := newTestHandler(t)
		user := seedUser(t, storage, "alice", domain.RoleRegular)
		set := seedSet(t, storage, user.Id, "Vocab", false)
		_, err := storage.SaveCard(domain.Card{SetId: set.Id, Front: "a", Back: "b"})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/deleteCard?cardID=1&setID=1", nil)
		h.DeleteCard(rec, authed(req, user))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, storage.cards)
	})

	t.Run("Missing ids", func(t *testing.T) {
		h, storage := newTestHandler(t)
		user := seedUser(t, storage, "alice", domain.RoleRegular)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/deleteCard?cardID=1", nil)
		h.DeleteCard(rec, authed(req, user))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing-fields", decodeResponse(t, rec).Status)
	})
}
