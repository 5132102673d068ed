package service

import (
	"errors"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// CardStorage is the persistence surface the card service needs.
type CardStorage interface {
	Set(setId int64) (domain.CardSet, error)
	SaveCard(card domain.Card) (int64, error)
	CardsBySet(setId int64) ([]domain.Card, error)
	UpdateCard(card domain.Card) error
	DeleteCard(cardId, setId int64) error
	IsSharedWith(userId, setId int64) (bool, error)
}

type Card struct {
	storage CardStorage
}

func NewCard(storage CardStorage) *Card {
	return &Card{storage: storage}
}

// ownedSet confirms setId exists and belongs to ownerId. A set owned by
// someone else reads as SetDoesNotExist.
func (c *Card) ownedSet(ownerId, setId int64) status.Status {
	set, err := c.storage.Set(setId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to fetch set", "set_id", setId, "error", err)
		return status.Error
	}
	if set.OwnerId != ownerId {
		return status.SetDoesNotExist
	}
	return status.Success
}

// Add creates a card in one of the owner's sets.
func (c *Card) Add(ownerId int64, card domain.Card) (int64, status.Status) {
	if card.SetId == 0 || card.Front == "" || card.Back == "" {
		return 0, status.MissingFields
	}
	if st := c.ownedSet(ownerId, card.SetId); st != status.Success {
		return 0, st
	}

	card.Front = sanitizeText(card.Front)
	card.Back = sanitizeText(card.Back)

	id, err := c.storage.SaveCard(card)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			// set deleted between the ownership check and the insert
			return 0, status.SetDoesNotExist
		}
		logger.Log.Error("failed to save card", "set_id", card.SetId, "error", err)
		return 0, status.Error
	}
	return id, status.Success
}

// Cards lists a set's cards for any user allowed to see the set (owner,
// public, or shared with them). An existing set with zero cards tags
// NoCards, distinct from SetDoesNotExist.
func (c *Card) Cards(userId, setId int64) ([]domain.Card, status.Status) {
	if setId == 0 {
		return nil, status.MissingFields
	}

	set, err := c.storage.Set(setId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return nil, status.SetDoesNotExist
		}
		logger.Log.Error("failed to fetch set", "set_id", setId, "error", err)
		return nil, status.Error
	}
	if set.OwnerId != userId && !set.Public {
		shared, err := c.storage.IsSharedWith(userId, setId)
		if err != nil {
			logger.Log.Error("failed to check share", "set_id", setId, "user_id", userId, "error", err)
			return nil, status.Error
		}
		if !shared {
			return nil, status.SetDoesNotExist
		}
	}

	cards, err := c.storage.CardsBySet(setId)
	if err != nil {
		logger.Log.Error("failed to list cards", "set_id", setId, "error", err)
		return nil, status.Error
	}
	if len(cards) == 0 {
		return []domain.Card{}, status.NoCards
	}
	return cards, status.Success
}

// Edit rewrites a card's faces within one of the owner's sets.
func (c *Card) Edit(ownerId int64, card domain.Card) status.Status {
	if card.Id == 0 || card.SetId == 0 || card.Front == "" || card.Back == "" {
		return status.MissingFields
	}
	if st := c.ownedSet(ownerId, card.SetId); st != status.Success {
		return st
	}

	card.Front = sanitizeText(card.Front)
	card.Back = sanitizeText(card.Back)

	if err := c.storage.UpdateCard(card); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.DoesNotExist
		}
		logger.Log.Error("failed to update card", "card_id", card.Id, "error", err)
		return status.Error
	}
	return status.Success
}

// Delete removes a card from one of the owner's sets.
func (c *Card) Delete(ownerId, cardId, setId int64) status.Status {
	if cardId == 0 || setId == 0 {
		return status.MissingFields
	}
	if st := c.ownedSet(ownerId, setId); st != status.Success {
		return st
	}

	if err := c.storage.DeleteCard(cardId, setId); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.DoesNotExist
		}
		logger.Log.Error("failed to delete card", "card_id", cardId, "error", err)
		return status.Error
	}
	return status.Success
}
