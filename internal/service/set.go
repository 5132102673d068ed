package service

import (
	"errors"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// SetStorage is the persistence surface the card-set service needs.
type SetStorage interface {
	SaveSet(set domain.CardSet) (int64, error)
	Set(setId int64) (domain.CardSet, error)
	SetsByOwner(ownerId int64) ([]domain.CardSet, error)
	UpdateSet(set domain.CardSet) error
	DeleteSet(ownerId, setId int64) error
	SaveReport(report domain.Report) (int64, error)
	IsSharedWith(userId, setId int64) (bool, error)
}

type Set struct {
	storage SetStorage
}

func NewSet(storage SetStorage) *Set {
	return &Set{storage: storage}
}

// Add creates a set for ownerId. The (owner, name) uniqueness comes from the
// schema constraint, so a concurrent duplicate still resolves to NameUsed.
func (s *Set) Add(set domain.CardSet) (int64, status.Status) {
	if set.Name == "" || set.Subcategory == "" {
		return 0, status.MissingFields
	}
	if !set.Category.Valid() {
		return 0, status.InvalidAction
	}
	subcategory, ok := domain.CanonicalSubcategory(set.Category, set.Subcategory)
	if !ok {
		return 0, status.InvalidAction
	}

	set.Name = sanitizeText(set.Name)
	set.Description = sanitizeText(set.Description)
	set.Subcategory = subcategory

	id, err := s.storage.SaveSet(set)
	if err != nil {
		if errors.Is(err, internal_errors.ErrConflict) {
			return 0, status.NameUsed
		}
		logger.Log.Error("failed to save set", "owner_id", set.OwnerId, "error", err)
		return 0, status.Error
	}
	return id, status.Success
}

// All lists a user's own sets. Zero sets is a valid outcome tagged NoSets.
func (s *Set) All(ownerId int64) ([]domain.CardSet, status.Status) {
	sets, err := s.storage.SetsByOwner(ownerId)
	if err != nil {
		logger.Log.Error("failed to list sets", "owner_id", ownerId, "error", err)
		return nil, status.Error
	}
	if len(sets) == 0 {
		return []domain.CardSet{}, status.NoSets
	}
	return sets, status.Success
}

// Get fetches one set if userId may see it: owner, public set, or a set
// shared with them. Invisible sets read as SetDoesNotExist so private sets
// do not leak their existence.
func (s *Set) Get(userId, setId int64) (domain.CardSet, status.Status) {
	set, err := s.storage.Set(setId)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return domain.CardSet{}, status.SetDoesNotExist
		}
		logger.Log.Error("failed to fetch set", "set_id", setId, "error", err)
		return domain.CardSet{}, status.Error
	}

	if set.OwnerId != userId && !set.Public {
		shared, err := s.storage.IsSharedWith(userId, setId)
		if err != nil {
			logger.Log.Error("failed to check share", "set_id", setId, "user_id", userId, "error", err)
			return domain.CardSet{}, status.Error
		}
		if !shared {
			return domain.CardSet{}, status.SetDoesNotExist
		}
	}
	return set, status.Success
}

// Edit rewrites a set owned by set.OwnerId. Renaming onto another of the
// owner's set names yields NameUsed.
func (s *Set) Edit(set domain.CardSet) status.Status {
	if set.Id == 0 || set.Name == "" || set.Subcategory == "" {
		return status.MissingFields
	}
	if !set.Category.Valid() {
		return status.InvalidAction
	}
	subcategory, ok := domain.CanonicalSubcategory(set.Category, set.Subcategory)
	if !ok {
		return status.InvalidAction
	}

	set.Name = sanitizeText(set.Name)
	set.Description = sanitizeText(set.Description)
	set.Subcategory = subcategory

	if err := s.storage.UpdateSet(set); err != nil {
		if errors.Is(err, internal_errors.ErrConflict) {
			return status.NameUsed
		}
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to update set", "set_id", set.Id, "error", err)
		return status.Error
	}
	return status.Success
}

// Delete removes one of the owner's sets along with its cards, shares and
// reports. Deleting a set that is already gone tags DoesNotExist, not an
// error, so the operation is safely repeatable.
func (s *Set) Delete(ownerId, setId int64) status.Status {
	if setId == 0 {
		return status.MissingFields
	}
	if err := s.storage.DeleteSet(ownerId, setId); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.DoesNotExist
		}
		logger.Log.Error("failed to delete set", "set_id", setId, "error", err)
		return status.Error
	}
	return status.Success
}

// Report appends an immutable flag record against a set.
func (s *Set) Report(setId int64, reason string) status.Status {
	if setId == 0 || reason == "" {
		return status.MissingFields
	}

	if _, err := s.storage.Set(setId); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to fetch set", "set_id", setId, "error", err)
		return status.Error
	}

	if _, err := s.storage.SaveReport(domain.Report{SetId: setId, Reason: sanitizeText(reason)}); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to save report", "set_id", setId, "error", err)
		return status.Error
	}
	return status.Success
}
