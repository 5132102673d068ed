package service

import (
	"errors"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// ShareStorage is the persistence surface the sharing service needs.
type ShareStorage interface {
	Set(setId int64) (domain.CardSet, error)
	UserByUsername(username string) (domain.User, error)
	SaveShare(share domain.SharedSet) error
	DeleteShare(share domain.SharedSet) error
	SetsSharedWith(userId int64) ([]domain.CardSet, error)
}

type Share struct {
	storage ShareStorage
}

func NewShare(storage ShareStorage) *Share {
	return &Share{storage: storage}
}

// Share grants targetUsername access to one of ownerId's sets. Sharing a set
// with its own owner is rejected as AlreadyShared even when no share row
// exists: the owner already sees the set.
func (s *Share) Share(ownerId, setId int64, targetUsername string) status.Status {
	if setId == 0 || targetUsername == "" {
		return status.MissingFields
	}

	set, err := s.storage.Set(setId)
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

	target, err := s.storage.UserByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "username", targetUsername, "error", err)
		return status.Error
	}
	if target.Id == ownerId {
		return status.AlreadyShared
	}

	if err := s.storage.SaveShare(domain.SharedSet{UserId: target.Id, SetId: setId}); err != nil {
		if errors.Is(err, internal_errors.ErrConflict) {
			return status.AlreadyShared
		}
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to save share", "set_id", setId, "user_id", target.Id, "error", err)
		return status.Error
	}
	return status.Success
}

// Unshare removes exactly the (userId, setId) pair. An absent pair tags
// SetDoesNotExist.
func (s *Share) Unshare(userId, setId int64) status.Status {
	if setId == 0 {
		return status.MissingFields
	}
	if err := s.storage.DeleteShare(domain.SharedSet{UserId: userId, SetId: setId}); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.SetDoesNotExist
		}
		logger.Log.Error("failed to delete share", "set_id", setId, "user_id", userId, "error", err)
		return status.Error
	}
	return status.Success
}

// Revoke lets a set's owner withdraw a share they previously granted.
func (s *Share) Revoke(ownerId, setId int64, targetUsername string) status.Status {
	if setId == 0 || targetUsername == "" {
		return status.MissingFields
	}

	set, err := s.storage.Set(setId)
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

	target, err := s.storage.UserByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "username", targetUsername, "error", err)
		return status.Error
	}

	return s.Unshare(target.Id, setId)
}

// SharedWith lists the sets other users have shared with userId.
func (s *Share) SharedWith(userId int64) ([]domain.CardSet, status.Status) {
	sets, err := s.storage.SetsSharedWith(userId)
	if err != nil {
		logger.Log.Error("failed to list shared sets", "user_id", userId, "error", err)
		return nil, status.Error
	}
	if len(sets) == 0 {
		return []domain.CardSet{}, status.NoSharedSets
	}
	return sets, status.Success
}
