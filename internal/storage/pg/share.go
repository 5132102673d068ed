package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

// SaveShare records that a set is shared with a user. The (user_id, set_id)
// pair is unique by schema constraint; duplicates map to ErrConflict.
func (s *Storage) SaveShare(share domain.SharedSet) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO shared_sets(user_id, set_id) VALUES($1, $2)", share.UserId, share.SetId)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("share")
			}
			if isForeignKeyViolation(err) {
				return notFound("set")
			}
			return fmt.Errorf("failed to insert share: %w", err)
		}
		return nil
	})
}

// DeleteShare removes exactly the (user_id, set_id) pair. A missing pair maps
// to ErrNotFound.
func (s *Storage) DeleteShare(share domain.SharedSet) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM shared_sets WHERE user_id = $1 AND set_id = $2", share.UserId, share.SetId)
		if err != nil {
			return fmt.Errorf("failed to delete share: %w", err)
		}
		return expectOneRow(result, "share")
	})
}

// SetsSharedWith lists sets other users have shared with userId.
func (s *Storage) SetsSharedWith(userId int64) ([]domain.CardSet, error) {
	rows, err := s.db.Query(`
		SELECT cs.id, cs.owner_id, cs.name, cs.category, cs.subcategory, cs.description, cs.public, cs.created_at
		FROM card_sets cs
		JOIN shared_sets ss ON ss.set_id = cs.id
		WHERE ss.user_id = $1
		ORDER BY cs.created_at DESC`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared sets: %w", err)
	}
	defer rows.Close()
	return collectSets(rows)
}

// IsSharedWith reports whether setId is shared with userId.
func (s *Storage) IsSharedWith(userId, setId int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM shared_sets WHERE user_id = $1 AND set_id = $2)", userId, setId).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query share existence: %w", err)
	}
	return exists, nil
}
