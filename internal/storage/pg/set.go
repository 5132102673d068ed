package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

const setColumns = "id, owner_id, name, category, subcategory, description, public, created_at"

// SaveSet inserts a new card set. The (owner_id, name) pair is unique by
// schema constraint.
func (s *Storage) SaveSet(set domain.CardSet) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO card_sets(owner_id, name, category, subcategory, description, public)
			VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
			set.OwnerId, set.Name, int(set.Category), set.Subcategory, set.Description, set.Public).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("set name")
			}
			return fmt.Errorf("failed to insert set: %w", err)
		}
		return nil
	})
	return id, err
}

func (s *Storage) Set(setId int64) (domain.CardSet, error) {
	var set domain.CardSet
	var category int
	err := s.db.QueryRow("SELECT "+setColumns+" FROM card_sets WHERE id = $1", setId).
		Scan(&set.Id, &set.OwnerId, &set.Name, &category, &set.Subcategory, &set.Description, &set.Public, &set.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CardSet{}, notFound("set")
		}
		return domain.CardSet{}, fmt.Errorf("failed to query set: %w", err)
	}
	set.Category = domain.Category(category)
	return set, nil
}

// SetsByOwner lists all sets owned by a user, newest first. An empty slice is
// a valid result; the caller distinguishes it from owner-not-found.
func (s *Storage) SetsByOwner(ownerId int64) ([]domain.CardSet, error) {
	rows, err := s.db.Query("SELECT "+setColumns+" FROM card_sets WHERE owner_id = $1 ORDER BY created_at DESC", ownerId)
	if err != nil {
		return nil, fmt.Errorf("failed to query sets: %w", err)
	}
	defer rows.Close()
	return collectSets(rows)
}

// UpdateSet rewrites a set's mutable fields. Rename collisions with another
// set of the same owner surface as ErrConflict via the unique constraint.
func (s *Storage) UpdateSet(set domain.CardSet) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE card_sets SET name = $1, category = $2, subcategory = $3, description = $4, public = $5
			WHERE id = $6 AND owner_id = $7`,
			set.Name, int(set.Category), set.Subcategory, set.Description, set.Public, set.Id, set.OwnerId)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("set name")
			}
			return fmt.Errorf("failed to update set: %w", err)
		}
		return expectOneRow(result, "set")
	})
}

// DeleteSet removes a set and, in the same transaction, its cards, share rows
// and reports. The schema's ON DELETE CASCADE backstops the same policy.
func (s *Storage) DeleteSet(ownerId, setId int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			"DELETE FROM cards WHERE set_id = $1",
			"DELETE FROM shared_sets WHERE set_id = $1",
			"DELETE FROM reports WHERE set_id = $1",
		} {
			if _, err := tx.Exec(q, setId); err != nil {
				return fmt.Errorf("failed to delete set children: %w", err)
			}
		}
		result, err := tx.Exec("DELETE FROM card_sets WHERE id = $1 AND owner_id = $2", setId, ownerId)
		if err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		return expectOneRow(result, "set")
	})
}

func collectSets(rows *sql.Rows) ([]domain.CardSet, error) {
	var sets []domain.CardSet
	for rows.Next() {
		var set domain.CardSet
		var category int
		if err := rows.Scan(&set.Id, &set.OwnerId, &set.Name, &category, &set.Subcategory, &set.Description, &set.Public, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan set: %w", err)
		}
		set.Category = domain.Category(category)
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sets: %w", err)
	}
	return sets, nil
}
