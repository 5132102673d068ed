package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

// SaveCard inserts a card into an existing set. A foreign key violation
// (set deleted between check and insert) maps to ErrNotFound.
func (s *Storage) SaveCard(card domain.Card) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO cards(set_id, front_text, back_text) VALUES($1, $2, $3) RETURNING id",
			card.SetId, card.Front, card.Back).Scan(&id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return notFound("set")
			}
			return fmt.Errorf("failed to insert card: %w", err)
		}
		return nil
	})
	return id, err
}

// CardsBySet lists the cards of a set in insertion order. Empty is valid;
// set existence is the caller's concern.
func (s *Storage) CardsBySet(setId int64) ([]domain.Card, error) {
	rows, err := s.db.Query("SELECT id, set_id, front_text, back_text FROM cards WHERE set_id = $1 ORDER BY id", setId)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.Id, &c.SetId, &c.Front, &c.Back); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return cards, nil
}

func (s *Storage) UpdateCard(card domain.Card) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE cards SET front_text = $1, back_text = $2 WHERE id = $3 AND set_id = $4",
			card.Front, card.Back, card.Id, card.SetId)
		if err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		return expectOneRow(result, "card")
	})
}

func (s *Storage) DeleteCard(cardId, setId int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("DELETE FROM cards WHERE id = $1 AND set_id = $2", cardId, setId)
		if err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		return expectOneRow(result, "card")
	})
}
