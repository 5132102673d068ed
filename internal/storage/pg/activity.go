package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

// SaveActivity appends one audit row. Called only by the persistent activity
// observer; rows are never updated or deleted.
func (s *Storage) SaveActivity(record domain.ActivityRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO user_activity(id, user_id, action, details, created_at) VALUES($1, $2, $3, $4, $5)",
			record.Id, record.UserId, string(record.Action), record.Details, record.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert activity record: %w", err)
		}
		return nil
	})
}

// ActivityByUser fetches a user's audit rows newer than since, newest first.
// A zero since means all-time.
func (s *Storage) ActivityByUser(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, action, details, created_at
		FROM user_activity
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3`, userId, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var r domain.ActivityRecord
		var action string
		if err := rows.Scan(&r.Id, &r.UserId, &action, &r.Details, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}
		r.Action = domain.Action(action)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity records: %w", err)
	}
	return records, nil
}

// ActivitySummaries aggregates audit rows per username since the given time,
// most recently active first.
func (s *Storage) ActivitySummaries(since time.Time) ([]domain.ActivitySummary, error) {
	rows, err := s.db.Query(`
		SELECT u.username, COUNT(*), MAX(ua.created_at)
		FROM user_activity ua
		JOIN users u ON u.id = ua.user_id
		WHERE ua.created_at >= $1
		GROUP BY u.username
		ORDER BY MAX(ua.created_at) DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ActivitySummary
	for rows.Next() {
		var sum domain.ActivitySummary
		if err := rows.Scan(&sum.Username, &sum.Actions, &sum.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan activity summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity summaries: %w", err)
	}
	return summaries, nil
}
