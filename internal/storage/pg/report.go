package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
)

// SaveReport appends a report row. Reports are immutable; there is no update
// or delete path.
func (s *Storage) SaveReport(report domain.Report) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO reports(set_id, reason) VALUES($1, $2) RETURNING id",
			report.SetId, report.Reason).Scan(&id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return notFound("set")
			}
			return fmt.Errorf("failed to insert report: %w", err)
		}
		return nil
	})
	return id, err
}

// ReportsBySet lists reports filed against a set, oldest first.
func (s *Storage) ReportsBySet(setId int64) ([]domain.Report, error) {
	rows, err := s.db.Query("SELECT id, set_id, reason, created_at FROM reports WHERE set_id = $1 ORDER BY id", setId)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(&r.Id, &r.SetId, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}
