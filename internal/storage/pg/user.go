package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
)

const userColumns = "id, username, email, password_hash, role, banned, COALESCE(ban_reason, ''), joined_at"

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.Id, &u.Username, &u.Email, &u.PassHash, &role, &u.Banned, &u.BanReason, &u.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, notFound("user")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	u.Role, err = domain.ParseRole(role)
	if err != nil {
		return domain.User{}, fmt.Errorf("malformed user row %d: %w", u.Id, err)
	}
	return u, nil
}

// SaveUser inserts a new user. Username and email uniqueness is enforced by
// schema constraints; a violated constraint surfaces as ErrConflict.
func (s *Storage) SaveUser(user domain.User) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"INSERT INTO users(username, email, password_hash, role) VALUES($1, $2, $3, $4) RETURNING id",
			user.Username, user.Email, user.PassHash, string(user.Role)).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("user")
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	return id, err
}

// UserByIdentifier resolves a user by username, email, or numeric id
// interchangeably.
func (s *Storage) UserByIdentifier(identifier string) (domain.User, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
	}
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = $1 OR email = $1", identifier))
}

func (s *Storage) UserByUsername(username string) (domain.User, error) {
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

func (s *Storage) UserById(id int64) (domain.User, error) {
	return scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// UpdateDetails changes username and email for a user.
func (s *Storage) UpdateDetails(id int64, username, email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE users SET username = $1, email = $2 WHERE id = $3", username, email, id)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("user")
			}
			return fmt.Errorf("failed to update user details: %w", err)
		}
		return expectOneRow(result, "user")
	})
}

func (s *Storage) UpdatePassword(id int64, passHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passHash, id)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		return expectOneRow(result, "user")
	})
}

// UsersByRole lists all users holding exactly the given role, newest first.
func (s *Storage) UsersByRole(role domain.Role) ([]domain.User, error) {
	rows, err := s.db.Query(
		"SELECT "+userColumns+" FROM users WHERE role = $1 ORDER BY joined_at DESC", string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var roleStr string
		if err := rows.Scan(&u.Id, &u.Username, &u.Email, &u.PassHash, &roleStr, &u.Banned, &u.BanReason, &u.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if u.Role, err = domain.ParseRole(roleStr); err != nil {
			return nil, fmt.Errorf("malformed user row %d: %w", u.Id, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// SetBanned updates the ban flag and reason for a user by username.
func (s *Storage) SetBanned(username string, banned bool, reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE users SET banned = $1, ban_reason = NULLIF($2, '') WHERE username = $3",
			banned, reason, username)
		if err != nil {
			return fmt.Errorf("failed to update ban status: %w", err)
		}
		return expectOneRow(result, "user")
	})
}

// expectOneRow converts a zero-rows-affected mutation into ErrNotFound.
// Existence was usually checked beforehand; zero rows means the target
// disappeared in between.
func expectOneRow(result sql.Result, entity string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", entity, internal_errors.ErrNotFound)
	}
	return nil
}
