package service

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// UserStorage is the persistence surface the user service needs.
type UserStorage interface {
	SaveUser(user domain.User) (int64, error)
	UserByIdentifier(identifier string) (domain.User, error)
	UserByUsername(username string) (domain.User, error)
	UserById(id int64) (domain.User, error)
	UpdateDetails(id int64, username, email string) error
	UpdatePassword(id int64, passHash string) error
	UsersByRole(role domain.Role) ([]domain.User, error)
	SetBanned(username string, banned bool, reason string) error
}

type User struct {
	storage UserStorage
}

func NewUser(storage UserStorage) *User {
	return &User{storage: storage}
}

// validPassword enforces the password policy: at least 8 characters with at
// least one uppercase letter.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, r := range password {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Register creates a Regular account and returns it as stored, with the
// sanitized username and the assigned id. Confirmation mismatch is reported
// before password strength so the caller always learns about the typo first.
func (u *User) Register(username, email, password, confirm string) (domain.User, status.Status) {
	if username == "" || email == "" || password == "" || confirm == "" {
		return domain.User{}, status.MissingFields
	}
	if password != confirm {
		return domain.User{}, status.MismatchPassword
	}
	if !validPassword(password) {
		return domain.User{}, status.BadPassword
	}

	username = sanitizeText(username)

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, status.Error
	}

	user := domain.User{
		Username: username,
		Email:    email,
		PassHash: string(passHash),
		Role:     domain.RoleRegular,
	}
	id, err := u.storage.SaveUser(user)
	if err != nil {
		if errors.Is(err, internal_errors.ErrConflict) {
			return domain.User{}, u.registrationConflict(username)
		}
		logger.Log.Error("failed to save user", "username", username, "error", err)
		return domain.User{}, status.Error
	}
	user.Id = id
	return user, status.RegistrationSuccess
}

// registrationConflict decides which unique constraint fired. The insert is
// the source of truth; this lookup only picks the right token.
func (u *User) registrationConflict(username string) status.Status {
	if _, err := u.storage.UserByUsername(username); err == nil {
		return status.UsernameUsed
	}
	return status.EmailUsed
}

// Login resolves an identifier (username, email or numeric id) and verifies
// the password. Banned accounts are refused after a successful password
// check so the outcome does not leak credentials validity.
func (u *User) Login(identifier, password string) (domain.User, status.Status) {
	if identifier == "" || password == "" {
		return domain.User{}, status.MissingFields
	}

	user, err := u.storage.UserByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return domain.User{}, status.DoesNotExist
		}
		logger.Log.Error("failed to look up user", "identifier", identifier, "error", err)
		return domain.User{}, status.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, status.WrongPassword
	}

	if user.Banned {
		logger.Log.Warn("banned user attempted login", "username", user.Username, "reason", user.BanReason)
		return domain.User{}, status.Banned
	}

	return user, status.Success
}

// Get resolves a user by identifier without a password check.
func (u *User) Get(identifier string) (domain.User, status.Status) {
	user, err := u.storage.UserByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return domain.User{}, status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "identifier", identifier, "error", err)
		return domain.User{}, status.Error
	}
	return user, status.Success
}

// EditDetails changes username and email after re-verifying the current
// password.
func (u *User) EditDetails(id int64, newUsername, newEmail, currentPassword string) status.Status {
	if newUsername == "" || newEmail == "" || currentPassword == "" {
		return status.MissingFields
	}

	user, err := u.storage.UserById(id)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "user_id", id, "error", err)
		return status.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(currentPassword)); err != nil {
		return status.IncorrectPassword
	}

	newUsername = sanitizeText(newUsername)
	if err := u.storage.UpdateDetails(id, newUsername, newEmail); err != nil {
		if errors.Is(err, internal_errors.ErrConflict) {
			return u.detailsConflict(id, newUsername)
		}
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to update user details", "user_id", id, "error", err)
		return status.Error
	}
	return status.Success
}

func (u *User) detailsConflict(id int64, username string) status.Status {
	if other, err := u.storage.UserByUsername(username); err == nil && other.Id != id {
		return status.UsernameUsed
	}
	return status.EmailUsed
}

// ChangePassword verifies the current password and applies the policy to the
// new one.
func (u *User) ChangePassword(id int64, current, newPassword, confirm string) status.Status {
	if current == "" || newPassword == "" || confirm == "" {
		return status.MissingFields
	}
	if newPassword != confirm {
		return status.MismatchPassword
	}
	if !validPassword(newPassword) {
		return status.BadPassword
	}

	user, err := u.storage.UserById(id)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "user_id", id, "error", err)
		return status.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(current)); err != nil {
		return status.IncorrectPassword
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return status.Error
	}
	if err := u.storage.UpdatePassword(id, string(passHash)); err != nil {
		logger.Log.Error("failed to update password", "user_id", id, "error", err)
		return status.Error
	}
	return status.Success
}

// ByRole lists users holding exactly the given role.
func (u *User) ByRole(role domain.Role) ([]domain.User, status.Status) {
	users, err := u.storage.UsersByRole(role)
	if err != nil {
		logger.Log.Error("failed to list users", "role", string(role), "error", err)
		return nil, status.Error
	}
	if len(users) == 0 {
		return []domain.User{}, status.NoData
	}
	return users, status.Success
}

// Ban flags a Regular user. Moderators and administrators cannot be banned
// through this path.
func (u *User) Ban(username, reason string) status.Status {
	if username == "" || reason == "" {
		return status.MissingFields
	}

	target, err := u.storage.UserByUsername(username)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to look up user", "username", username, "error", err)
		return status.Error
	}
	if target.Role != domain.RoleRegular {
		return status.InvalidAction
	}

	if err := u.storage.SetBanned(username, true, sanitizeText(reason)); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to ban user", "username", username, "error", err)
		return status.Error
	}
	return status.Success
}

// Unban clears the ban flag.
func (u *User) Unban(username string) status.Status {
	if username == "" {
		return status.MissingFields
	}

	if err := u.storage.SetBanned(username, false, ""); err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return status.UserDoesNotExist
		}
		logger.Log.Error("failed to unban user", "username", username, "error", err)
		return status.Error
	}
	return status.Success
}
