package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleRegular       Role = "REGULAR"
	RoleModerator     Role = "MODERATOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// ParseRole validates a role string coming from an untrusted source
// (session claims, database rows). Unknown values are rejected rather than
// defaulted so a malformed session can never escalate.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRegular, RoleModerator, RoleAdministrator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) rank() int {
	switch r {
	case RoleRegular:
		return 1
	case RoleModerator:
		return 2
	case RoleAdministrator:
		return 3
	}
	return 0
}

// AtLeast reports whether r grants every capability of floor.
func (r Role) AtLeast(floor Role) bool {
	return r.rank() >= floor.rank() && r.rank() > 0
}

type User struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"`
	Role      Role      `json:"role"`
	Banned    bool      `json:"banned"`
	BanReason string    `json:"banReason,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
}
