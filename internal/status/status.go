// Package status defines the closed set of operation outcomes shared between
// the service layer and the presentation layer. Every service method resolves
// to exactly one Status; handlers map it to an HTTP code with HTTPCode().
// The token strings are a wire contract with the UI and must stay stable.
package status

import "net/http"

type Status string

const (
	Success             Status = "success"
	RegistrationSuccess Status = "registration-success"

	// Empty-but-valid outcomes. These are 200s with empty payloads,
	// distinct from not-found.
	NoSets       Status = "no_sets"
	NoSharedSets Status = "no_shared_sets"
	NoCards      Status = "no_cards"
	NoData       Status = "no_data"

	MissingFields    Status = "missing-fields"
	BadPassword      Status = "bad-password"
	MismatchPassword Status = "mismatch-password"
	InvalidAction    Status = "invalid-action"

	WrongPassword     Status = "wrong-password"
	IncorrectPassword Status = "incorrect-password"
	Banned            Status = "banned"

	SetDoesNotExist  Status = "set-does-not-exist"
	DoesNotExist     Status = "does-not-exist"
	UserDoesNotExist Status = "user-does-not-exist"

	NameUsed      Status = "name-used"
	UsernameUsed  Status = "username-used"
	EmailUsed     Status = "email-used"
	AlreadyShared Status = "already-shared"

	Error Status = "error"
)

func (s Status) HTTPCode() int {
	switch s {
	case Success, NoSets, NoSharedSets, NoCards, NoData:
		return http.StatusOK
	case RegistrationSuccess:
		return http.StatusCreated
	case MissingFields, BadPassword, MismatchPassword, InvalidAction:
		return http.StatusBadRequest
	case WrongPassword, IncorrectPassword:
		return http.StatusUnauthorized
	case Banned:
		return http.StatusForbidden
	case SetDoesNotExist, DoesNotExist, UserDoesNotExist:
		return http.StatusNotFound
	case NameUsed, UsernameUsed, EmailUsed, AlreadyShared:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// OK reports whether the status carries a payload-bearing or empty-but-valid
// outcome rather than a failure.
func (s Status) OK() bool {
	return s.HTTPCode() < 400
}
