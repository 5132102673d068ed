package domain

import "time"

// Action identifies what a user did. The set is closed; the persistent
// activity observer skips ActionPageView to keep the audit log readable.
type Action string

const (
	ActionPageView        Action = "PAGE_VIEW"
	ActionRegister        Action = "REGISTER"
	ActionLogin           Action = "LOGIN"
	ActionSetCreated      Action = "SET_CREATED"
	ActionSetEdited       Action = "SET_EDITED"
	ActionSetDeleted      Action = "SET_DELETED"
	ActionCardCreated     Action = "CARD_CREATED"
	ActionCardEdited      Action = "CARD_EDITED"
	ActionCardDeleted     Action = "CARD_DELETED"
	ActionSetShared       Action = "SET_SHARED"
	ActionSetUnshared     Action = "SET_UNSHARED"
	ActionSetReported     Action = "SET_REPORTED"
	ActionDetailsChanged  Action = "DETAILS_CHANGED"
	ActionPasswordChanged Action = "PASSWORD_CHANGED"
	ActionUserBanned      Action = "USER_BANNED"
	ActionUserUnbanned    Action = "USER_UNBANNED"
)

// ActivityRecord is one append-only audit row. Records are never mutated.
type ActivityRecord struct {
	Id        string    `json:"id"`
	UserId    int64     `json:"userId"`
	Action    Action    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivitySummary aggregates a user's audit rows, for the moderator view.
type ActivitySummary struct {
	Username string    `json:"username"`
	Actions  int64     `json:"actions"`
	LastSeen time.Time `json:"lastSeen"`
}
