package service

import (
	"fmt"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// Services bundles the entity services and the activity subject so role
// variants can be constructed per request.
type Services struct {
	Users    *User
	Sets     *Set
	Cards    *Card
	Shares   *Share
	Activity *Activity
	Subject  *ActivitySubject
}

// Regular is the capability set every authenticated user holds: their own
// sets and cards, sharing, their own activity, and self-service account
// changes. The variant itself is the capability token — holding a *Regular
// only ever touches the bound user's data, so the methods carry no
// authorization checks of their own.
type Regular struct {
	user domain.User
	svc  *Services
}

func NewRegular(user domain.User, svc *Services) *Regular {
	return &Regular{user: user, svc: svc}
}

func (r *Regular) User() domain.User { return r.user }

func (r *Regular) notify(action domain.Action, details string) {
	r.svc.Subject.Notify(r.user, action, details)
}

func (r *Regular) Sets() ([]domain.CardSet, status.Status) {
	return r.svc.Sets.All(r.user.Id)
}

func (r *Regular) Set(setId int64) (domain.CardSet, status.Status) {
	return r.svc.Sets.Get(r.user.Id, setId)
}

func (r *Regular) NewSet(name string, category domain.Category, subcategory, description string, public bool) (int64, status.Status) {
	id, st := r.svc.Sets.Add(domain.CardSet{
		OwnerId:     r.user.Id,
		Name:        name,
		Category:    category,
		Subcategory: subcategory,
		Description: description,
		Public:      public,
	})
	if st == status.Success {
		r.notify(domain.ActionSetCreated, name)
	}
	return id, st
}

func (r *Regular) EditSet(setId int64, name string, category domain.Category, subcategory, description string, public bool) status.Status {
	st := r.svc.Sets.Edit(domain.CardSet{
		Id:          setId,
		OwnerId:     r.user.Id,
		Name:        name,
		Category:    category,
		Subcategory: subcategory,
		Description: description,
		Public:      public,
	})
	if st == status.Success {
		r.notify(domain.ActionSetEdited, name)
	}
	return st
}

func (r *Regular) DeleteSet(setId int64) status.Status {
	st := r.svc.Sets.Delete(r.user.Id, setId)
	if st == status.Success {
		r.notify(domain.ActionSetDeleted, fmt.Sprintf("set %d", setId))
	}
	return st
}

func (r *Regular) ReportSet(setId int64, reason string) status.Status {
	st := r.svc.Sets.Report(setId, reason)
	if st == status.Success {
		r.notify(domain.ActionSetReported, fmt.Sprintf("set %d", setId))
	}
	return st
}

func (r *Regular) Cards(setId int64) ([]domain.Card, status.Status) {
	return r.svc.Cards.Cards(r.user.Id, setId)
}

func (r *Regular) NewCard(setId int64, front, back string) (int64, status.Status) {
	id, st := r.svc.Cards.Add(r.user.Id, domain.Card{SetId: setId, Front: front, Back: back})
	if st == status.Success {
		r.notify(domain.ActionCardCreated, fmt.Sprintf("set %d", setId))
	}
	return id, st
}

func (r *Regular) EditCard(cardId, setId int64, front, back string) status.Status {
	st := r.svc.Cards.Edit(r.user.Id, domain.Card{Id: cardId, SetId: setId, Front: front, Back: back})
	if st == status.Success {
		r.notify(domain.ActionCardEdited, fmt.Sprintf("card %d", cardId))
	}
	return st
}

func (r *Regular) DeleteCard(cardId, setId int64) status.Status {
	st := r.svc.Cards.Delete(r.user.Id, cardId, setId)
	if st == status.Success {
		r.notify(domain.ActionCardDeleted, fmt.Sprintf("card %d", cardId))
	}
	return st
}

func (r *Regular) ShareSet(setId int64, targetUsername string) status.Status {
	st := r.svc.Shares.Share(r.user.Id, setId, targetUsername)
	if st == status.Success {
		r.notify(domain.ActionSetShared, fmt.Sprintf("set %d with %s", setId, targetUsername))
	}
	return st
}

// UnshareSet withdraws access. With a target username the owner revokes that
// user's share; without one the caller removes a set shared to them.
func (r *Regular) UnshareSet(setId int64, targetUsername string) status.Status {
	var st status.Status
	if targetUsername == "" {
		st = r.svc.Shares.Unshare(r.user.Id, setId)
	} else {
		st = r.svc.Shares.Revoke(r.user.Id, setId, targetUsername)
	}
	if st == status.Success {
		r.notify(domain.ActionSetUnshared, fmt.Sprintf("set %d", setId))
	}
	return st
}

func (r *Regular) SharedSets() ([]domain.CardSet, status.Status) {
	return r.svc.Shares.SharedWith(r.user.Id)
}

func (r *Regular) Activity(period string) ([]domain.ActivityRecord, status.Status) {
	return r.svc.Activity.ForUser(r.user.Id, period)
}

func (r *Regular) EditDetails(newUsername, newEmail, currentPassword string) status.Status {
	st := r.svc.Users.EditDetails(r.user.Id, newUsername, newEmail, currentPassword)
	if st == status.Success {
		r.notify(domain.ActionDetailsChanged, "")
	}
	return st
}

func (r *Regular) ChangePassword(current, newPassword, confirm string) status.Status {
	st := r.svc.Users.ChangePassword(r.user.Id, current, newPassword, confirm)
	if st == status.Success {
		r.notify(domain.ActionPasswordChanged, "")
	}
	return st
}

// Moderator extends Regular with oversight of Regular users.
type Moderator struct {
	Regular
}

// NewModerator refuses to mint the variant for a session below the
// Moderator floor, so a forged call site still fails closed.
func NewModerator(user domain.User, svc *Services) (*Moderator, error) {
	if !user.Role.AtLeast(domain.RoleModerator) {
		return nil, fmt.Errorf("role %s is below moderator", user.Role)
	}
	return &Moderator{Regular{user: user, svc: svc}}, nil
}

// RegularUsers lists all Regular accounts with their ban status.
func (m *Moderator) RegularUsers() ([]domain.User, status.Status) {
	return m.svc.Users.ByRole(domain.RoleRegular)
}

// UserActivity returns a named user's audit rows for the period.
func (m *Moderator) UserActivity(username, period string) ([]domain.ActivityRecord, status.Status) {
	target, st := m.svc.Users.Get(username)
	if st != status.Success {
		return nil, st
	}
	return m.svc.Activity.ForUser(target.Id, period)
}

// AllUsersActivity returns activity aggregated by username for the period.
func (m *Moderator) AllUsersActivity(period string) ([]domain.ActivitySummary, status.Status) {
	return m.svc.Activity.Summaries(period)
}

func (m *Moderator) Ban(username, reason string) status.Status {
	st := m.svc.Users.Ban(username, reason)
	if st == status.Success {
		m.notify(domain.ActionUserBanned, username)
	}
	return st
}

func (m *Moderator) Unban(username string) status.Status {
	st := m.svc.Users.Unban(username)
	if st == status.Success {
		m.notify(domain.ActionUserUnbanned, username)
	}
	return st
}

// Administrator extends Moderator with visibility into the moderator roster.
type Administrator struct {
	Moderator
}

func NewAdministrator(user domain.User, svc *Services) (*Administrator, error) {
	if !user.Role.AtLeast(domain.RoleAdministrator) {
		return nil, fmt.Errorf("role %s is below administrator", user.Role)
	}
	return &Administrator{Moderator{Regular{user: user, svc: svc}}}, nil
}

func (a *Administrator) Moderators() ([]domain.User, status.Status) {
	return a.svc.Users.ByRole(domain.RoleModerator)
}
