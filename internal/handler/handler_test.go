package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck-dev/quizdeck/internal/config"
	"github.com/quizdeck-dev/quizdeck/internal/domain"
	internal_errors "github.com/quizdeck-dev/quizdeck/internal/errors"
	"github.com/quizdeck-dev/quizdeck/internal/jwt"
	"github.com/quizdeck-dev/quizdeck/internal/middleware"
	"github.com/quizdeck-dev/quizdeck/internal/service"
)

// fakeStorage is an in-memory stand-in for the postgres layer, implementing
// every storage interface the services consume with the same sentinel error
// contract.
type fakeStorage struct {
	users      map[int64]domain.User
	sets       map[int64]domain.CardSet
	cards      map[int64]domain.Card
	shares     map[[2]int64]bool
	reports    []domain.Report
	activity   []domain.ActivityRecord
	nextUserId int64
	nextSetId  int64
	nextCardId int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:  map[int64]domain.User{},
		sets:   map[int64]domain.CardSet{},
		cards:  map[int64]domain.Card{},
		shares: map[[2]int64]bool{},
	}
}

func (f *fakeStorage) SaveUser(user domain.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, internal_errors.ErrConflict
		}
	}
	f.nextUserId++
	user.Id = f.nextUserId
	user.JoinedAt = time.Now().UTC()
	f.users[user.Id] = user
	return user.Id, nil
}

func (f *fakeStorage) UserByIdentifier(identifier string) (domain.User, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return f.UserById(id)
	}
	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return domain.User{}, internal_errors.ErrNotFound
}

func (f *fakeStorage) UserByUsername(username string) (domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return domain.User{}, internal_errors.ErrNotFound
}

func (f *fakeStorage) UserById(id int64) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, internal_errors.ErrNotFound
	}
	return user, nil
}

func (f *fakeStorage) UpdateDetails(id int64, username, email string) error {
	user, ok := f.users[id]
	if !ok {
		return internal_errors.ErrNotFound
	}
	for _, other := range f.users {
		if other.Id != id && (other.Username == username || other.Email == email) {
			return internal_errors.ErrConflict
		}
	}
	user.Username = username
	user.Email = email
	f.users[id] = user
	return nil
}

func (f *fakeStorage) UpdatePassword(id int64, passHash string) error {
	user, ok := f.users[id]
	if !ok {
		return internal_errors.ErrNotFound
	}
	user.PassHash = passHash
	f.users[id] = user
	return nil
}

func (f *fakeStorage) UsersByRole(role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeStorage) SetBanned(username string, banned bool, reason string) error {
	user, err := f.UserByUsername(username)
	if err != nil {
		return err
	}
	user.Banned = banned
	user.BanReason = reason
	f.users[user.Id] = user
	return nil
}

func (f *fakeStorage) SaveSet(set domain.CardSet) (int64, error) {
	for _, existing := range f.sets {
		if existing.OwnerId == set.OwnerId && existing.Name == set.Name {
			return 0, internal_errors.ErrConflict
		}
	}
	f.nextSetId++
	set.Id = f.nextSetId
	set.CreatedAt = time.Now().UTC()
	f.sets[set.Id] = set
	return set.Id, nil
}

func (f *fakeStorage) Set(setId int64) (domain.CardSet, error) {
	set, ok := f.sets[setId]
	if !ok {
		return domain.CardSet{}, internal_errors.ErrNotFound
	}
	return set, nil
}

func (f *fakeStorage) SetsByOwner(ownerId int64) ([]domain.CardSet, error) {
	var out []domain.CardSet
	for _, set := range f.sets {
		if set.OwnerId == ownerId {
			out = append(out, set)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateSet(set domain.CardSet) error {
	existing, ok := f.sets[set.Id]
	if !ok || existing.OwnerId != set.OwnerId {
		return internal_errors.ErrNotFound
	}
	for _, other := range f.sets {
		if other.Id != set.Id && other.OwnerId == set.OwnerId && other.Name == set.Name {
			return internal_errors.ErrConflict
		}
	}
	set.CreatedAt = existing.CreatedAt
	f.sets[set.Id] = set
	return nil
}

func (f *fakeStorage) DeleteSet(ownerId, setId int64) error {
	set, ok := f.sets[setId]
	if !ok || set.OwnerId != ownerId {
		return internal_errors.ErrNotFound
	}
	delete(f.sets, setId)
	for id, card := range f.cards {
		if card.SetId == setId {
			delete(f.cards, id)
		}
	}
	for key := range f.shares {
		if key[1] == setId {
			delete(f.shares, key)
		}
	}
	return nil
}

func (f *fakeStorage) SaveReport(report domain.Report) (int64, error) {
	if _, ok := f.sets[report.SetId]; !ok {
		return 0, internal_errors.ErrNotFound
	}
	report.Id = int64(len(f.reports) + 1)
	report.CreatedAt = time.Now().UTC()
	f.reports = append(f.reports, report)
	return report.Id, nil
}

func (f *fakeStorage) SaveCard(card domain.Card) (int64, error) {
	if _, ok := f.sets[card.SetId]; !ok {
		return 0, internal_errors.ErrNotFound
	}
	f.nextCardId++
	card.Id = f.nextCardId
	f.cards[card.Id] = card
	return card.Id, nil
}

func (f *fakeStorage) CardsBySet(setId int64) ([]domain.Card, error) {
	var out []domain.Card
	for _, card := range f.cards {
		if card.SetId == setId {
			out = append(out, card)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateCard(card domain.Card) error {
	existing, ok := f.cards[card.Id]
	if !ok || existing.SetId != card.SetId {
		return internal_errors.ErrNotFound
	}
	f.cards[card.Id] = card
	return nil
}

func (f *fakeStorage) DeleteCard(cardId, setId int64) error {
	card, ok := f.cards[cardId]
	if !ok || card.SetId != setId {
		return internal_errors.ErrNotFound
	}
	delete(f.cards, cardId)
	return nil
}

func (f *fakeStorage) SaveShare(share domain.SharedSet) error {
	key := [2]int64{share.UserId, share.SetId}
	if f.shares[key] {
		return internal_errors.ErrConflict
	}
	if _, ok := f.sets[share.SetId]; !ok {
		return internal_errors.ErrNotFound
	}
	f.shares[key] = true
	return nil
}

func (f *fakeStorage) DeleteShare(share domain.SharedSet) error {
	key := [2]int64{share.UserId, share.SetId}
	if !f.shares[key] {
		return internal_errors.ErrNotFound
	}
	delete(f.shares, key)
	return nil
}

func (f *fakeStorage) SetsSharedWith(userId int64) ([]domain.CardSet, error) {
	var out []domain.CardSet
	for key := range f.shares {
		if key[0] == userId {
			if set, ok := f.sets[key[1]]; ok {
				out = append(out, set)
			}
		}
	}
	return out, nil
}

func (f *fakeStorage) IsSharedWith(userId, setId int64) (bool, error) {
	return f.shares[[2]int64{userId, setId}], nil
}

func (f *fakeStorage) SaveActivity(record domain.ActivityRecord) error {
	f.activity = append(f.activity, record)
	return nil
}

func (f *fakeStorage) ActivityByUser(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error) {
	var out []domain.ActivityRecord
	for _, rec := range f.activity {
		if rec.UserId == userId && (since.IsZero() || rec.CreatedAt.After(since)) {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStorage) ActivitySummaries(since time.Time) ([]domain.ActivitySummary, error) {
	counts := map[int64]*domain.ActivitySummary{}
	for _, rec := range f.activity {
		if !since.IsZero() && !rec.CreatedAt.After(since) {
			continue
		}
		summary, ok := counts[rec.UserId]
		if !ok {
			user := f.users[rec.UserId]
			summary = &domain.ActivitySummary{Username: user.Username}
			counts[rec.UserId] = summary
		}
		summary.Actions++
		if rec.CreatedAt.After(summary.LastSeen) {
			summary.LastSeen = rec.CreatedAt
		}
	}
	var out []domain.ActivitySummary
	for _, summary := range counts {
		out = append(out, *summary)
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Public:  config.Public{JwtTTLSeconds: 3600, ActivityPageLimit: 200},
		Private: config.Private{JwtKey: "test-secret"},
	}
}

// newTestHandler wires a Handler onto the in-memory storage, including the
// persistent activity observer so audit side effects are visible in tests.
func newTestHandler(t *testing.T) (*Handler, *fakeStorage) {
	t.Helper()
	storage := newFakeStorage()
	cfg := testConfig()

	subject := service.NewActivitySubject()
	subject.Attach(service.NewPersistentActivityLogger(storage))

	svc := &service.Services{
		Users:    service.NewUser(storage),
		Sets:     service.NewSet(storage),
		Cards:    service.NewCard(storage),
		Shares:   service.NewShare(storage),
		Activity: service.NewActivity(storage, cfg.Public.ActivityPageLimit),
		Subject:  subject,
	}
	return New(svc, cfg, jwt.New(cfg.JwtKey(), cfg.JwtTTL())), storage
}

// seedUser inserts a user with a known password and returns it.
func seedUser(t *testing.T, storage *fakeStorage, username string, role domain.Role) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := storage.SaveUser(domain.User{
		Username: username,
		Email:    username + "@x.com",
		PassHash: string(hash),
		Role:     role,
	})
	require.NoError(t, err)
	return storage.users[id]
}

// authed stamps the session user into the request context the way the auth
// middleware does.
func authed(r *http.Request, user domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserClaimsKey, &user)
	return r.WithContext(ctx)
}

type response struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
