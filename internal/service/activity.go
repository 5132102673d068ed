package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/logger"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// ActivityEvent is the triple handed to every observer.
type ActivityEvent struct {
	User    domain.User
	Action  domain.Action
	Details string
	At      time.Time
}

type ActivityObserver interface {
	Update(event ActivityEvent)
}

// ActivitySubject fans events out to attached observers, synchronously and in
// attachment order. One instance is constructed at startup and injected into
// everything that publishes events; there is no package-level global.
type ActivitySubject struct {
	mu        sync.Mutex
	observers []ActivityObserver
}

func NewActivitySubject() *ActivitySubject {
	return &ActivitySubject{}
}

// Attach registers an observer. Attaching the same observer twice is a no-op,
// so an event is delivered at most once per observer.
func (s *ActivitySubject) Attach(o ActivityObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.observers {
		if existing == o {
			return
		}
	}
	s.observers = append(s.observers, o)
}

// Detach removes a previously attached observer; no-op if absent.
func (s *ActivitySubject) Detach(o ActivityObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.observers {
		if existing == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// DetachAll drops every observer; used during shutdown.
func (s *ActivitySubject) DetachAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = nil
}

// Notify delivers the event to every attached observer. Each observer runs
// inside its own recover boundary so one failing observer cannot stop the
// rest of the fan-out.
func (s *ActivitySubject) Notify(user domain.User, action domain.Action, details string) {
	s.mu.Lock()
	snapshot := make([]ActivityObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.Unlock()

	event := ActivityEvent{User: user, Action: action, Details: details, At: time.Now().UTC()}
	for _, o := range snapshot {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Log.Error("activity observer panicked", "action", string(action), "panic", r)
				}
			}()
			o.Update(event)
		}()
	}
}

// ConsoleActivityLogger writes a human-readable line per event.
type ConsoleActivityLogger struct {
	log *slog.Logger
}

func NewConsoleActivityLogger(log *slog.Logger) *ConsoleActivityLogger {
	return &ConsoleActivityLogger{log: log}
}

func (l *ConsoleActivityLogger) Update(event ActivityEvent) {
	l.log.Info("user activity",
		"at", event.At.Format(time.RFC3339),
		"username", event.User.Username,
		"action", string(event.Action),
		"details", event.Details)
}

// ActivityWriter is the storage surface the persistent observer needs.
type ActivityWriter interface {
	SaveActivity(record domain.ActivityRecord) error
}

// PersistentActivityLogger appends events to the audit log. Page views are
// skipped to keep the log from flooding with navigation noise.
type PersistentActivityLogger struct {
	storage ActivityWriter
}

func NewPersistentActivityLogger(storage ActivityWriter) *PersistentActivityLogger {
	return &PersistentActivityLogger{storage: storage}
}

func (l *PersistentActivityLogger) Update(event ActivityEvent) {
	if event.Action == domain.ActionPageView {
		return
	}
	record := domain.ActivityRecord{
		Id:        uuid.NewString(),
		UserId:    event.User.Id,
		Action:    event.Action,
		Details:   event.Details,
		CreatedAt: event.At,
	}
	if err := l.storage.SaveActivity(record); err != nil {
		logger.Log.Error("failed to persist activity record", "user_id", event.User.Id, "action", string(event.Action), "error", err)
	}
}

// ActivityReader is the storage surface for audit queries.
type ActivityReader interface {
	ActivityByUser(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error)
	ActivitySummaries(since time.Time) ([]domain.ActivitySummary, error)
}

// Activity serves read queries over the audit log.
type Activity struct {
	storage ActivityReader
	limit   int
}

func NewActivity(storage ActivityReader, limit int) *Activity {
	return &Activity{storage: storage, limit: limit}
}

// periodStart maps a time_period query value to a cutoff. Zero time means
// all-time.
func periodStart(period string) (time.Time, bool) {
	switch period {
	case "weekly":
		return time.Now().UTC().AddDate(0, 0, -7), true
	case "alltime":
		return time.Time{}, true
	}
	return time.Time{}, false
}

// ForUser returns a user's audit rows for the period. Empty is a valid
// outcome tagged NoData, distinct from an invalid period.
func (a *Activity) ForUser(userId int64, period string) ([]domain.ActivityRecord, status.Status) {
	since, ok := periodStart(period)
	if !ok {
		return nil, status.InvalidAction
	}
	records, err := a.storage.ActivityByUser(userId, since, a.limit)
	if err != nil {
		logger.Log.Error("failed to fetch user activity", "user_id", userId, "error", err)
		return nil, status.Error
	}
	if len(records) == 0 {
		return []domain.ActivityRecord{}, status.NoData
	}
	return records, status.Success
}

// Summaries returns per-username aggregates for the period.
func (a *Activity) Summaries(period string) ([]domain.ActivitySummary, status.Status) {
	since, ok := periodStart(period)
	if !ok {
		return nil, status.InvalidAction
	}
	summaries, err := a.storage.ActivitySummaries(since)
	if err != nil {
		logger.Log.Error("failed to fetch activity summaries", "error", err)
		return nil, status.Error
	}
	if len(summaries) == 0 {
		return []domain.ActivitySummary{}, status.NoData
	}
	return summaries, status.Success
}
