package service

import (
	"testing"
	"time"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

type recordingObserver struct {
	events []ActivityEvent
}

func (o *recordingObserver) Update(event ActivityEvent) {
	o.events = append(o.events, event)
}

type panickyObserver struct{}

func (panickyObserver) Update(ActivityEvent) {
	panic("observer failure")
}

func TestActivitySubject(t *testing.T) {
	user := domain.User{Id: 1, Username: "alice"}

	t.Run("Attach twice delivers once", func(t *testing.T) {
		subject := NewActivitySubject()
		obs := &recordingObserver{}
		subject.Attach(obs)
		subject.Attach(obs)

		subject.Notify(user, domain.ActionLogin, "")
		if len(obs.events) != 1 {
			t.Errorf("got %d deliveries, want 1", len(obs.events))
		}
	})

	t.Run("Detach stops future deliveries", func(t *testing.T) {
		subject := NewActivitySubject()
		obs := &recordingObserver{}
		subject.Attach(obs)
		subject.Notify(user, domain.ActionLogin, "")
		subject.Detach(obs)
		subject.Notify(user, domain.ActionLogin, "")
		if len(obs.events) != 1 {
			t.Errorf("got %d deliveries, want 1", len(obs.events))
		}
	})

	t.Run("Detach of unattached observer is a no-op", func(t *testing.T) {
		subject := NewActivitySubject()
		subject.Detach(&recordingObserver{})
		subject.Notify(user, domain.ActionLogin, "")
	})

	t.Run("Panicking observer does not stop fan-out", func(t *testing.T) {
		subject := NewActivitySubject()
		obs := &recordingObserver{}
		subject.Attach(panickyObserver{})
		subject.Attach(obs)

		subject.Notify(user, domain.ActionSetCreated, "set 5")
		if len(obs.events) != 1 {
			t.Fatalf("got %d deliveries, want 1", len(obs.events))
		}
		if obs.events[0].Action != domain.ActionSetCreated || obs.events[0].Details != "set 5" {
			t.Errorf("unexpected event: %+v", obs.events[0])
		}
	})

	t.Run("DetachAll", func(t *testing.T) {
		subject := NewActivitySubject()
		obs := &recordingObserver{}
		subject.Attach(obs)
		subject.DetachAll()
		subject.Notify(user, domain.ActionLogin, "")
		if len(obs.events) != 0 {
			t.Errorf("got %d deliveries, want 0", len(obs.events))
		}
	})
}

type mockActivityWriter struct {
	saved []domain.ActivityRecord
	err   error
}

func (m *mockActivityWriter) SaveActivity(record domain.ActivityRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, record)
	return nil
}

func TestPersistentActivityLogger(t *testing.T) {
	user := domain.User{Id: 1, Username: "alice"}

	t.Run("Page views are skipped", func(t *testing.T) {
		writer := &mockActivityWriter{}
		l := NewPersistentActivityLogger(writer)
		l.Update(ActivityEvent{User: user, Action: domain.ActionPageView, At: time.Now()})
		if len(writer.saved) != 0 {
			t.Errorf("got %d records, want 0", len(writer.saved))
		}
	})

	t.Run("Other actions persist with an id", func(t *testing.T) {
		writer := &mockActivityWriter{}
		l := NewPersistentActivityLogger(writer)
		l.Update(ActivityEvent{User: user, Action: domain.ActionCardCreated, Details: "card 3", At: time.Now()})
		if len(writer.saved) != 1 {
			t.Fatalf("got %d records, want 1", len(writer.saved))
		}
		rec := writer.saved[0]
		if rec.Id == "" || rec.UserId != 1 || rec.Action != domain.ActionCardCreated {
			t.Errorf("unexpected record: %+v", rec)
		}
	})
}

// mockActivityReader mocks the ActivityReader interface.
type mockActivityReader struct {
	byUserFunc    func(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error)
	summariesFunc func(since time.Time) ([]domain.ActivitySummary, error)
}

func (m *mockActivityReader) ActivityByUser(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error) {
	if m.byUserFunc != nil {
		return m.byUserFunc(userId, since, limit)
	}
	return nil, nil
}

func (m *mockActivityReader) ActivitySummaries(since time.Time) ([]domain.ActivitySummary, error) {
	if m.summariesFunc != nil {
		return m.summariesFunc(since)
	}
	return nil, nil
}

func TestActivityForUser(t *testing.T) {
	t.Run("Invalid period", func(t *testing.T) {
		a := NewActivity(&mockActivityReader{}, 200)
		if _, st := a.ForUser(1, "monthly"); st != status.InvalidAction {
			t.Errorf("ForUser() = %s, want invalid-action", st)
		}
	})

	t.Run("Weekly cutoff passed to storage", func(t *testing.T) {
		var gotSince time.Time
		var gotLimit int
		a := NewActivity(&mockActivityReader{
			byUserFunc: func(userId int64, since time.Time, limit int) ([]domain.ActivityRecord, error) {
				gotSince, gotLimit = since, limit
				return []domain.ActivityRecord{{Id: "r1", UserId: userId}}, nil
			},
		}, 200)
		if _, st := a.ForUser(1, "weekly"); st != status.Success {
			t.Fatalf("ForUser() = %s, want success", st)
		}
		if gotSince.IsZero() {
			t.Error("weekly period should produce a nonzero cutoff")
		}
		if gotLimit != 200 {
			t.Errorf("limit = %d, want 200", gotLimit)
		}
	})

	t.Run("Alltime with no rows is no_data", func(t *testing.T) {
		a := NewActivity(&mockActivityReader{}, 200)
		records, st := a.ForUser(1, "alltime")
		if st != status.NoData {
			t.Errorf("ForUser() = %s, want no_data", st)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("expected empty slice, got %v", records)
		}
	})
}

func TestActivitySummaries(t *testing.T) {
	t.Run("Invalid period", func(t *testing.T) {
		a := NewActivity(&mockActivityReader{}, 200)
		if _, st := a.Summaries("hourly"); st != status.InvalidAction {
			t.Errorf("Summaries() = %s, want invalid-action", st)
		}
	})

	t.Run("Populated", func(t *testing.T) {
		a := NewActivity(&mockActivityReader{
			summariesFunc: func(time.Time) ([]domain.ActivitySummary, error) {
				return []domain.ActivitySummary{{Username: "alice", Actions: 3}}, nil
			},
		}, 200)
		summaries, st := a.Summaries("alltime")
		if st != status.Success || len(summaries) != 1 {
			t.Errorf("Summaries() = %v, %s", summaries, st)
		}
	})
}
