package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"
)

type fakeOwner struct {
	name  string
	email string
}

// fakeStore keeps todos in memory and answers the due query with the same
// predicate the SQL uses.
type fakeStore struct {
	todos  map[int64]*dom.Todo
	owners map[int64]fakeOwner // by user id; absent = deleted user

	markErr map[int64]error
	dueErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		todos:   map[int64]*dom.Todo{},
		owners:  map[int64]fakeOwner{},
		markErr: map[int64]error{},
	}
}

func (s *fakeStore) DueUnnotified(_ context.Context, now time.Time) ([]dom.DueTodo, error) {
	if s.dueErr != nil {
		return nil, s.dueErr
	}
	var out []dom.DueTodo
	for _, t := range s.todos {
		if t.Reminder == nil || t.Reminder.After(now) || t.Notified {
			continue
		}
		d := dom.DueTodo{Todo: *t}
		if o, ok := s.owners[t.UserID]; ok {
			name, email := o.name, o.email
			d.OwnerName = &name
			d.OwnerEmail = &email
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStore) MarkNotified(_ context.Context, id int64) error {
	if err := s.markErr[id]; err != nil {
		return err
	}
	s.todos[id].Notified = true
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error // by recipient
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if err := m.failFor[to]; err != nil {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func at(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func minutes(base time.Time, n int) *time.Time {
	v := base.Add(time.Duration(n) * time.Minute)
	return &v
}

func TestScanDeliversDueAndMarksNotified(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.owners[1] = fakeOwner{name: "Ada", email: "ada@example.com"}
	due := base.Add(24 * time.Hour)
	store.todos[10] = &dom.Todo{ID: 10, UserID: 1, Title: "File taxes", Reminder: minutes(base, -1), DueDate: &due}

	mailer := &fakeMailer{failFor: map[string]error{}}
	r := New(store, mailer, time.Minute)
	r.Now = at(base)

	results, err := r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Err != nil || results[0].Skipped {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mailer.sent))
	}
	if mailer.sent[0].to != "ada@example.com" {
		t.Errorf("to = %q", mailer.sent[0].to)
	}
	if !store.todos[10].Notified {
		t.Error("todo not marked notified")
	}

	// Second scan finds nothing: notified is terminal.
	results, err = r.Scan(context.Background())
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("second scan results = %d, want 0", len(results))
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("second scan re-delivered, sent = %d", len(mailer.sent))
	}
}

func TestScanExcludesPendingAndNoReminder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.owners[1] = fakeOwner{name: "Ada", email: "ada@example.com"}
	store.todos[1] = &dom.Todo{ID: 1, UserID: 1, Title: "no reminder"}
	store.todos[2] = &dom.Todo{ID: 2, UserID: 1, Title: "future", Reminder: minutes(base, 5)}

	mailer := &fakeMailer{}
	r := New(store, mailer, time.Minute)
	r.Now = at(base)

	results, err := r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}

	// Advance past the pending reminder: the next scan catches it.
	r.Now = at(base.Add(6 * time.Minute))
	results, err = r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 1 || results[0].TodoID != 2 {
		t.Fatalf("results = %+v, want todo 2", results)
	}
}

func TestScanSkipsDanglingOwner(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.owners[1] = fakeOwner{name: "Ada", email: "ada@example.com"}
	// User 2 was deleted; their todo is orphaned.
	store.todos[1] = &dom.Todo{ID: 1, UserID: 2, Title: "orphan", Reminder: minutes(base, -1)}
	store.todos[2] = &dom.Todo{ID: 2, UserID: 1, Title: "owned", Reminder: minutes(base, -1)}

	mailer := &fakeMailer{}
	r := New(store, mailer, time.Minute)
	r.Now = at(base)

	results, err := r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	byID := map[int64]Result{}
	for _, res := range results {
		byID[res.TodoID] = res
	}
	if !byID[1].Skipped {
		t.Error("orphan todo not skipped")
	}
	if store.todos[1].Notified {
		t.Error("orphan todo must stay unnotified")
	}
	if byID[2].Skipped || byID[2].Err != nil {
		t.Errorf("owned todo result: %+v", byID[2])
	}
	if !store.todos[2].Notified {
		t.Error("owned todo not marked notified")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mailer.sent))
	}
}

func TestScanIsolatesPerItemFailures(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.owners[1] = fakeOwner{name: "Ada", email: "ada@example.com"}
	store.owners[2] = fakeOwner{name: "Ben", email: "ben@example.com"}
	store.todos[1] = &dom.Todo{ID: 1, UserID: 1, Title: "a", Reminder: minutes(base, -2)}
	store.todos[2] = &dom.Todo{ID: 2, UserID: 2, Title: "b", Reminder: minutes(base, -1)}

	mailer := &fakeMailer{failFor: map[string]error{"ada@example.com": errors.New("smtp down")}}
	r := New(store, mailer, time.Minute)
	r.Now = at(base)

	results, err := r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	byID := map[int64]Result{}
	for _, res := range results {
		byID[res.TodoID] = res
	}
	if byID[1].Err == nil {
		t.Error("expected error for failed send")
	}
	if store.todos[1].Notified {
		t.Error("failed todo must stay unnotified for the next scan")
	}
	if byID[2].Err != nil {
		t.Errorf("todo 2 should have succeeded: %v", byID[2].Err)
	}
	if !store.todos[2].Notified {
		t.Error("todo 2 not marked notified")
	}

	// Transport recovers: the failed todo is retried on the next scan.
	mailer.failFor = map[string]error{}
	results, err = r.Scan(context.Background())
	if err != nil {
		t.Fatalf("retry scan: %v", err)
	}
	if len(results) != 1 || results[0].TodoID != 1 || results[0].Err != nil {
		t.Fatalf("retry results = %+v", results)
	}
	if !store.todos[1].Notified {
		t.Error("retried todo not marked notified")
	}
}

func TestScanMarkFailureKeepsTodoEligible(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.owners[1] = fakeOwner{name: "Ada", email: "ada@example.com"}
	store.todos[1] = &dom.Todo{ID: 1, UserID: 1, Title: "a", Reminder: minutes(base, -1)}
	store.markErr[1] = errors.New("write failed")

	mailer := &fakeMailer{}
	r := New(store, mailer, time.Minute)
	r.Now = at(base)

	results, err := r.Scan(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("expected mark error in result")
	}
	// Delivery happened before the failed flag write: at-least-once means
	// the next scan will send again.
	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mailer.sent))
	}
	store.markErr = map[int64]error{}
	if _, err := r.Scan(context.Background()); err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("sent = %d, want 2 (duplicate allowed, loss is not)", len(mailer.sent))
	}
	if !store.todos[1].Notified {
		t.Error("todo not marked notified after recovery")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := newFakeStore()
	r := New(store, &fakeMailer{}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunSurvivesScanErrors(t *testing.T) {
	store := newFakeStore()
	store.dueErr = errors.New("db down")
	r := New(store, &fakeMailer{}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	// Several failing ticks must not kill the loop.
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run died on scan error")
	}
}
