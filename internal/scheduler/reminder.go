// Package scheduler runs the recurring reminder scan: find due, unnotified
// todos, mail their owners, and persist the notified flag.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"
	"github.com/MrTochi/focus-backend/internal/mail"
)

// Store is the slice of todo persistence the scan needs.
type Store interface {
	DueUnnotified(ctx context.Context, now time.Time) ([]dom.DueTodo, error)
	MarkNotified(ctx context.Context, id int64) error
}

// Result is the outcome for one due todo within a scan.
type Result struct {
	TodoID int64
	Email  string

	// Skipped is set when the owning user no longer exists; the todo is
	// left alone and the scan moves on.
	Skipped bool

	// Err records a send or persist failure. The other todos in the same
	// scan are unaffected.
	Err error
}

// Reminder is the scan loop. It keeps no state of its own: idempotency comes
// entirely from the notified flag in the store, so a restart (or a todo
// missed in one scan) is picked up by the next scan.
type Reminder struct {
	store    Store
	mailer   mail.Mailer
	interval time.Duration

	// Now is the clock; tests replace it.
	Now func() time.Time
}

// New returns a Reminder scanning every interval.
func New(store Store, mailer mail.Mailer, interval time.Duration) *Reminder {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reminder{store: store, mailer: mailer, interval: interval, Now: time.Now}
}

// Run scans on a fixed ticker until ctx is cancelled. Scans never overlap:
// a slow scan simply delays the next tick. Failures are logged, never
// swallowed, and never abort the loop.
func (r *Reminder) Run(ctx context.Context) {
	log.Printf("reminder: scanning every %s", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("reminder: stopped")
			return
		case <-ticker.C:
			results, err := r.Scan(ctx)
			if err != nil {
				log.Printf("reminder: scan failed: %v", err)
				continue
			}
			logResults(results)
		}
	}
}

// Scan runs one reminder cycle and returns a result per due todo. Delivery
// happens before the notified flag is persisted, so a crash in between can
// duplicate a send but never lose one.
func (r *Reminder) Scan(ctx context.Context) ([]Result, error) {
	now := r.Now()
	due, err := r.store.DueUnnotified(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("due query: %w", err)
	}

	results := make([]Result, 0, len(due))
	for _, d := range due {
		results = append(results, r.process(ctx, d))
	}
	return results, nil
}

func (r *Reminder) process(ctx context.Context, d dom.DueTodo) Result {
	res := Result{TodoID: d.Todo.ID}
	if d.OwnerEmail == nil || d.OwnerName == nil {
		res.Skipped = true
		return res
	}
	res.Email = *d.OwnerEmail

	body, err := mail.ReminderBody(*d.OwnerName, d.Todo.Title, d.Todo.DueDate)
	if err != nil {
		res.Err = err
		return res
	}
	if err := r.mailer.Send(ctx, *d.OwnerEmail, mail.SubjectReminder, body); err != nil {
		res.Err = fmt.Errorf("send: %w", err)
		return res
	}
	if err := r.store.MarkNotified(ctx, d.Todo.ID); err != nil {
		res.Err = fmt.Errorf("mark notified: %w", err)
		return res
	}
	return res
}

func logResults(results []Result) {
	if len(results) == 0 {
		return
	}
	var sent, skipped, failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			log.Printf("reminder: todo %d failed: %v", res.TodoID, res.Err)
		case res.Skipped:
			skipped++
			log.Printf("reminder: todo %d skipped, owner missing", res.TodoID)
		default:
			sent++
		}
	}
	log.Printf("reminder: scan done due=%d sent=%d skipped=%d failed=%d",
		len(results), sent, skipped, failed)
}
