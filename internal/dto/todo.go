package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"
)

// DateOrTime parses a timestamp from JSON as either date-only ("2006-01-02")
// or RFC3339. Date-only is stored as start of that day in UTC. A JSON null
// (or empty string) yields a nil time with Provided() still true, which edit
// treats as "clear"; an absent key never calls UnmarshalJSON, so Provided()
// stays false and edit leaves the field alone.
type DateOrTime struct {
	t        *time.Time
	provided bool
}

func (d *DateOrTime) UnmarshalJSON(data []byte) error {
	d.provided = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DateOrTime) Ptr() *time.Time { return d.t }

// Provided reports whether the field appeared in the request body at all.
func (d DateOrTime) Provided() bool { return d.provided }

type CreateTodoRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=120"`
	Description string     `json:"description" binding:"required,max=1000"`
	DueDate     DateOrTime `json:"dueDate"`  // optional: "2026-02-19" or RFC3339
	Reminder    DateOrTime `json:"reminder"` // optional
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// EditTodoRequest carries partial-update semantics: an absent field is left
// untouched, while a provided null clears dueDate/reminder.
type EditTodoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	DueDate     DateOrTime `json:"dueDate"`
	Reminder    DateOrTime `json:"reminder"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type TodoResponse struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	Reminder    *time.Time `json:"reminder"`
	Notified    bool       `json:"notified"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TodoToResponse maps a domain todo to its wire form.
func TodoToResponse(t dom.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		Reminder:    t.Reminder,
		Notified:    t.Notified,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TodosToResponses maps a slice of domain todos.
func TodosToResponses(list []dom.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TodoToResponse(t))
	}
	return out
}
