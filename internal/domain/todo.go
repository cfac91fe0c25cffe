package domain

import "time"

// Priority of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is the domain entity for a task owned by a user.
// Notified flips false->true at most once per reminder and never reverts;
// it is the guard that keeps the reminder scan from re-delivering.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
	Reminder    *time.Time
	Notified    bool
	Priority    Priority

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DueTodo is a reminder-scan hit: a due, unnotified todo joined with its
// owner. Owner fields are nil when the owning user no longer exists.
type DueTodo struct {
	Todo       Todo
	OwnerName  *string
	OwnerEmail *string
}
