package domain

import "time"

// NotificationType classifies an audit notification.
type NotificationType string

const (
	NotificationUser   NotificationType = "user"
	NotificationSystem NotificationType = "system"
)

// Notification is an internal audit record, written as a side effect of
// account lifecycle events (e.g. a new registration).
type Notification struct {
	ID      int64
	Message string
	Type    NotificationType
	Read    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
