package repo

import (
	"context"

	dom "github.com/MrTochi/focus-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepo stores audit notifications.
type NotificationRepo interface {
	Create(ctx context.Context, message string, typ dom.NotificationType) (dom.Notification, error)
}

// PGNotificationRepo implements NotificationRepo with Postgres.
type PGNotificationRepo struct {
	db *pgxpool.Pool
}

func NewPGNotificationRepo(db *pgxpool.Pool) *PGNotificationRepo {
	return &PGNotificationRepo{db: db}
}

func (r *PGNotificationRepo) Create(ctx context.Context, message string, typ dom.NotificationType) (dom.Notification, error) {
	query := `
		INSERT INTO notifications (message, type)
		VALUES ($1, $2)
		RETURNING id, message, type, read, created_at, updated_at`
	var n dom.Notification
	err := r.db.QueryRow(ctx, query, message, typ).Scan(
		&n.ID, &n.Message, &n.Type, &n.Read, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}
