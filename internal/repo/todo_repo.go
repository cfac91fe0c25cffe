package repo

import (
	"context"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error

	// ToggleCompleted flips completed in a single statement.
	ToggleCompleted(ctx context.Context, id int64) (dom.Todo, error)

	// DueUnnotified returns todos whose reminder is at or before now and
	// which have not been notified, with their owner joined. Todos whose
	// owner was deleted still come back, with nil owner fields.
	DueUnnotified(ctx context.Context, now time.Time) ([]dom.DueTodo, error)

	// MarkNotified persists notified = true for one todo.
	MarkNotified(ctx context.Context, id int64) error
}

const todoColumns = `id, user_id, title, description, completed,
	due_date, reminder, notified, priority, created_at, updated_at`

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func scanTodo(row interface{ Scan(...any) error }) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.DueDate, &t.Reminder, &t.Notified, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (user_id, title, description, due_date, reminder, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query,
		t.UserID, t.Title, t.Description, t.DueDate, t.Reminder, t.Priority))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	return scanTodo(r.db.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
}

func (r *PGTodoRepo) ListByUser(ctx context.Context, userID int64) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, due_date = $4, reminder = $5,
			priority = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query,
		id, patch.Title, patch.Description, patch.DueDate, patch.Reminder, patch.Priority))
}

func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) ToggleCompleted(ctx context.Context, id int64) (dom.Todo, error) {
	query := `
		UPDATE todos SET completed = NOT completed, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) DueUnnotified(ctx context.Context, now time.Time) ([]dom.DueTodo, error) {
	query := `
		SELECT t.id, t.user_id, t.title, t.description, t.completed,
			t.due_date, t.reminder, t.notified, t.priority, t.created_at, t.updated_at,
			u.name, u.email
		FROM todos t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.reminder IS NOT NULL AND t.reminder <= $1 AND t.notified = FALSE
		ORDER BY t.reminder ASC`
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.DueTodo
	for rows.Next() {
		var d dom.DueTodo
		t := &d.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.DueDate, &t.Reminder, &t.Notified, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
			&d.OwnerName, &d.OwnerEmail); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) MarkNotified(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE todos SET notified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}
