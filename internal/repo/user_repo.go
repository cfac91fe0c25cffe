package repo

import (
	"context"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	Count(ctx context.Context) (int64, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
	Update(ctx context.Context, id int64, patch dom.User) (dom.User, error)
	Delete(ctx context.Context, id int64) error

	// ConsumeVerificationToken atomically marks the matching user verified
	// and clears the token. pgx.ErrNoRows if no unverified user holds token.
	ConsumeVerificationToken(ctx context.Context, token string) (dom.User, error)

	SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error

	// ConsumeResetToken atomically sets the new password hash and clears
	// both reset fields, but only if token matches and has not expired.
	// pgx.ErrNoRows covers both "unknown" and "expired".
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (dom.User, error)
}

const userColumns = `id, name, email, password_hash, role, is_verified,
	verification_token, reset_token, reset_token_expiry, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified,
		&u.VerificationToken, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, role, verification_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.VerificationToken))
}

func (r *PGUserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGUserRepo) Update(ctx context.Context, id int64, patch dom.User) (dom.User, error) {
	query := `
		UPDATE users SET name = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, id, patch.Name, patch.PasswordHash))
}

func (r *PGUserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *PGUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (dom.User, error) {
	query := `
		UPDATE users SET is_verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1 AND is_verified = FALSE
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, token))
}

func (r *PGUserRepo) SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW() WHERE id = $1`,
		id, token, expiry)
	return err
}

func (r *PGUserRepo) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (dom.User, error) {
	query := `
		UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE reset_token = $1 AND reset_token_expiry > $3
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query, token, passwordHash, now))
}
