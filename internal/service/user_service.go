package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"
	"github.com/MrTochi/focus-backend/internal/mail"
	"github.com/MrTochi/focus-backend/internal/repo"
	"github.com/MrTochi/focus-backend/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	resetTokenTTL  = time.Hour
)

// UserService handles the account lifecycle: registration, verification,
// login, password reset, profile updates and deletion.
type UserService struct {
	users         repo.UserRepo
	notifications repo.NotificationRepo
	mailer        mail.Mailer
	frontendURL   string

	now func() time.Time
}

// NewUserService returns a new UserService. frontendURL is the base for the
// verify/reset links embedded in outgoing mail.
func NewUserService(users repo.UserRepo, notifications repo.NotificationRepo, mailer mail.Mailer, frontendURL string) *UserService {
	return &UserService{
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
		now:           time.Now,
	}
}

// Register creates a new unverified account and emails its verification code.
// The very first account in the system is granted the admin role.
func (s *UserService) Register(ctx context.Context, name, email, password string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return dom.User{}, ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return dom.User{}, ErrPasswordTooShort
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return dom.User{}, err
	}
	role := dom.RoleUser
	if count == 0 {
		role = dom.RoleAdmin
	}

	token, err := verificationCode()
	if err != nil {
		return dom.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}

	u, err := s.users.Create(ctx, dom.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		VerificationToken: &token,
	})
	if err != nil {
		// Lost the race on the unique email index.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}

	link := s.frontendURL + "/verify-email/" + token
	body, err := mail.VerifyEmailBody(name, link)
	if err != nil {
		return dom.User{}, err
	}
	if err := s.mailer.Send(ctx, email, mail.SubjectVerify, body); err != nil {
		return dom.User{}, fmt.Errorf("send verification mail: %w", err)
	}

	if _, err := s.notifications.Create(ctx, "New user registered: "+u.Name, dom.NotificationUser); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// Login checks credentials and the verification state and returns the user.
// Session issuance is the handler's job.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return dom.User{}, ErrMissingFields
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return dom.User{}, ErrNotVerified
	}
	return u, nil
}

// VerifyEmail consumes a verification token exactly once and sends the
// welcome mail. Unknown tokens and already-verified accounts look the same.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (dom.User, error) {
	u, err := s.users.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidOrExpired
		}
		return dom.User{}, err
	}
	body, err := mail.WelcomeBody(u.Name)
	if err != nil {
		return dom.User{}, err
	}
	if err := s.mailer.Send(ctx, u.Email, mail.SubjectWelcome, body); err != nil {
		return dom.User{}, fmt.Errorf("send welcome mail: %w", err)
	}
	return u, nil
}

// ForgotPassword issues a one-hour reset token and emails the reset link.
// The token is also returned to the caller.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	token, err := resetToken()
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return "", err
	}

	link := s.frontendURL + "/reset-password/" + token
	body, err := mail.ResetPasswordBody(u.Name, link)
	if err != nil {
		return "", err
	}
	if err := s.mailer.Send(ctx, u.Email, mail.SubjectReset, body); err != nil {
		return "", fmt.Errorf("send reset mail: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a live reset token and sets the new password.
// Expired and unknown tokens are indistinguishable to the caller.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.users.ConsumeResetToken(ctx, token, string(hash), s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOrExpired
		}
		return err
	}
	return nil
}

// GetUser returns one user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]dom.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies a partial update to the caller's name and/or password.
func (s *UserService) UpdateUser(ctx context.Context, id int64, name, password *string) (dom.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return dom.User{}, err
	}
	if name != nil && strings.TrimSpace(*name) != "" {
		u.Name = strings.TrimSpace(*name)
	}
	if password != nil {
		if len(*password) < minPasswordLen {
			return dom.User{}, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return dom.User{}, err
		}
		u.PasswordHash = string(hash)
	}
	out, err := s.users.Update(ctx, id, u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return out, nil
}

// DeleteUser removes an account. Allowed for admins and for the account
// itself. The user's todos are left in place; the reminder scan skips them.
func (s *UserService) DeleteUser(ctx context.Context, callerID int64, callerRole dom.Role, targetID int64) (dom.User, error) {
	if callerRole != dom.RoleAdmin && callerID != targetID {
		return dom.User{}, ErrForbidden
	}
	u, err := s.GetUser(ctx, targetID)
	if err != nil {
		return dom.User{}, err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// verificationCode draws a 6-digit code uniformly from [100000, 999999].
func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// resetToken draws 32 random bytes, hex-encoded.
func resetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
