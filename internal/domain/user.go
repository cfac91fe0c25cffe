package domain

import "time"

// Role of an account. The first account ever registered becomes admin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain entity for an account.
// PasswordHash must never leave the service layer.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool

	// VerificationToken is set at registration and cleared exactly once on
	// successful verification. It does not expire.
	VerificationToken *string

	// ResetToken and ResetTokenExpiry are set and cleared together.
	ResetToken       *string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
