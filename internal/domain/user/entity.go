package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Authorization decisions switch
// exhaustively over this type; free-form role strings never enter the
// domain.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// ParseRole maps a wire string onto the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleDriver:
		return RoleDriver, nil
	default:
		return "", ErrInvalidUserRole
	}
}

func (r Role) String() string {
	return string(r)
}

// User represents an account in the domain. Immutable after creation
// except for the password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the resolved caller of a protected operation, as produced
// by token verification. Every authorization decision runs against one.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// RefreshToken is a stored, rotating credential for minting new access
// tokens. Carried to the client in an http-only cookie.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) IsActive() bool {
	return !rt.Revoked && !rt.IsExpired()
}
