package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]*User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// RefreshTokenRepository defines the interface for refresh token
// persistence.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
