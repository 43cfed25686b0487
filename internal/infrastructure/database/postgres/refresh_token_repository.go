package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logitrack/internal/domain/user"
	"logitrack/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository implements user.RefreshTokenRepository on
// Postgres.
type RefreshTokenRepository struct {
	db *DB
}

func NewRefreshTokenRepository(db *DB) user.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *user.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	token.UpdatedAt = time.Now()

	dbModel := toRefreshTokenModel(token)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	token.ID = dbModel.ID
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*user.RefreshToken, error) {
	var dbModel models.RefreshTokenModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return toRefreshTokenEntity(&dbModel), nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("id = ? AND revoked = false", tokenID).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
			"updated_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrTokenInvalid
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	err := r.db.DB.WithContext(ctx).
		Model(&models.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = false", userID).
		Updates(map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
			"updated_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR (revoked = true AND revoked_at < ?)", cutoff, cutoff).
		Delete(&models.RefreshTokenModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func toRefreshTokenModel(t *user.RefreshToken) *models.RefreshTokenModel {
	return &models.RefreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		Revoked:   t.Revoked,
		RevokedAt: t.RevokedAt,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toRefreshTokenEntity(m *models.RefreshTokenModel) *user.RefreshToken {
	return &user.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
