package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logitrack/internal/config"
	domainUser "logitrack/internal/domain/user"
	"logitrack/internal/logger"
	appErrors "logitrack/pkg/errors"
	"logitrack/pkg/utils"

	"go.uber.org/zap"
)

// Service implements registration, login and refresh-token rotation.
type Service struct {
	userRepo         domainUser.Repository
	refreshTokenRepo domainUser.RefreshTokenRepository
	config           *config.Config
}

func NewService(
	userRepo domainUser.Repository,
	refreshTokenRepo domainUser.RefreshTokenRepository,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

// Register creates an admin account. Driver accounts are only created by
// admins through the driver management endpoints.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.Validation(err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", req.Email),
				zap.String("event", "registration_failed_duplicate_email"),
			)
			return nil, appErrors.Conflict("User already exists")
		}
		return nil, err
	}

	authResponse, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", user.Role.String()),
		zap.String("event", "user_registered"),
	)

	return authResponse, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.Unauthenticated("Invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.Unauthenticated("Invalid email or password")
	}

	authResponse, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
		zap.String("event", "login_success"),
	)

	return authResponse, nil
}

// Refresh rotates the stored refresh token: the presented token is revoked
// and a fresh pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, appErrors.Unauthenticated("Refresh token required")
	}

	stored, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domainUser.ErrTokenInvalid) {
			return nil, appErrors.Unauthenticated("Invalid refresh token")
		}
		return nil, err
	}

	if !stored.IsActive() {
		return nil, appErrors.Unauthenticated("Refresh token expired or revoked")
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.Unauthenticated("Invalid refresh token")
		}
		return nil, err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are ignored;
// logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	stored, err := s.refreshTokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domainUser.ErrTokenInvalid) {
			return nil
		}
		return err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, stored.ID); err != nil && !errors.Is(err, domainUser.ErrTokenInvalid) {
		return err
	}

	return nil
}

// CleanupExpiredTokens removes refresh tokens past their expiry. Run
// periodically by the cron job in main.
func (s *Service) CleanupExpiredTokens(ctx context.Context) {
	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx, 0)
	if err != nil {
		logger.Error("Refresh token cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info("Expired refresh tokens removed", zap.Int64("count", deleted))
	}
}

func (s *Service) issueTokens(ctx context.Context, user *domainUser.User) (*AuthResponse, error) {
	tokenPair, err := utils.GenerateTokenPair(
		user.ID,
		user.Email,
		user.Role.String(),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &domainUser.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		ExpiresAt:    tokenPair.ExpiresAt,
		RefreshToken: tokenPair.RefreshToken,
	}, nil
}
