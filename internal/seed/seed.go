package seed

import (
	"context"
	"errors"
	"fmt"

	domainUser "logitrack/internal/domain/user"
	"logitrack/internal/logger"
	"logitrack/pkg/utils"

	"go.uber.org/zap"
)

const demoPassword = "password123"

// Run creates the demo accounts if they do not exist yet: one admin and
// two drivers. Idempotent; safe to run on every boot.
func Run(ctx context.Context, userRepo domainUser.Repository) error {
	accounts := []struct {
		name  string
		email string
		role  domainUser.Role
	}{
		{"Admin User", "admin@logitrack.com", domainUser.RoleAdmin},
		{"Abebe Kebede", "abebe@logitrack.com", domainUser.RoleDriver},
		{"Bekele Tadesse", "bekele@logitrack.com", domainUser.RoleDriver},
	}

	for _, account := range accounts {
		_, err := userRepo.GetByEmail(ctx, account.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainUser.ErrUserNotFound) {
			return fmt.Errorf("failed to check seed account %s: %w", account.email, err)
		}

		hash, err := utils.HashPassword(demoPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := &domainUser.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			// Concurrent boot already seeded it.
			if errors.Is(err, domainUser.ErrUserAlreadyExists) {
				continue
			}
			return fmt.Errorf("failed to seed account %s: %w", account.email, err)
		}

		logger.Info("Seed account created",
			zap.String("email", account.email),
			zap.String("role", account.role.String()),
		)
	}

	return nil
}
