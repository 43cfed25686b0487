package driver

import (
	"context"
	"errors"
	"fmt"

	"logitrack/internal/authz"
	domainUser "logitrack/internal/domain/user"
	"logitrack/internal/logger"
	appErrors "logitrack/pkg/errors"
	"logitrack/pkg/utils"

	"go.uber.org/zap"
)

// Service implements driver account management.
type Service struct {
	userRepo domainUser.Repository
}

func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

// List returns all driver accounts. Admin only.
func (s *Service) List(ctx context.Context, identity *domainUser.Identity) ([]*DriverResponse, error) {
	if err := authz.Authorize(identity, authz.OpListDrivers); err != nil {
		return nil, err
	}

	drivers, err := s.userRepo.ListByRole(ctx, domainUser.RoleDriver)
	if err != nil {
		return nil, err
	}

	responses := make([]*DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		responses = append(responses, ToDriverResponse(d))
	}

	return responses, nil
}

// Create registers a new driver account. Admin only.
func (s *Service) Create(ctx context.Context, identity *domainUser.Identity, req *CreateDriverRequest) (*DriverResponse, error) {
	if err := authz.Authorize(identity, authz.OpCreateDriver); err != nil {
		return nil, err
	}

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

	driver := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleDriver,
	}

	if err := s.userRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, appErrors.Conflict("User already exists")
		}
		return nil, err
	}

	logger.Info("Driver created",
		zap.String("driver_id", driver.ID.String()),
		zap.String("created_by", identity.UserID.String()),
		zap.String("event", "driver_created"),
	)

	return ToDriverResponse(driver), nil
}

// Profile returns the calling driver's own record.
func (s *Service) Profile(ctx context.Context, identity *domainUser.Identity) (*DriverResponse, error) {
	if err := authz.Authorize(identity, authz.OpViewDriverProfile); err != nil {
		return nil, err
	}

	driver, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.NotFound("Driver not found")
		}
		return nil, err
	}

	return ToDriverResponse(driver), nil
}
