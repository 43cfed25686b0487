package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logitrack/internal/authz"
	domainShipment "logitrack/internal/domain/shipment"
	domainUser "logitrack/internal/domain/user"
	"logitrack/internal/logger"
	appErrors "logitrack/pkg/errors"
	"logitrack/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the shipment lifecycle and the public tracking query.
type Service struct {
	shipmentRepo domainShipment.Repository
	userRepo     domainUser.Repository
	now          func() time.Time
}

func NewService(shipmentRepo domainShipment.Repository, userRepo domainUser.Repository) *Service {
	return &Service{
		shipmentRepo: shipmentRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// Create assigns a tracking number and seeds the timeline with a single
// pending entry at the declared origin. Admin only.
func (s *Service) Create(ctx context.Context, identity *domainUser.Identity, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := authz.Authorize(identity, authz.OpCreateShipment); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	if req.DriverID != nil {
		driver, err := s.userRepo.GetByID(ctx, *req.DriverID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				return nil, appErrors.Validation("Assigned driver does not exist", nil)
			}
			return nil, fmt.Errorf("failed to resolve driver: %w", err)
		}
		if driver.Role != domainUser.RoleDriver {
			return nil, appErrors.Validation("Assigned user is not a driver", nil)
		}
	}

	origin := domainShipment.DefaultOrigin
	if req.Origin != nil && *req.Origin != "" {
		origin = *req.Origin
	}

	now := s.now()
	shipment := &domainShipment.Shipment{
		SenderName:         req.SenderName,
		SenderPhone:        req.SenderPhone,
		SenderAddress:      req.SenderAddress,
		ReceiverName:       req.ReceiverName,
		ReceiverPhone:      req.ReceiverPhone,
		ReceiverAddress:    req.ReceiverAddress,
		PackageDescription: req.PackageDescription,
		Weight:             req.Weight,
		Status:             domainShipment.StatusPending,
		DriverID:           req.DriverID,
		VehiclePlate:       req.VehiclePlate,
		ETA:                req.ETA,
		Timeline: []domainShipment.TimelineEntry{
			{
				Status:    domainShipment.StatusPending,
				Location:  origin,
				Timestamp: now,
			},
		},
	}

	if err := s.shipmentRepo.Create(ctx, shipment); err != nil {
		if errors.Is(err, domainShipment.ErrDuplicateTrackingNumber) {
			return nil, appErrors.Conflict("Tracking number already exists")
		}
		return nil, err
	}

	logger.Info("Shipment created",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.String("event", "shipment_created"),
	)

	return ToShipmentResponse(shipment), nil
}

// UpdateStatus appends a timeline entry and sets the shipment status.
// Admins may update any shipment, drivers only their own. The new status
// must belong to the closed status set.
func (s *Service) UpdateStatus(ctx context.Context, identity *domainUser.Identity, shipmentID uuid.UUID, req *UpdateStatusRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	existing, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, domainShipment.ErrShipmentNotFound) {
			return nil, appErrors.NotFound("Shipment not found")
		}
		return nil, err
	}

	if err := authz.AuthorizeShipmentAccess(identity, authz.OpUpdateShipmentStatus, existing); err != nil {
		return nil, err
	}

	status, err := domainShipment.ParseStatus(req.Status)
	if err != nil {
		return nil, appErrors.Validation(fmt.Sprintf("Unknown status %q", req.Status), nil)
	}

	location := domainShipment.DefaultLocation
	if req.Location != nil && *req.Location != "" {
		location = *req.Location
	}

	updated, err := s.shipmentRepo.AppendStatus(ctx, shipmentID, status, location, s.now())
	if err != nil {
		if errors.Is(err, domainShipment.ErrShipmentNotFound) {
			return nil, appErrors.NotFound("Shipment not found")
		}
		return nil, err
	}

	logger.Info("Shipment status updated",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("status", status.String()),
		zap.String("location", location),
		zap.String("updated_by", identity.UserID.String()),
		zap.String("event", "shipment_status_updated"),
	)

	return ToShipmentResponse(updated), nil
}

// List returns all shipments for admins and only assigned shipments for
// drivers.
func (s *Service) List(ctx context.Context, identity *domainUser.Identity) ([]*ShipmentResponse, error) {
	if err := authz.Authorize(identity, authz.OpListShipments); err != nil {
		return nil, err
	}

	filter := &domainShipment.Filter{}
	if identity.Role == domainUser.RoleDriver {
		driverID := identity.UserID
		filter.DriverID = &driverID
	}

	shipments, err := s.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ShipmentResponse, 0, len(shipments))
	for _, sh := range shipments {
		responses = append(responses, ToShipmentResponse(sh))
	}

	return responses, nil
}

// GetByID returns a single shipment, enforcing driver ownership.
func (s *Service) GetByID(ctx context.Context, identity *domainUser.Identity, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	existing, err := s.shipmentRepo.GetByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, domainShipment.ErrShipmentNotFound) {
			return nil, appErrors.NotFound("Shipment not found")
		}
		return nil, err
	}

	if err := authz.AuthorizeShipmentAccess(identity, authz.OpViewShipment, existing); err != nil {
		return nil, err
	}

	return ToShipmentResponse(existing), nil
}

// Track is the public, unauthenticated read path. It returns the redacted
// view or not-found; it never exposes driver or phone fields.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*PublicShipmentResponse, error) {
	existing, err := s.shipmentRepo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, domainShipment.ErrShipmentNotFound) {
			return nil, appErrors.NotFound("Shipment not found")
		}
		return nil, err
	}

	return ToPublicShipmentResponse(existing), nil
}
