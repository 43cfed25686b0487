package shipment

import (
	"time"

	domainShipment "logitrack/internal/domain/shipment"

	"github.com/google/uuid"
)

// Request DTOs

type CreateShipmentRequest struct {
	SenderName    string  `json:"sender_name" validate:"required,min=2,max=255"`
	SenderPhone   *string `json:"sender_phone" validate:"omitempty,max=20"`
	SenderAddress string  `json:"sender_address" validate:"required,min=5"`

	ReceiverName    string  `json:"receiver_name" validate:"required,min=2,max=255"`
	ReceiverPhone   *string `json:"receiver_phone" validate:"omitempty,max=20"`
	ReceiverAddress string  `json:"receiver_address" validate:"required,min=5"`

	PackageDescription *string    `json:"package_description" validate:"omitempty,max=1000"`
	Weight             *float64   `json:"weight" validate:"omitempty,gt=0"`
	ETA                *time.Time `json:"eta" validate:"omitempty"`

	DriverID     *uuid.UUID `json:"driver_id" validate:"omitempty"`
	VehiclePlate *string    `json:"vehicle_plate" validate:"omitempty,max=20"`

	// Origin labels the first timeline entry. Defaults to "Warehouse".
	Origin *string `json:"origin" validate:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status   string  `json:"status" validate:"required"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

// Response DTOs

type TimelineEntryResponse struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// ShipmentResponse is the authenticated view of a shipment.
type ShipmentResponse struct {
	ID             uuid.UUID `json:"id"`
	TrackingNumber string    `json:"tracking_number"`

	SenderName    string  `json:"sender_name"`
	SenderPhone   *string `json:"sender_phone,omitempty"`
	SenderAddress string  `json:"sender_address"`

	ReceiverName    string  `json:"receiver_name"`
	ReceiverPhone   *string `json:"receiver_phone,omitempty"`
	ReceiverAddress string  `json:"receiver_address"`

	PackageDescription *string  `json:"package_description,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`

	Status string `json:"status"`

	DriverID     *uuid.UUID `json:"driver_id,omitempty"`
	VehiclePlate *string    `json:"vehicle_plate,omitempty"`
	ETA          *time.Time `json:"eta,omitempty"`

	Timeline []TimelineEntryResponse `json:"timeline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicShipmentResponse is the redacted view returned by the
// unauthenticated tracking endpoint. It deliberately has no driver or
// phone fields at all, so the hidden set lives in exactly one place.
type PublicShipmentResponse struct {
	TrackingNumber string `json:"tracking_number"`

	SenderName    string `json:"sender_name"`
	SenderAddress string `json:"sender_address"`

	ReceiverName    string `json:"receiver_name"`
	ReceiverAddress string `json:"receiver_address"`

	PackageDescription *string  `json:"package_description,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`

	Status string `json:"status"`

	VehiclePlate *string    `json:"vehicle_plate,omitempty"`
	ETA          *time.Time `json:"eta,omitempty"`

	Timeline []TimelineEntryResponse `json:"timeline"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTimelineResponse(timeline []domainShipment.TimelineEntry) []TimelineEntryResponse {
	entries := make([]TimelineEntryResponse, 0, len(timeline))
	for _, entry := range timeline {
		entries = append(entries, TimelineEntryResponse{
			Status:    entry.Status.String(),
			Location:  entry.Location,
			Timestamp: entry.Timestamp,
		})
	}
	return entries
}

func ToShipmentResponse(s *domainShipment.Shipment) *ShipmentResponse {
	if s == nil {
		return nil
	}
	return &ShipmentResponse{
		ID:                 s.ID,
		TrackingNumber:     s.TrackingNumber,
		SenderName:         s.SenderName,
		SenderPhone:        s.SenderPhone,
		SenderAddress:      s.SenderAddress,
		ReceiverName:       s.ReceiverName,
		ReceiverPhone:      s.ReceiverPhone,
		ReceiverAddress:    s.ReceiverAddress,
		PackageDescription: s.PackageDescription,
		Weight:             s.Weight,
		Status:             s.Status.String(),
		DriverID:           s.DriverID,
		VehiclePlate:       s.VehiclePlate,
		ETA:                s.ETA,
		Timeline:           toTimelineResponse(s.Timeline),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToPublicShipmentResponse maps a shipment onto the redacted view used by
// public tracking.
func ToPublicShipmentResponse(s *domainShipment.Shipment) *PublicShipmentResponse {
	if s == nil {
		return nil
	}
	return &PublicShipmentResponse{
		TrackingNumber:     s.TrackingNumber,
		SenderName:         s.SenderName,
		SenderAddress:      s.SenderAddress,
		ReceiverName:       s.ReceiverName,
		ReceiverAddress:    s.ReceiverAddress,
		PackageDescription: s.PackageDescription,
		Weight:             s.Weight,
		Status:             s.Status.String(),
		VehiclePlate:       s.VehiclePlate,
		ETA:                s.ETA,
		Timeline:           toTimelineResponse(s.Timeline),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
