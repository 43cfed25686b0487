package shipment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for shipment persistence.
//
// Create must assign the tracking number from an atomic per-year sequence
// and persist the seeded timeline in the same transaction, so concurrent
// creations never collide. AppendStatus must insert the timeline event and
// set the shipment status as one atomic operation, so concurrent updates
// never lose an event.
type Repository interface {
	Create(ctx context.Context, shipment *Shipment) error
	GetByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)
	List(ctx context.Context, filter *Filter) ([]*Shipment, error)
	AppendStatus(ctx context.Context, shipmentID uuid.UUID, status Status, location string, at time.Time) (*Shipment, error)
}

// Filter narrows List results. A nil DriverID means no driver scoping.
type Filter struct {
	DriverID *uuid.UUID
	Status   *Status
}
