package shipment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of shipment statuses. Status updates are
// validated against this set; unknown values are rejected before they
// reach storage.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusPickedUp  Status = "picked_up"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusDelayed   Status = "delayed"
)

// AllStatuses lists every valid status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAssigned,
		StatusPickedUp,
		StatusInTransit,
		StatusDelivered,
		StatusFailed,
		StatusDelayed,
	}
}

// ParseStatus maps a wire string onto the closed status set.
func ParseStatus(s string) (Status, error) {
	for _, status := range AllStatuses() {
		if Status(s) == status {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s Status) String() string {
	return string(s)
}

const (
	// DefaultOrigin seeds the timeline when creation supplies no origin.
	DefaultOrigin = "Warehouse"
	// DefaultLocation is recorded when a status update omits a location.
	DefaultLocation = "Unknown Location"

	trackingPrefix = "LOGI"
)

// FormatTrackingNumber renders the public tracking identifier,
// LOGI-<year>-<5-digit sequence>.
func FormatTrackingNumber(year, sequence int) string {
	return fmt.Sprintf("%s-%d-%05d", trackingPrefix, year, sequence)
}

// TimelineEntry is one status-change event. The timeline is append-only:
// entries are never reordered, altered or removed.
type TimelineEntry struct {
	Status    Status
	Location  string
	Timestamp time.Time
}

// Shipment is the central entity. Status always equals the status of the
// last timeline entry, and the timeline is never empty after creation.
type Shipment struct {
	ID             uuid.UUID
	TrackingNumber string

	SenderName    string
	SenderPhone   *string
	SenderAddress string

	ReceiverName    string
	ReceiverPhone   *string
	ReceiverAddress string

	PackageDescription *string
	Weight             *float64

	Status Status

	// DriverID is a weak reference to a User with role driver. Relation
	// only, not ownership of the record.
	DriverID     *uuid.UUID
	VehiclePlate *string
	ETA          *time.Time

	Timeline []TimelineEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastTimelineEntry returns the most recently appended event, or nil for
// a shipment that has not been seeded yet.
func (s *Shipment) LastTimelineEntry() *TimelineEntry {
	if len(s.Timeline) == 0 {
		return nil
	}
	return &s.Timeline[len(s.Timeline)-1]
}

// AssignedTo reports whether the shipment's driver reference equals the
// given user id.
func (s *Shipment) AssignedTo(driverID uuid.UUID) bool {
	return s.DriverID != nil && *s.DriverID == driverID
}
