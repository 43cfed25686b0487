package models

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentModel represents the database model for Shipment
type ShipmentModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TrackingNumber string    `gorm:"type:varchar(20);not null;uniqueIndex"`

	SenderName    string  `gorm:"type:varchar(255);not null"`
	SenderPhone   *string `gorm:"type:varchar(20)"`
	SenderAddress string  `gorm:"type:text;not null"`

	ReceiverName    string  `gorm:"type:varchar(255);not null"`
	ReceiverPhone   *string `gorm:"type:varchar(20)"`
	ReceiverAddress string  `gorm:"type:text;not null"`

	PackageDescription *string  `gorm:"type:text"`
	Weight             *float64 `gorm:"type:decimal(8,2)"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	VehiclePlate *string    `gorm:"type:varchar(20)"`
	ETA          *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relations
	Driver   *UserModel           `gorm:"foreignKey:DriverID"`
	Timeline []ShipmentEventModel `gorm:"foreignKey:ShipmentID"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}

// ShipmentEventModel is one timeline entry. The bigserial Seq column gives
// the append order a stable total ordering independent of clock skew.
type ShipmentEventModel struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Location   string    `gorm:"type:varchar(255);not null"`
	Timestamp  time.Time `gorm:"not null"`
}

func (ShipmentEventModel) TableName() string {
	return "shipment_events"
}

// TrackingSequenceModel backs the tracking-number generator: one row per
// year, incremented atomically so concurrent creates never collide.
type TrackingSequenceModel struct {
	Year  int   `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}

func (TrackingSequenceModel) TableName() string {
	return "tracking_sequences"
}
