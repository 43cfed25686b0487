package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"logitrack/internal/domain/shipment"
	"logitrack/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentRepository implements shipment.Repository on Postgres.
type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) shipment.Repository {
	return &ShipmentRepository{db: db}
}

// Create assigns the tracking number from the per-year sequence and
// persists the shipment with its seeded timeline, all in one transaction.
// The sequence upsert is a single atomic statement, so concurrent creates
// get distinct numbers.
func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	now := time.Now()
	s.ID = uuid.New()
	s.CreatedAt = now
	s.UpdatedAt = now

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := now.Year()

		var seq int64
		err := tx.Raw(`
			INSERT INTO tracking_sequences (year, value)
			VALUES (?, 1)
			ON CONFLICT (year) DO UPDATE SET value = tracking_sequences.value + 1
			RETURNING value`, year).Scan(&seq).Error
		if err != nil {
			return fmt.Errorf("failed to advance tracking sequence: %w", err)
		}

		s.TrackingNumber = shipment.FormatTrackingNumber(year, int(seq))

		dbModel := toShipmentModel(s)
		if err := tx.Create(dbModel).Error; err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "tracking_number") {
				return shipment.ErrDuplicateTrackingNumber
			}
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		for _, entry := range s.Timeline {
			event := &models.ShipmentEventModel{
				ShipmentID: s.ID,
				Status:     entry.Status.String(),
				Location:   entry.Location,
				Timestamp:  entry.Timestamp,
			}
			if err := tx.Create(event).Error; err != nil {
				return fmt.Errorf("failed to seed timeline: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("shipment_events.seq ASC")
		}).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("shipment_events.seq ASC")
		}).
		Where("tracking_number = ?", trackingNumber).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel), nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, error) {
	var dbModels []models.ShipmentModel

	db := r.db.DB.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("shipment_events.seq ASC")
		})

	if filter != nil {
		if filter.DriverID != nil {
			db = db.Where("driver_id = ?", *filter.DriverID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", filter.Status.String())
		}
	}

	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, 0, len(dbModels))
	for i := range dbModels {
		shipments = append(shipments, toShipmentEntity(&dbModels[i]))
	}

	return shipments, nil
}

// AppendStatus inserts the timeline event and sets the shipment status in
// a single transaction keyed by shipment id. There is no fetch-then-save
// on the timeline, so concurrent appends to the same shipment interleave
// without losing entries.
func (r *ShipmentRepository) AppendStatus(ctx context.Context, shipmentID uuid.UUID, status shipment.Status, location string, at time.Time) (*shipment.Shipment, error) {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ShipmentModel{}).
			Where("id = ?", shipmentID).
			Updates(map[string]interface{}{
				"status":     status.String(),
				"updated_at": at,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update shipment status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shipment.ErrShipmentNotFound
		}

		event := &models.ShipmentEventModel{
			ShipmentID: shipmentID,
			Status:     status.String(),
			Location:   location,
			Timestamp:  at,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to append timeline event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, shipmentID)
}

func toShipmentModel(s *shipment.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
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
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *shipment.Shipment {
	timeline := make([]shipment.TimelineEntry, 0, len(m.Timeline))
	for _, event := range m.Timeline {
		timeline = append(timeline, shipment.TimelineEntry{
			Status:    shipment.Status(event.Status),
			Location:  event.Location,
			Timestamp: event.Timestamp,
		})
	}

	return &shipment.Shipment{
		ID:                 m.ID,
		TrackingNumber:     m.TrackingNumber,
		SenderName:         m.SenderName,
		SenderPhone:        m.SenderPhone,
		SenderAddress:      m.SenderAddress,
		ReceiverName:       m.ReceiverName,
		ReceiverPhone:      m.ReceiverPhone,
		ReceiverAddress:    m.ReceiverAddress,
		PackageDescription: m.PackageDescription,
		Weight:             m.Weight,
		Status:             shipment.Status(m.Status),
		DriverID:           m.DriverID,
		VehiclePlate:       m.VehiclePlate,
		ETA:                m.ETA,
		Timeline:           timeline,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
