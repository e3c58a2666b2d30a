package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// GormShipmentRepository implements shipping.Repository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by ID with tracking history preloaded
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var s shipping.Shipment
	if err := r.db.WithContext(ctx).
		Preload("TrackingHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByOrderID finds the shipment for an order
func (r *GormShipmentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*shipping.Shipment, error) {
	var s shipping.Shipment
	if err := r.db.WithContext(ctx).
		Preload("TrackingHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Where("order_id = ?", orderID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByAWB finds a shipment by its air waybill number
func (r *GormShipmentRepository) FindByAWB(ctx context.Context, awb string) (*shipping.Shipment, error) {
	var s shipping.Shipment
	if err := r.db.WithContext(ctx).
		Preload("TrackingHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at ASC")
		}).
		Where("awb = ?", awb).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*shipping.Shipment, error) {
	var shipments []*shipping.Shipment
	query := applyFilter(
		r.db.WithContext(ctx).Model(&shipping.Shipment{}),
		filter,
		[]string{"order_number", "awb", "courier"},
	)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment. Tracking history is replaced
// wholesale: the provider's feed is the source of truth for scans.
func (r *GormShipmentRepository) Save(ctx context.Context, s *shipping.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("TrackingHistory").Save(s).Error; err != nil {
			return err
		}
		return r.replaceTrackingHistory(tx, s)
	})
}

// SaveWithLock saves with optimistic locking
func (r *GormShipmentRepository) SaveWithLock(ctx context.Context, s *shipping.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&shipping.Shipment{}).
			Where("id = ?", s.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != s.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The shipment has been modified by another request")
		}

		s.Version++
		s.UpdatedAt = time.Now()

		result := tx.Model(&shipping.Shipment{}).
			Where("id = ? AND version = ?", s.ID, currentVersion).
			Updates(map[string]interface{}{
				"provider_order_id": s.ProviderOrderID,
				"provider_ship_id":  s.ProviderShipID,
				"awb":               s.AWB,
				"courier":           s.Courier,
				"status":            s.Status,
				"label_url":         s.LabelURL,
				"manifest_url":      s.ManifestURL,
				"pickup_scheduled":  s.PickupScheduled,
				"estimated_arrival": s.EstimatedArrival,
				"last_synced_at":    s.LastSyncedAt,
				"version":           s.Version,
				"updated_at":        s.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The shipment has been modified by another request")
		}

		return r.replaceTrackingHistory(tx, s)
	})
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&shipping.Shipment{}),
		filter,
		[]string{"order_number", "awb", "courier"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShipmentRepository) replaceTrackingHistory(tx *gorm.DB, s *shipping.Shipment) error {
	if err := tx.Where("shipment_id = ?", s.ID).Delete(&shipping.TrackingEvent{}).Error; err != nil {
		return err
	}
	for i := range s.TrackingHistory {
		s.TrackingHistory[i].ShipmentID = s.ID
		if err := tx.Create(&s.TrackingHistory[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ shipping.Repository = (*GormShipmentRepository)(nil)
