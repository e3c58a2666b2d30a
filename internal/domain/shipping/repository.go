package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the persistence interface for shipments
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Shipment, error)
	FindByAWB(ctx context.Context, awb string) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Shipment, error)
	Save(ctx context.Context, s *Shipment) error
	SaveWithLock(ctx context.Context, s *Shipment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
