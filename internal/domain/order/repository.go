package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the persistence interface for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)
	Save(ctx context.Context, o *Order) error
	SaveWithLock(ctx context.Context, o *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	GenerateOrderNumber(ctx context.Context) (string, error)
}
