package promo

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// PromoCodeRepository defines the interface for promo code persistence
type PromoCodeRepository interface {
	// FindByID finds a promo code by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PromoCode, error)

	// FindByCode finds a promo code by its (case-insensitive) code
	FindByCode(ctx context.Context, code string) (*PromoCode, error)

	// FindAll finds all promo codes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PromoCode, error)

	// ExistsByCode checks whether a promo with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a promo code
	Save(ctx context.Context, promo *PromoCode) error

	// Delete removes a promo code
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts promo codes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
