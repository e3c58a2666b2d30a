package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]*Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BundleRepository defines the persistence interface for bundles
type BundleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bundle, error)
	FindBySlug(ctx context.Context, slug string) (*Bundle, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*Bundle, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Bundle, error)
	Save(ctx context.Context, b *Bundle) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
