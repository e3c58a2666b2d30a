package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// BlogPostRepository defines the persistence interface for blog posts
type BlogPostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*BlogPost, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*BlogPost, error)
	FindPublished(ctx context.Context, filter shared.Filter) ([]*BlogPost, error)
	Save(ctx context.Context, p *BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReviewRepository defines the persistence interface for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]*Review, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Review, error)
	RatingSummary(ctx context.Context, productID uuid.UUID) (*RatingSummary, error)
	Save(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
