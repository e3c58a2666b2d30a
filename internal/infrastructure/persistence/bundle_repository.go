package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormBundleRepository implements BundleRepository using GORM
type GormBundleRepository struct {
	db *gorm.DB
}

// NewGormBundleRepository creates a new GormBundleRepository
func NewGormBundleRepository(db *gorm.DB) *GormBundleRepository {
	return &GormBundleRepository{db: db}
}

// FindByID finds a bundle by ID
func (r *GormBundleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Bundle, error) {
	var b catalog.Bundle
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindBySlug finds a bundle by slug
func (r *GormBundleRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Bundle, error) {
	var b catalog.Bundle
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByProduct finds bundles offered on a product
func (r *GormBundleRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*catalog.Bundle, error) {
	var bundles []*catalog.Bundle
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

// FindAll finds bundles matching the filter
func (r *GormBundleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Bundle, error) {
	var bundles []*catalog.Bundle
	query := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Bundle{}),
		filter,
		[]string{"name", "slug"},
	)
	if err := query.Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

// Save creates or updates a bundle
func (r *GormBundleRepository) Save(ctx context.Context, b *catalog.Bundle) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Delete removes a bundle
func (r *GormBundleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Bundle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bundles matching the filter
func (r *GormBundleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&catalog.Bundle{}),
		filter,
		[]string{"name", "slug"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ catalog.BundleRepository = (*GormBundleRepository)(nil)
