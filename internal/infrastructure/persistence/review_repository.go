package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Review, error) {
	var review content.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct finds reviews for a product
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool, filter shared.Filter) ([]*content.Review, error) {
	var reviews []*content.Review
	base := r.db.WithContext(ctx).Model(&content.Review{}).Where("product_id = ?", productID)
	if approvedOnly {
		base = base.Where("approved = ?", true)
	}
	query := applyFilter(base, filter, []string{"title", "body", "customer_name"})
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindAll finds reviews matching the filter
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*content.Review, error) {
	var reviews []*content.Review
	query := applyFilter(
		r.db.WithContext(ctx).Model(&content.Review{}),
		filter,
		[]string{"title", "body", "customer_name"},
	)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingSummary computes the approved review count and average rating
// for a product
func (r *GormReviewRepository) RatingSummary(ctx context.Context, productID uuid.UUID) (*content.RatingSummary, error) {
	var result struct {
		Count   int64
		Average float64
	}
	if err := r.db.WithContext(ctx).
		Model(&content.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("product_id = ? AND approved = ?", productID, true).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &content.RatingSummary{
		ProductID: productID,
		Count:     result.Count,
		Average:   result.Average,
	}, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *content.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.Review{}),
		filter,
		[]string{"title", "body", "customer_name"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ content.ReviewRepository = (*GormReviewRepository)(nil)
