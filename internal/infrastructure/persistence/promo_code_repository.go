package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/promo"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormPromoCodeRepository implements PromoCodeRepository using GORM
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewGormPromoCodeRepository creates a new GormPromoCodeRepository
func NewGormPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// FindByID finds a promo code by ID
func (r *GormPromoCodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*promo.PromoCode, error) {
	var p promo.PromoCode
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode finds a promo code by its code. Codes are stored upper-case.
func (r *GormPromoCodeRepository) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	var p promo.PromoCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds promo codes matching the filter
func (r *GormPromoCodeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promo.PromoCode, error) {
	var promos []promo.PromoCode
	query := applyFilter(
		r.db.WithContext(ctx).Model(&promo.PromoCode{}),
		filter,
		[]string{"code", "description"},
	)
	if err := query.Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// ExistsByCode checks whether a promo with the code exists
func (r *GormPromoCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&promo.PromoCode{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a promo code
func (r *GormPromoCodeRepository) Save(ctx context.Context, p *promo.PromoCode) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a promo code
func (r *GormPromoCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promo.PromoCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts promo codes matching the filter
func (r *GormPromoCodeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&promo.PromoCode{}),
		filter,
		[]string{"code", "description"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ promo.PromoCodeRepository = (*GormPromoCodeRepository)(nil)
