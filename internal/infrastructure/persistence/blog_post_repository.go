package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormBlogPostRepository implements BlogPostRepository using GORM
type GormBlogPostRepository struct {
	db *gorm.DB
}

// NewGormBlogPostRepository creates a new GormBlogPostRepository
func NewGormBlogPostRepository(db *gorm.DB) *GormBlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// FindByID finds a post by ID
func (r *GormBlogPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.BlogPost, error) {
	var p content.BlogPost
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindBySlug finds a post by slug
func (r *GormBlogPostRepository) FindBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	var p content.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds posts matching the filter, drafts included
func (r *GormBlogPostRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*content.BlogPost, error) {
	var posts []*content.BlogPost
	query := applyFilter(
		r.db.WithContext(ctx).Model(&content.BlogPost{}),
		filter,
		[]string{"title", "slug", "author"},
	)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindPublished finds published posts, newest publication first
func (r *GormBlogPostRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]*content.BlogPost, error) {
	var posts []*content.BlogPost
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.BlogPost{}).Where("published = ?", true),
		filter,
		[]string{"title", "slug", "author"},
	)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("published_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save creates or updates a post
func (r *GormBlogPostRepository) Save(ctx context.Context, p *content.BlogPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a post
func (r *GormBlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts posts matching the filter
func (r *GormBlogPostRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&content.BlogPost{}),
		filter,
		[]string{"title", "slug", "author"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ content.BlogPostRepository = (*GormBlogPostRepository)(nil)
