package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/content"
)

// ==================== Blog DTOs ====================

// CreateBlogPostRequest represents an admin draft creation
type CreateBlogPostRequest struct {
	Title      string `json:"title" binding:"required,min=3,max=200"`
	Excerpt    string `json:"excerpt" binding:"max=500"`
	Body       string `json:"body" binding:"required"`
	Author     string `json:"author" binding:"max=100"`
	CoverImage string `json:"cover_image" binding:"omitempty,url"`
}

// UpdateBlogPostRequest represents an admin post edit
type UpdateBlogPostRequest struct {
	Title      *string `json:"title"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	CoverImage *string `json:"cover_image"`
}

// BlogPostResponse represents a blog post
type BlogPostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Author      string     `json:"author,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ==================== Review DTOs ====================

// SubmitReviewRequest represents a customer review submission
type SubmitReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Title  string `json:"title" binding:"max=200"`
	Body   string `json:"body" binding:"required,max=2000"`
}

// ReviewResponse represents a product review
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	CustomerName string    `json:"customer_name"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title,omitempty"`
	Body         string    `json:"body"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}

// RatingSummaryResponse aggregates approved reviews for a product
type RatingSummaryResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Count     int64     `json:"count"`
	Average   float64   `json:"average"`
}

// ==================== Mappers ====================

// ToBlogPostResponse converts a domain post to a response DTO.
// When excerptOnly is set the body is omitted, for listing pages.
func ToBlogPostResponse(p *content.BlogPost, excerptOnly bool) BlogPostResponse {
	resp := BlogPostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Author:      p.Author,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
	}
	if !excerptOnly {
		resp.Body = p.Body
	}
	return resp
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *content.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Title:        r.Title,
		Body:         r.Body,
		Approved:     r.Approved,
		CreatedAt:    r.CreatedAt,
	}
}
