package content

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer product review. Reviews are moderated and only
// approved ones appear in public listings.
type Review struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Rating       int
	Title        string
	Body         string
	Approved     bool
}

// TableName specifies the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates an unapproved review pending moderation
func NewReview(productID, customerID uuid.UUID, customerName string, rating int, title, body string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Review product cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Review customer cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Review body cannot be empty")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Rating:            rating,
		Title:             title,
		Body:              body,
	}, nil
}

// Approve makes the review publicly visible
func (r *Review) Approve() {
	r.Approved = true
	r.Touch()
}

// Reject hides the review
func (r *Review) Reject() {
	r.Approved = false
	r.Touch()
}

// RatingSummary aggregates approved reviews for a product
type RatingSummary struct {
	ProductID uuid.UUID
	Count     int64
	Average   float64
}
