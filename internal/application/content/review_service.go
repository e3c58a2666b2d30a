package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService handles product review use cases
type ReviewService struct {
	reviewRepo   content.ReviewRepository
	productRepo  catalog.ProductRepository
	customerRepo identity.CustomerRepository
	logger       *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo content.ReviewRepository,
	productRepo catalog.ProductRepository,
	customerRepo identity.CustomerRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Submit records a customer review. New reviews enter moderation and
// do not appear publicly until approved.
func (s *ReviewService) Submit(ctx context.Context, customerID, productID uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "cannot review a product that does not exist")
	}

	c, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	r, err := content.NewReview(productID, customerID, c.DisplayName(), req.Rating, req.Title, req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Info("review submitted",
		zap.String("review_id", r.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", r.Rating))

	response := ToReviewResponse(r)
	return &response, nil
}

// ListForProduct returns approved reviews for a product page
func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[ReviewResponse], error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, true, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["product_id"] = productID
	filter.Filters["approved"] = true
	total, err := s.reviewRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	items := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, ToReviewResponse(r))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Summary returns the approved review count and average rating for a
// product
func (s *ReviewService) Summary(ctx context.Context, productID uuid.UUID) (*RatingSummaryResponse, error) {
	summary, err := s.reviewRepo.RatingSummary(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating summary: %w", err)
	}
	return &RatingSummaryResponse{
		ProductID: summary.ProductID,
		Count:     summary.Count,
		Average:   summary.Average,
	}, nil
}

// ListPending returns reviews awaiting moderation (admin)
func (s *ReviewService) ListPending(ctx context.Context, filter shared.Filter) (*shared.Paginated[ReviewResponse], error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["approved"] = false
	reviews, err := s.reviewRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	total, err := s.reviewRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	items := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, ToReviewResponse(r))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Moderate approves or rejects a review (admin)
func (s *ReviewService) Moderate(ctx context.Context, id uuid.UUID, approve bool) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if approve {
		r.Approve()
	} else {
		r.Reject()
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review (admin)
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, id)
}
