package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// BundleService handles multi-buy bundle use cases
type BundleService struct {
	bundleRepo  catalog.BundleRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewBundleService creates a new bundle service
func NewBundleService(bundleRepo catalog.BundleRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *BundleService {
	return &BundleService{
		bundleRepo:  bundleRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetBySlug returns a single bundle page
func (s *BundleService) GetBySlug(ctx context.Context, slug string, includeInactive bool) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !b.Active && !includeInactive {
		return nil, shared.ErrNotFound
	}
	response := ToBundleResponse(b)
	return &response, nil
}

// List returns a paginated page of bundles
func (s *BundleService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BundleResponse], error) {
	bundles, err := s.bundleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}
	total, err := s.bundleRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bundles: %w", err)
	}

	items := make([]BundleResponse, 0, len(bundles))
	for _, b := range bundles {
		items = append(items, ToBundleResponse(b))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Quote prices a hypothetical purchase of the bundle at the given
// quantity. The storefront calls this as the shopper moves the
// quantity slider.
func (s *BundleService) Quote(ctx context.Context, slug string, quantity int) (*BundleQuoteResponse, error) {
	b, err := s.bundleRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, shared.ErrNotFound
	}

	quote, err := b.Price(quantity)
	if err != nil {
		return nil, err
	}
	response := ToBundleQuoteResponse(quote)
	return &response, nil
}

// Create registers a new bundle (admin)
func (s *BundleService) Create(ctx context.Context, req CreateBundleRequest) (*BundleResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "bundle product does not exist")
	}

	b, err := catalog.NewBundle(req.Name, req.ProductID, req.UnitPrice, req.Rule)
	if err != nil {
		return nil, err
	}

	switch req.Rule {
	case catalog.PricingRuleTiered:
		tiers := make([]catalog.Tier, 0, len(req.Tiers))
		for _, t := range req.Tiers {
			tiers = append(tiers, catalog.Tier{MinQuantity: t.MinQuantity, UnitPrice: t.UnitPrice})
		}
		if err := b.SetTiers(tiers); err != nil {
			return nil, err
		}
	case catalog.PricingRuleBOGO:
		if err := b.SetBOGO(req.BuyQty, req.FreeQty); err != nil {
			return nil, err
		}
	case catalog.PricingRulePercentage:
		if err := b.SetPercentOff(req.PercentOff); err != nil {
			return nil, err
		}
	}

	if err := s.bundleRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save bundle: %w", err)
	}

	s.logger.Info("bundle created",
		zap.String("bundle_id", b.ID.String()),
		zap.String("slug", b.Slug),
		zap.String("rule", string(b.Rule)))

	response := ToBundleResponse(b)
	return &response, nil
}

// SetActive toggles storefront visibility of a bundle (admin)
func (s *BundleService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		b.Activate()
	} else {
		b.Deactivate()
	}
	if err := s.bundleRepo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save bundle: %w", err)
	}
	response := ToBundleResponse(b)
	return &response, nil
}

// Delete removes a bundle (admin)
func (s *BundleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bundleRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.bundleRepo.Delete(ctx, id)
}
