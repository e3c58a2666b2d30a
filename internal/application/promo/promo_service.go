package promo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/promo"
	"github.com/storefront/backend/internal/domain/shared"
)

// PromoService handles promo code checks and administration
type PromoService struct {
	promoRepo promo.PromoCodeRepository
	cartRepo  cart.CartRepository
}

// NewPromoService creates a new PromoService
func NewPromoService(promoRepo promo.PromoCodeRepository, cartRepo cart.CartRepository) *PromoService {
	return &PromoService{
		promoRepo: promoRepo,
		cartRepo:  cartRepo,
	}
}

// CartLines builds the promo evaluation snapshot from a cart
func CartLines(c *cart.Cart) []promo.CartLine {
	lines := make([]promo.CartLine, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		lines = append(lines, promo.CartLine{
			ProductID: item.ProductID,
			Category:  item.Category,
			LineTotal: item.LineTotal(),
		})
	}
	return lines
}

// Resolve finds a promo by code, falling back to the built-in threshold
// codes when the store has no stored promo under that name.
func (s *PromoService) Resolve(ctx context.Context, code string, lines []promo.CartLine) (*promo.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	p, err := s.promoRepo.FindByCode(ctx, code)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	subtotal := subtotalOf(lines)
	if built := promo.ThresholdPromo(code, subtotal); built != nil {
		return built, nil
	}

	return nil, shared.NewDomainError("PROMO_NOT_FOUND", "This promo code does not exist")
}

// Check evaluates a promo code against the customer's current cart and
// returns the discount descriptor or the typed rejection.
func (s *PromoService) Check(ctx context.Context, customerID uuid.UUID, req CheckRequest) (*AppliedPromoResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("CART_EMPTY", "Cannot apply a promo to an empty cart")
	}

	lines := CartLines(c)

	p, err := s.Resolve(ctx, req.Code, lines)
	if err != nil {
		return nil, err
	}

	if err := p.CheckAgainst(lines, time.Now()); err != nil {
		return nil, err
	}

	return &AppliedPromoResponse{
		Code:         p.Code,
		DiscountType: p.DiscountType,
		Value:        p.Value,
		Discount:     p.DiscountFor(lines),
	}, nil
}

// Suggestions returns the built-in threshold promotions the customer's
// cart currently qualifies for.
func (s *PromoService) Suggestions(ctx context.Context, customerID uuid.UUID) ([]promo.ThresholdSuggestion, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return promo.SuggestionsFor(c.Subtotal()), nil
}

// ==================== Admin operations ====================

// Create stores a new promo code
func (s *PromoService) Create(ctx context.Context, req CreatePromoCodeRequest) (*PromoCodeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	exists, err := s.promoRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "A promo with this code already exists")
	}

	p, err := promo.NewPromoCode(code, req.DiscountType, req.Value, req.Scope)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description

	switch req.Scope {
	case promo.ScopeProducts:
		if err := p.RestrictToProducts(req.ProductIDs); err != nil {
			return nil, err
		}
	case promo.ScopeCategories:
		if err := p.RestrictToCategories(req.Categories); err != nil {
			return nil, err
		}
	}

	if req.MinSubtotal != nil {
		if err := p.SetMinSubtotal(*req.MinSubtotal); err != nil {
			return nil, err
		}
	}
	if req.ExpiresAt != nil {
		p.SetExpiry(*req.ExpiresAt)
	}

	if err := s.promoRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPromoCodeResponse(p)
	return &response, nil
}

// Update changes a stored promo code
func (s *PromoService) Update(ctx context.Context, id uuid.UUID, req UpdatePromoCodeRequest) (*PromoCodeResponse, error) {
	p, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.MinSubtotal != nil {
		if err := p.SetMinSubtotal(*req.MinSubtotal); err != nil {
			return nil, err
		}
	}
	if req.ExpiresAt != nil {
		p.SetExpiry(*req.ExpiresAt)
	}
	if req.Active != nil {
		if *req.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := s.promoRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPromoCodeResponse(p)
	return &response, nil
}

// GetByID retrieves a promo code
func (s *PromoService) GetByID(ctx context.Context, id uuid.UUID) (*PromoCodeResponse, error) {
	p, err := s.promoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPromoCodeResponse(p)
	return &response, nil
}

// List retrieves promo codes with pagination
func (s *PromoService) List(ctx context.Context, filter shared.Filter) ([]PromoCodeResponse, int64, error) {
	promos, err := s.promoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.promoRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PromoCodeResponse, 0, len(promos))
	for _, p := range promos {
		responses = append(responses, ToPromoCodeResponse(&p))
	}
	return responses, total, nil
}

// Delete removes a promo code
func (s *PromoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.promoRepo.Delete(ctx, id)
}

func subtotalOf(lines []promo.CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	return subtotal
}
