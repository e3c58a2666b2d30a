package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductService handles product catalog use cases
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetBySlug returns a single product page. Inactive products are
// hidden from the storefront but remain visible to admins.
func (s *ProductService) GetBySlug(ctx context.Context, slug string, includeInactive bool) (*ProductResponse, error) {
	p, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Active && !includeInactive {
		return nil, shared.ErrNotFound
	}
	response := ToProductResponse(p)
	return &response, nil
}

// List returns a paginated page of active products, optionally narrowed
// to a single category.
func (s *ProductService) List(ctx context.Context, category string, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	var (
		products []*catalog.Product
		err      error
	)
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["active"] = true
	if category != "" {
		products, err = s.productRepo.FindByCategory(ctx, category, filter)
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, ToProductResponse(p))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Create registers a new product (admin)
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name, req.Category, req.Price, req.MRP)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := p.UpdateDetails(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}

	taken, err := s.productRepo.ExistsBySlug(ctx, p.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, shared.NewDomainError("SLUG_TAKEN", "a product with this slug already exists")
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("slug", p.Slug))

	response := ToProductResponse(p)
	return &response, nil
}

// Update modifies an existing product (admin)
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := p.Name
	description := p.Description
	category := p.Category
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Category != nil {
		category = *req.Category
	}
	if err := p.UpdateDetails(name, description, category); err != nil {
		return nil, err
	}

	if req.Price != nil || req.MRP != nil {
		price := p.Price
		mrp := p.MRP
		if req.Price != nil {
			price = *req.Price
		}
		if req.MRP != nil {
			mrp = *req.MRP
		}
		if err := p.UpdatePricing(price, mrp); err != nil {
			return nil, err
		}
	}

	if req.Active != nil {
		if *req.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(p)
	return &response, nil
}

// AddVariant attaches a purchasable option to a product (admin)
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req AddVariantRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := p.AddVariant(req.Label, req.SKU, req.PriceDelta); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(p)
	return &response, nil
}

// RemoveVariant detaches a variant from a product (admin)
func (s *ProductService) RemoveVariant(ctx context.Context, productID, variantID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveVariant(variantID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(p)
	return &response, nil
}

// AddImage appends an image URL to a product gallery (admin)
func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, url string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.AddImage(url); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(p)
	return &response, nil
}

// Delete removes a product (admin)
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
