package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug checks the URL slug format
func ValidSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

// Slugify derives a URL slug from a display name
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Variant is a purchasable option of a product. Price is the product's
// base price plus the variant's delta.
type Variant struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	Label      string
	SKU        string
	PriceDelta decimal.Decimal
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// Product is the aggregate root for a catalog item
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string
	Description string
	Category    string
	Price       decimal.Decimal
	MRP         decimal.Decimal
	ImageURLs   []string `gorm:"serializer:json"`
	Variants    []Variant
	Active      bool
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product with a derived slug
func NewProduct(name, category string, price, mrp decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if mrp.LessThan(price) {
		return nil, shared.NewDomainError("INVALID_MRP", "MRP cannot be below selling price")
	}

	slug := Slugify(name)
	if !ValidSlug(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Cannot derive a valid slug from product name")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Category:          category,
		Price:             price,
		MRP:               mrp,
		ImageURLs:         make([]string, 0),
		Variants:          make([]Variant, 0),
		Active:            true,
	}, nil
}

// UpdateDetails changes the descriptive fields
func (p *Product) UpdateDetails(name, description, category string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.Category = category
	p.Touch()
	return nil
}

// UpdatePricing changes price and MRP together
func (p *Product) UpdatePricing(price, mrp decimal.Decimal) error {
	if price.LessThan(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if mrp.LessThan(price) {
		return shared.NewDomainError("INVALID_MRP", "MRP cannot be below selling price")
	}
	p.Price = price
	p.MRP = mrp
	p.Touch()
	return nil
}

// SetSlug overrides the derived slug
func (p *Product) SetSlug(slug string) error {
	if !ValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase words separated by hyphens")
	}
	p.Slug = slug
	p.Touch()
	return nil
}

// AddImage appends an image URL
func (p *Product) AddImage(url string) error {
	if url == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}
	p.ImageURLs = append(p.ImageURLs, url)
	p.Touch()
	return nil
}

// AddVariant adds a purchasable option
func (p *Product) AddVariant(label, sku string, priceDelta decimal.Decimal) (*Variant, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant label cannot be empty")
	}
	for i := range p.Variants {
		if p.Variants[i].Label == label {
			return nil, shared.NewDomainError("VARIANT_EXISTS", "Variant with this label already exists")
		}
	}
	if p.Price.Add(priceDelta).LessThan(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Variant price cannot be negative")
	}

	now := time.Now()
	v := Variant{
		ID:         uuid.New(),
		ProductID:  p.ID,
		Label:      label,
		SKU:        sku,
		PriceDelta: priceDelta,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	p.Variants = append(p.Variants, v)
	p.UpdatedAt = now
	return &v, nil
}

// RemoveVariant deletes a variant by ID
func (p *Product) RemoveVariant(variantID uuid.UUID) error {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			p.Variants = append(p.Variants[:i], p.Variants[i+1:]...)
			p.Touch()
			return nil
		}
	}
	return shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
}

// VariantPrice returns the effective price for a variant, or the base
// price when variantID is nil
func (p *Product) VariantPrice(variantID *uuid.UUID) (decimal.Decimal, error) {
	if variantID == nil {
		return p.Price, nil
	}
	for i := range p.Variants {
		if p.Variants[i].ID == *variantID {
			return p.Price.Add(p.Variants[i].PriceDelta), nil
		}
	}
	return decimal.Zero, shared.NewDomainError("VARIANT_NOT_FOUND", "Variant not found")
}

// Activate makes the product publicly visible
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// Deactivate hides the product from public listings
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}
