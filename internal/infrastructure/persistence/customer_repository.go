package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID with addresses preloaded
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Customer, error) {
	var customer identity.Customer
	if err := r.db.WithContext(ctx).
		Preload("Addresses").
		First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*identity.Customer, error) {
	var customer identity.Customer
	if err := r.db.WithContext(ctx).
		Preload("Addresses").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Customer, error) {
	var customers []identity.Customer
	query := applyFilter(
		r.db.WithContext(ctx).Model(&identity.Customer{}),
		filter,
		[]string{"email", "first_name", "last_name", "phone"},
	)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ExistsByEmail checks whether an account with the email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Customer{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer together with its addresses
func (r *GormCustomerRepository) Save(ctx context.Context, customer *identity.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Addresses").Save(customer).Error; err != nil {
			return err
		}

		currentIDs := make([]uuid.UUID, len(customer.Addresses))
		for i, addr := range customer.Addresses {
			currentIDs[i] = addr.ID
		}
		if len(currentIDs) > 0 {
			if err := tx.Where("customer_id = ? AND id NOT IN ?", customer.ID, currentIDs).
				Delete(&identity.CustomerAddress{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("customer_id = ?", customer.ID).
				Delete(&identity.CustomerAddress{}).Error; err != nil {
				return err
			}
		}

		for i := range customer.Addresses {
			customer.Addresses[i].CustomerID = customer.ID
			if err := tx.Save(&customer.Addresses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a customer and its addresses
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&identity.CustomerAddress{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&identity.Customer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&identity.Customer{}),
		filter,
		[]string{"email", "first_name", "last_name", "phone"},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ identity.CustomerRepository = (*GormCustomerRepository)(nil)
