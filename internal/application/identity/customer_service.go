package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// CustomerService handles customer profile operations
type CustomerService struct {
	customerRepo   identity.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo identity.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetProfile retrieves the customer profile
func (s *CustomerService) GetProfile(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateProfile merges the provided fields into the profile
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		exists, err := s.customerRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists && *req.Email != customer.Email {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
	}

	if err := customer.ApplyPatch(identity.ProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// AddAddress adds a saved address to the customer
func (s *CustomerService) AddAddress(ctx context.Context, customerID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr, err := valueobject.NewPostalAddress(req.FirstName, req.LastName, req.Line1, req.Line2, req.City, req.State, req.Country, req.PinCode)
	if err != nil {
		return nil, err
	}

	saved, err := customer.AddAddress(addr)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToAddressResponse(saved)
	return &response, nil
}

// UpdateAddress replaces a saved address
func (s *CustomerService) UpdateAddress(ctx context.Context, customerID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	addr, err := valueobject.NewPostalAddress(req.FirstName, req.LastName, req.Line1, req.Line2, req.City, req.State, req.Country, req.PinCode)
	if err != nil {
		return nil, err
	}

	if err := customer.UpdateAddress(addressID, addr); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	for idx := range customer.Addresses {
		if customer.Addresses[idx].ID == addressID {
			response := ToAddressResponse(&customer.Addresses[idx])
			return &response, nil
		}
	}
	return nil, shared.ErrNotFound
}

// RemoveAddress deletes a saved address
func (s *CustomerService) RemoveAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := customer.RemoveAddress(addressID); err != nil {
		return err
	}

	return s.customerRepo.Save(ctx, customer)
}

// SetDefaultAddress marks a saved address as the default
func (s *CustomerService) SetDefaultAddress(ctx context.Context, customerID, addressID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := customer.SetDefaultAddress(addressID); err != nil {
		return err
	}

	return s.customerRepo.Save(ctx, customer)
}

// Readiness reports the checkout section gating for the customer
func (s *CustomerService) Readiness(ctx context.Context, customerID uuid.UUID) (*ReadinessResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToReadinessResponse(customer.Readiness())
	return &response, nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *identity.Customer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range customer.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation - event handling is async
		}
	}
	customer.ClearDomainEvents()
}
