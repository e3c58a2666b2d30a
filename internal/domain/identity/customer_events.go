package identity

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerRegistered     = "CustomerRegistered"
	EventTypeCustomerProfileUpdated = "CustomerProfileUpdated"
)

// CustomerRegisteredEvent is published when a new customer account is created
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
}

// NewCustomerRegisteredEvent creates a new CustomerRegisteredEvent
func NewCustomerRegisteredEvent(customer *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Email:           customer.Email,
	}
}

// CustomerProfileUpdatedEvent is published when profile fields change
type CustomerProfileUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
}

// NewCustomerProfileUpdatedEvent creates a new CustomerProfileUpdatedEvent
func NewCustomerProfileUpdatedEvent(customer *Customer) *CustomerProfileUpdatedEvent {
	return &CustomerProfileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerProfileUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Email:           customer.Email,
		Phone:           customer.Phone,
	}
}
