package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// ==================== Auth DTOs ====================

// RegisterRequest represents an account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries tokens and the customer profile after auth
type AuthResponse struct {
	Customer CustomerResponse `json:"customer"`
	Tokens   *auth.TokenPair  `json:"tokens"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ==================== Profile DTOs ====================

// UpdateProfileRequest is a merge-patch of the profile. Absent fields
// are left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone" binding:"omitempty,inphone"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

// AddressRequest represents a saved address create or update
type AddressRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Line1     string `json:"line1" binding:"required,max=200"`
	Line2     string `json:"line2" binding:"max=200"`
	City      string `json:"city" binding:"required,max=100"`
	State     string `json:"state" binding:"required,max=100"`
	Country   string `json:"country" binding:"required,max=100"`
	PinCode   string `json:"pin_code" binding:"required,pincode"`
}

// AddressResponse represents a saved address
type AddressResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	PinCode   string    `json:"pin_code"`
	IsDefault bool      `json:"is_default"`
}

// CustomerResponse represents the customer profile
type CustomerResponse struct {
	ID        uuid.UUID         `json:"id"`
	FirstName string            `json:"first_name,omitempty"`
	LastName  string            `json:"last_name,omitempty"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Addresses []AddressResponse `json:"addresses"`
	CreatedAt time.Time         `json:"created_at"`
}

// ReadinessResponse reports how far through the checkout sections the
// customer can progress
type ReadinessResponse struct {
	ContactComplete  bool `json:"contact_complete"`
	ShippingComplete bool `json:"shipping_complete"`
	PaymentUnlocked  bool `json:"payment_unlocked"`
	Ready            bool `json:"ready"`
}

// ==================== Mappers ====================

// ToAddressResponse converts a domain address to a response DTO
func ToAddressResponse(a *identity.CustomerAddress) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Line1:     a.Line1,
		Line2:     a.Line2,
		City:      a.City,
		State:     a.State,
		Country:   a.Country,
		PinCode:   a.PinCode,
		IsDefault: a.IsDefault,
	}
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *identity.Customer) CustomerResponse {
	addresses := make([]AddressResponse, 0, len(c.Addresses))
	for idx := range c.Addresses {
		addresses = append(addresses, ToAddressResponse(&c.Addresses[idx]))
	}
	return CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Addresses: addresses,
		CreatedAt: c.CreatedAt,
	}
}

// ToReadinessResponse converts the domain readiness to a response DTO
func ToReadinessResponse(r identity.CheckoutReadiness) ReadinessResponse {
	return ReadinessResponse{
		ContactComplete:  r.ContactComplete,
		ShippingComplete: r.ShippingComplete,
		PaymentUnlocked:  r.PaymentUnlocked,
		Ready:            r.Ready,
	}
}
