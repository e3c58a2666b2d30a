package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

var (
	// phoneRegex accepts a bare 10-digit number or a 12-digit number
	// prefixed with +91 or 91
	phoneRegex = regexp.MustCompile(`^(\+91|91)?\d{10}$`)

	// emailRegex is a deliberately simple local@domain.tld check
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidPhone reports whether the phone number is acceptable:
// exactly 10 digits, optionally prefixed with +91 or 91
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidEmail reports whether the email has a basic local@domain.tld shape
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// CustomerAddress is a saved shipping address belonging to a customer
type CustomerAddress struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	FirstName  string
	LastName   string
	Line1      string
	Line2      string
	City       string
	State      string
	Country    string
	PinCode    string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToPostalAddress converts the stored address into the value object,
// validating it in the process
func (a *CustomerAddress) ToPostalAddress() (valueobject.PostalAddress, error) {
	return valueobject.NewPostalAddress(a.FirstName, a.LastName, a.Line1, a.Line2, a.City, a.State, a.Country, a.PinCode)
}

// IsComplete reports whether the address satisfies the checkout requirements
func (a *CustomerAddress) IsComplete() bool {
	_, err := a.ToPostalAddress()
	return err == nil
}

// TableName specifies the table name for GORM
func (CustomerAddress) TableName() string {
	return "customer_addresses"
}

// Customer is the aggregate root for a storefront customer account
type Customer struct {
	shared.BaseAggregateRoot
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	PasswordHash string
	Addresses    []CustomerAddress
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer account
// Email and password hash are required at registration; the rest of the
// profile may be filled in later through partial updates
func NewCustomer(email, passwordHash string) (*Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !ValidEmail(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email must look like local@domain.tld")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Addresses:         make([]CustomerAddress, 0),
	}

	customer.AddDomainEvent(NewCustomerRegisteredEvent(customer))

	return customer, nil
}

// DisplayName is the customer's public-facing name. Falls back to the
// email local part when the profile has no name yet.
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(c.Email, "@"); at > 0 {
		return c.Email[:at]
	}
	return c.Email
}

// ProfilePatch carries the fields of a partial profile update.
// Nil fields are left untouched - updates merge, they never replace.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
}

// ApplyPatch merges the provided fields into the profile.
// Each provided field is validated before any of them is applied.
func (c *Customer) ApplyPatch(patch ProfilePatch) error {
	if patch.Phone != nil {
		phone := strings.TrimSpace(*patch.Phone)
		if phone != "" && !ValidPhone(phone) {
			return shared.NewDomainError("INVALID_PHONE", "Phone must be 10 digits, optionally prefixed with +91 or 91")
		}
		patch.Phone = &phone
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if !ValidEmail(email) {
			return shared.NewDomainError("INVALID_EMAIL", "Email must look like local@domain.tld")
		}
		patch.Email = &email
	}

	if patch.FirstName != nil {
		c.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		c.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	c.Touch()

	return nil
}

// AddAddress adds a saved address; the first address becomes the default
func (c *Customer) AddAddress(addr valueobject.PostalAddress) (*CustomerAddress, error) {
	if !addr.IsComplete() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address is missing required fields")
	}

	now := time.Now()
	saved := CustomerAddress{
		ID:         uuid.New(),
		CustomerID: c.ID,
		FirstName:  addr.FirstName(),
		LastName:   addr.LastName(),
		Line1:      addr.Line1(),
		Line2:      addr.Line2(),
		City:       addr.City(),
		State:      addr.State(),
		Country:    addr.Country(),
		PinCode:    addr.PinCode(),
		IsDefault:  len(c.Addresses) == 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	c.Addresses = append(c.Addresses, saved)
	c.UpdatedAt = now

	return &c.Addresses[len(c.Addresses)-1], nil
}

// UpdateAddress replaces the fields of an existing saved address
func (c *Customer) UpdateAddress(addressID uuid.UUID, addr valueobject.PostalAddress) error {
	if !addr.IsComplete() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address is missing required fields")
	}

	for idx := range c.Addresses {
		if c.Addresses[idx].ID == addressID {
			now := time.Now()
			c.Addresses[idx].FirstName = addr.FirstName()
			c.Addresses[idx].LastName = addr.LastName()
			c.Addresses[idx].Line1 = addr.Line1()
			c.Addresses[idx].Line2 = addr.Line2()
			c.Addresses[idx].City = addr.City()
			c.Addresses[idx].State = addr.State()
			c.Addresses[idx].Country = addr.Country()
			c.Addresses[idx].PinCode = addr.PinCode()
			c.Addresses[idx].UpdatedAt = now
			c.UpdatedAt = now
			return nil
		}
	}

	return shared.NewDomainError("ADDRESS_NOT_FOUND", "Saved address not found")
}

// RemoveAddress removes a saved address; if it was the default, the first
// remaining address becomes the default
func (c *Customer) RemoveAddress(addressID uuid.UUID) error {
	for idx, addr := range c.Addresses {
		if addr.ID == addressID {
			wasDefault := addr.IsDefault
			c.Addresses = append(c.Addresses[:idx], c.Addresses[idx+1:]...)
			if wasDefault && len(c.Addresses) > 0 {
				c.Addresses[0].IsDefault = true
			}
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ADDRESS_NOT_FOUND", "Saved address not found")
}

// SetDefaultAddress marks the given address as the default
func (c *Customer) SetDefaultAddress(addressID uuid.UUID) error {
	found := false
	for idx := range c.Addresses {
		if c.Addresses[idx].ID == addressID {
			c.Addresses[idx].IsDefault = true
			found = true
		} else {
			c.Addresses[idx].IsDefault = false
		}
	}
	if !found {
		return shared.NewDomainError("ADDRESS_NOT_FOUND", "Saved address not found")
	}
	c.Touch()
	return nil
}

// DefaultAddress returns the default saved address, or nil if none
func (c *Customer) DefaultAddress() *CustomerAddress {
	for idx := range c.Addresses {
		if c.Addresses[idx].IsDefault {
			return &c.Addresses[idx]
		}
	}
	return nil
}

// ContactComplete reports whether the contact section of the checkout
// form is satisfied
func (c *Customer) ContactComplete() bool {
	return strings.TrimSpace(c.FirstName) != "" &&
		ValidPhone(c.Phone) &&
		ValidEmail(c.Email)
}

// ShippingComplete reports whether the customer has at least one complete
// saved address
func (c *Customer) ShippingComplete() bool {
	for idx := range c.Addresses {
		if c.Addresses[idx].IsComplete() {
			return true
		}
	}
	return false
}

// CheckoutReadiness describes how far through the checkout information
// sections the customer can progress. A later section is only reachable
// once every earlier section is complete.
type CheckoutReadiness struct {
	ContactComplete  bool
	ShippingComplete bool
	PaymentUnlocked  bool
	Ready            bool
}

// Readiness computes the checkout section gating for this customer
func (c *Customer) Readiness() CheckoutReadiness {
	contact := c.ContactComplete()
	shipping := contact && c.ShippingComplete()
	return CheckoutReadiness{
		ContactComplete:  contact,
		ShippingComplete: shipping,
		PaymentUnlocked:  contact && shipping,
		Ready:            contact && shipping,
	}
}
