package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

// pinCodeRegex matches a numeric Indian PIN code (6 digits)
var pinCodeRegex = regexp.MustCompile(`^\d{6}$`)

// PostalAddress is a value object representing a shipping address
// It is immutable - construct a new instance to change any field
type PostalAddress struct {
	firstName string
	lastName  string
	line1     string
	line2     string
	city      string
	state     string
	country   string
	pinCode   string
}

// NewPostalAddress creates a new PostalAddress with all required fields validated.
// Line2 is optional, everything else is required; the PIN code must be numeric.
func NewPostalAddress(firstName, lastName, line1, line2, city, state, country, pinCode string) (PostalAddress, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	country = strings.TrimSpace(country)
	pinCode = strings.TrimSpace(pinCode)

	if firstName == "" {
		return PostalAddress{}, fmt.Errorf("first name is required")
	}
	if lastName == "" {
		return PostalAddress{}, fmt.Errorf("last name is required")
	}
	if line1 == "" {
		return PostalAddress{}, fmt.Errorf("address line is required")
	}
	if city == "" {
		return PostalAddress{}, fmt.Errorf("city is required")
	}
	if state == "" {
		return PostalAddress{}, fmt.Errorf("state is required")
	}
	if country == "" {
		return PostalAddress{}, fmt.Errorf("country is required")
	}
	if !pinCodeRegex.MatchString(pinCode) {
		return PostalAddress{}, fmt.Errorf("pin code must be a 6-digit number")
	}

	return PostalAddress{
		firstName: firstName,
		lastName:  lastName,
		line1:     line1,
		line2:     line2,
		city:      city,
		state:     state,
		country:   country,
		pinCode:   pinCode,
	}, nil
}

// EmptyPostalAddress returns a zero-value address
func EmptyPostalAddress() PostalAddress {
	return PostalAddress{}
}

// FirstName returns the recipient first name
func (a PostalAddress) FirstName() string { return a.firstName }

// LastName returns the recipient last name
func (a PostalAddress) LastName() string { return a.lastName }

// Line1 returns the primary address line
func (a PostalAddress) Line1() string { return a.line1 }

// Line2 returns the secondary address line
func (a PostalAddress) Line2() string { return a.line2 }

// City returns the city
func (a PostalAddress) City() string { return a.city }

// State returns the state
func (a PostalAddress) State() string { return a.state }

// Country returns the country
func (a PostalAddress) Country() string { return a.country }

// PinCode returns the postal PIN code
func (a PostalAddress) PinCode() string { return a.pinCode }

// IsEmpty returns true if the address is a zero value
func (a PostalAddress) IsEmpty() bool {
	return a == PostalAddress{}
}

// IsComplete returns true if all required fields are populated
func (a PostalAddress) IsComplete() bool {
	return a.firstName != "" && a.lastName != "" && a.line1 != "" &&
		a.city != "" && a.state != "" && a.country != "" && a.pinCode != ""
}

// RecipientName returns the full recipient name
func (a PostalAddress) RecipientName() string {
	return strings.TrimSpace(a.firstName + " " + a.lastName)
}

// String returns a single-line representation
func (a PostalAddress) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, a.city, a.state, a.country, a.pinCode)
	return strings.Join(parts, ", ")
}
