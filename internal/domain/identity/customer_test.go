package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func strptr(s string) *string { return &s }

func createTestCustomer(t *testing.T) *Customer {
	c, err := NewCustomer("asha@example.com", "$2a$10$hash")
	require.NoError(t, err)
	return c
}

func completeAddress(t *testing.T) valueobject.PostalAddress {
	addr, err := valueobject.NewPostalAddress("Asha", "Verma", "14 MG Road", "", "Bengaluru", "Karnataka", "India", "560001")
	require.NoError(t, err)
	return addr
}

// ============================================
// Validation Tests
// ============================================

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"919876543210", true},
		{"98765", false},
		{"98765432101", false},
		{"+1 555 0100", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPhone(tt.phone))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("asha@example.com"))
	assert.False(t, ValidEmail("asha@"))
	assert.False(t, ValidEmail("not an email"))
}

// ============================================
// Profile Patch Tests
// ============================================

func TestCustomer_ApplyPatch_Merges(t *testing.T) {
	c := createTestCustomer(t)
	require.NoError(t, c.ApplyPatch(ProfilePatch{
		FirstName: strptr("Asha"),
		Phone:     strptr("9876543210"),
	}))

	// A later patch with nil fields leaves earlier values untouched
	require.NoError(t, c.ApplyPatch(ProfilePatch{LastName: strptr("Verma")}))

	assert.Equal(t, "Asha", c.FirstName)
	assert.Equal(t, "Verma", c.LastName)
	assert.Equal(t, "9876543210", c.Phone)
	assert.Equal(t, "asha@example.com", c.Email)
}

func TestCustomer_ApplyPatch_RejectsInvalidWithoutPartialApply(t *testing.T) {
	c := createTestCustomer(t)

	err := c.ApplyPatch(ProfilePatch{
		FirstName: strptr("Asha"),
		Phone:     strptr("12345"),
	})
	require.Error(t, err)

	// Nothing from the failed patch is applied
	assert.Empty(t, c.FirstName)
	assert.Empty(t, c.Phone)
}

// ============================================
// Address Tests
// ============================================

func TestCustomer_Addresses(t *testing.T) {
	c := createTestCustomer(t)

	first, err := c.AddAddress(completeAddress(t))
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes the default")

	second, err := c.AddAddress(completeAddress(t))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	require.NoError(t, c.SetDefaultAddress(second.ID))
	assert.Equal(t, second.ID, c.DefaultAddress().ID)

	require.NoError(t, c.RemoveAddress(second.ID))
	require.NotNil(t, c.DefaultAddress())
	assert.Equal(t, first.ID, c.DefaultAddress().ID, "default falls back to the remaining address")
}

// ============================================
// Checkout Readiness Tests
// ============================================

func TestCustomer_Readiness_Gating(t *testing.T) {
	c := createTestCustomer(t)

	// Fresh account: nothing complete
	r := c.Readiness()
	assert.False(t, r.ContactComplete)
	assert.False(t, r.PaymentUnlocked)

	// Address alone does not unlock shipping: contact comes first
	_, err := c.AddAddress(completeAddress(t))
	require.NoError(t, err)
	r = c.Readiness()
	assert.False(t, r.ContactComplete)
	assert.False(t, r.ShippingComplete)
	assert.False(t, r.PaymentUnlocked)

	// Completing contact unlocks the rest
	require.NoError(t, c.ApplyPatch(ProfilePatch{
		FirstName: strptr("Asha"),
		Phone:     strptr("9876543210"),
	}))
	r = c.Readiness()
	assert.True(t, r.ContactComplete)
	assert.True(t, r.ShippingComplete)
	assert.True(t, r.PaymentUnlocked)
	assert.True(t, r.Ready)
}
