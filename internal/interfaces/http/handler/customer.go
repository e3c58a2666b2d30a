package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/storefront/backend/internal/application/identity"
)

// CustomerHandler handles customer profile and address endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *identityapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *identityapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetProfile godoc
// @Summary  Get the authenticated customer's profile
// @Tags     customers
// @Produce  json
// @Success  200 {object} APIResponse[identityapp.CustomerResponse]
// @Security BearerAuth
// @Router   /me [get]
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.customerService.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile godoc
// @Summary  Update the authenticated customer's profile
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    request body identityapp.UpdateProfileRequest true "Profile update"
// @Success  200 {object} APIResponse[identityapp.CustomerResponse]
// @Security BearerAuth
// @Router   /me [put]
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	profile, err := h.customerService.UpdateProfile(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Readiness godoc
// @Summary  Report which checkout sections are complete
// @Tags     customers
// @Produce  json
// @Success  200 {object} APIResponse[identityapp.ReadinessResponse]
// @Security BearerAuth
// @Router   /me/readiness [get]
func (h *CustomerHandler) Readiness(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	readiness, err := h.customerService.Readiness(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, readiness)
}

// AddAddress godoc
// @Summary  Add a shipping address
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    request body identityapp.AddressRequest true "Address"
// @Success  201 {object} APIResponse[identityapp.AddressResponse]
// @Security BearerAuth
// @Router   /me/addresses [post]
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.customerService.AddAddress(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// UpdateAddress godoc
// @Summary  Update a shipping address
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    id path string true "Address ID" format(uuid)
// @Param    request body identityapp.AddressRequest true "Address"
// @Success  200 {object} APIResponse[identityapp.AddressResponse]
// @Security BearerAuth
// @Router   /me/addresses/{id} [put]
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req identityapp.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.customerService.UpdateAddress(c.Request.Context(), customerID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// RemoveAddress godoc
// @Summary  Remove a shipping address
// @Tags     customers
// @Param    id path string true "Address ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /me/addresses/{id} [delete]
func (h *CustomerHandler) RemoveAddress(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.customerService.RemoveAddress(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetDefaultAddress godoc
// @Summary  Mark an address as the default shipping address
// @Tags     customers
// @Param    id path string true "Address ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /me/addresses/{id}/default [post]
func (h *CustomerHandler) SetDefaultAddress(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.customerService.SetDefaultAddress(c.Request.Context(), customerID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
