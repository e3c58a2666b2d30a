package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// BundleHandler handles bundle pricing endpoints
type BundleHandler struct {
	BaseHandler
	bundleService *catalogapp.BundleService
}

// NewBundleHandler creates a new BundleHandler
func NewBundleHandler(bundleService *catalogapp.BundleService) *BundleHandler {
	return &BundleHandler{bundleService: bundleService}
}

// SetActiveRequest toggles a bundle on or off
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// List godoc
// @Summary  List active bundles
// @Tags     bundles
// @Produce  json
// @Success  200 {object} APIResponse[[]catalogapp.BundleResponse]
// @Router   /bundles [get]
func (h *BundleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.bundleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// GetBySlug godoc
// @Summary  Get a bundle by slug
// @Tags     bundles
// @Produce  json
// @Param    slug path string true "Bundle slug"
// @Success  200 {object} APIResponse[catalogapp.BundleResponse]
// @Router   /bundles/{slug} [get]
func (h *BundleHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Bundle slug is required")
		return
	}

	bundle, err := h.bundleService.GetBySlug(c.Request.Context(), slug, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bundle)
}

// Quote godoc
// @Summary  Price a bundle at a given quantity
// @Tags     bundles
// @Produce  json
// @Param    slug path string true "Bundle slug"
// @Param    quantity query int true "Quantity" minimum(1)
// @Success  200 {object} APIResponse[catalogapp.BundleQuoteResponse]
// @Router   /bundles/{slug}/quote [get]
func (h *BundleHandler) Quote(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Bundle slug is required")
		return
	}

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		h.BadRequest(c, "Quantity must be a positive integer")
		return
	}

	quote, err := h.bundleService.Quote(c.Request.Context(), slug, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// AdminCreate godoc
// @Summary  Create a bundle (admin)
// @Tags     admin-bundles
// @Accept   json
// @Produce  json
// @Param    request body catalogapp.CreateBundleRequest true "Bundle"
// @Success  201 {object} APIResponse[catalogapp.BundleResponse]
// @Security BearerAuth
// @Router   /admin/bundles [post]
func (h *BundleHandler) AdminCreate(c *gin.Context) {
	var req catalogapp.CreateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bundle, err := h.bundleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bundle)
}

// AdminSetActive godoc
// @Summary  Activate or deactivate a bundle (admin)
// @Tags     admin-bundles
// @Accept   json
// @Produce  json
// @Param    id path string true "Bundle ID" format(uuid)
// @Param    request body SetActiveRequest true "Active flag"
// @Success  200 {object} APIResponse[catalogapp.BundleResponse]
// @Security BearerAuth
// @Router   /admin/bundles/{id}/active [put]
func (h *BundleHandler) AdminSetActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bundle ID format")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bundle, err := h.bundleService.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bundle)
}

// AdminDelete godoc
// @Summary  Delete a bundle (admin)
// @Tags     admin-bundles
// @Param    id path string true "Bundle ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /admin/bundles/{id} [delete]
func (h *BundleHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bundle ID format")
		return
	}

	if err := h.bundleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
