package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	promoapp "github.com/storefront/backend/internal/application/promo"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// PromoHandler handles promo code checks and admin promo management
type PromoHandler struct {
	BaseHandler
	promoService *promoapp.PromoService
}

// NewPromoHandler creates a new PromoHandler
func NewPromoHandler(promoService *promoapp.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// Check godoc
// @Summary  Check whether a promo code applies to the current cart
// @Tags     promos
// @Accept   json
// @Produce  json
// @Param    request body promoapp.CheckRequest true "Code to check"
// @Success  200 {object} APIResponse[promoapp.AppliedPromoResponse]
// @Security BearerAuth
// @Router   /promos/check [post]
func (h *PromoHandler) Check(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req promoapp.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	applied, err := h.promoService.Check(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, applied)
}

// Suggestions godoc
// @Summary  Suggest threshold promos the cart almost qualifies for
// @Tags     promos
// @Produce  json
// @Success  200 {object} APIResponse[[]promo.ThresholdSuggestion]
// @Security BearerAuth
// @Router   /promos/suggestions [get]
func (h *PromoHandler) Suggestions(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	suggestions, err := h.promoService.Suggestions(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}

// AdminCreate godoc
// @Summary  Create a promo code (admin)
// @Tags     admin-promos
// @Accept   json
// @Produce  json
// @Param    request body promoapp.CreatePromoCodeRequest true "Promo code"
// @Success  201 {object} APIResponse[promoapp.PromoCodeResponse]
// @Security BearerAuth
// @Router   /admin/promos [post]
func (h *PromoHandler) AdminCreate(c *gin.Context) {
	var req promoapp.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	code, err := h.promoService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, code)
}

// AdminUpdate godoc
// @Summary  Update a promo code (admin)
// @Tags     admin-promos
// @Accept   json
// @Produce  json
// @Param    id path string true "Promo code ID" format(uuid)
// @Param    request body promoapp.UpdatePromoCodeRequest true "Promo code update"
// @Success  200 {object} APIResponse[promoapp.PromoCodeResponse]
// @Security BearerAuth
// @Router   /admin/promos/{id} [put]
func (h *PromoHandler) AdminUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	var req promoapp.UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	code, err := h.promoService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// AdminGet godoc
// @Summary  Get a promo code (admin)
// @Tags     admin-promos
// @Produce  json
// @Param    id path string true "Promo code ID" format(uuid)
// @Success  200 {object} APIResponse[promoapp.PromoCodeResponse]
// @Security BearerAuth
// @Router   /admin/promos/{id} [get]
func (h *PromoHandler) AdminGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	code, err := h.promoService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, code)
}

// AdminList godoc
// @Summary  List promo codes (admin)
// @Tags     admin-promos
// @Produce  json
// @Success  200 {object} APIResponse[[]promoapp.PromoCodeResponse]
// @Security BearerAuth
// @Router   /admin/promos [get]
func (h *PromoHandler) AdminList(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	codes, total, err := h.promoService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, codes, total, filter.Page, filter.PageSize)
}

// AdminDelete godoc
// @Summary  Delete a promo code (admin)
// @Tags     admin-promos
// @Param    id path string true "Promo code ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /admin/promos/{id} [delete]
func (h *PromoHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid promo code ID format")
		return
	}

	if err := h.promoService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
