package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentapp "github.com/storefront/backend/internal/application/content"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// ReviewHandler handles product reviews and moderation
type ReviewHandler struct {
	BaseHandler
	reviewService *contentapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *contentapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ModerateRequest approves or rejects a pending review
type ModerateRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Submit godoc
// @Summary  Submit a review for a product
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Param    request body contentapp.SubmitReviewRequest true "Review"
// @Success  201 {object} APIResponse[contentapp.ReviewResponse]
// @Security BearerAuth
// @Router   /products/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req contentapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// ListForProduct godoc
// @Summary  List approved reviews for a product
// @Tags     reviews
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Success  200 {object} APIResponse[[]contentapp.ReviewResponse]
// @Router   /products/{id}/reviews [get]
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.reviewService.ListForProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// Summary godoc
// @Summary  Get the rating summary for a product
// @Tags     reviews
// @Produce  json
// @Param    id path string true "Product ID" format(uuid)
// @Success  200 {object} APIResponse[contentapp.RatingSummaryResponse]
// @Router   /products/{id}/reviews/summary [get]
func (h *ReviewHandler) Summary(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	summary, err := h.reviewService.Summary(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// AdminListPending godoc
// @Summary  List reviews awaiting moderation (admin)
// @Tags     admin-reviews
// @Produce  json
// @Success  200 {object} APIResponse[[]contentapp.ReviewResponse]
// @Security BearerAuth
// @Router   /admin/reviews/pending [get]
func (h *ReviewHandler) AdminListPending(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	page, err := h.reviewService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// AdminModerate godoc
// @Summary  Approve or reject a review (admin)
// @Tags     admin-reviews
// @Accept   json
// @Produce  json
// @Param    id path string true "Review ID" format(uuid)
// @Param    request body ModerateRequest true "Moderation decision"
// @Success  200 {object} APIResponse[contentapp.ReviewResponse]
// @Security BearerAuth
// @Router   /admin/reviews/{id}/moderate [post]
func (h *ReviewHandler) AdminModerate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	review, err := h.reviewService.Moderate(c.Request.Context(), id, *req.Approve)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// AdminDelete godoc
// @Summary  Delete a review (admin)
// @Tags     admin-reviews
// @Param    id path string true "Review ID" format(uuid)
// @Success  204
// @Security BearerAuth
// @Router   /admin/reviews/{id} [delete]
func (h *ReviewHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
