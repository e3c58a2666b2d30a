package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order history and admin order management
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListMine godoc
// @Summary  List the authenticated customer's orders
// @Tags     orders
// @Produce  json
// @Success  200 {object} APIResponse[[]orderapp.ListItemResponse]
// @Security BearerAuth
// @Router   /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.ListForCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetMine godoc
// @Summary  Get one of the authenticated customer's orders
// @Tags     orders
// @Produce  json
// @Param    id path string true "Order ID" format(uuid)
// @Success  200 {object} APIResponse[orderapp.OrderResponse]
// @Security BearerAuth
// @Router   /orders/{id} [get]
func (h *OrderHandler) GetMine(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), customerID, orderID, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetByNumber godoc
// @Summary  Look up an order by order number
// @Tags     orders
// @Produce  json
// @Param    number path string true "Order number"
// @Success  200 {object} APIResponse[orderapp.OrderResponse]
// @Security BearerAuth
// @Router   /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderNumber := c.Param("number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), customerID, orderNumber, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @Summary  Cancel an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id path string true "Order ID" format(uuid)
// @Param    request body orderapp.CancelRequest true "Cancellation reason"
// @Success  200 {object} APIResponse[orderapp.OrderResponse]
// @Security BearerAuth
// @Router   /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	customerID, err := getCustomerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), customerID, orderID, middleware.IsAdmin(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AdminList godoc
// @Summary  List all orders (admin)
// @Tags     admin-orders
// @Produce  json
// @Success  200 {object} APIResponse[[]orderapp.ListItemResponse]
// @Security BearerAuth
// @Router   /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// AdminGet godoc
// @Summary  Get any order (admin)
// @Tags     admin-orders
// @Produce  json
// @Param    id path string true "Order ID" format(uuid)
// @Success  200 {object} APIResponse[orderapp.OrderResponse]
// @Security BearerAuth
// @Router   /admin/orders/{id} [get]
func (h *OrderHandler) AdminGet(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), uuid.Nil, orderID, true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// AdminMarkDelivered godoc
// @Summary  Mark an order delivered (admin)
// @Tags     admin-orders
// @Produce  json
// @Param    id path string true "Order ID" format(uuid)
// @Success  200 {object} APIResponse[orderapp.OrderResponse]
// @Security BearerAuth
// @Router   /admin/orders/{id}/delivered [post]
func (h *OrderHandler) AdminMarkDelivered(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
