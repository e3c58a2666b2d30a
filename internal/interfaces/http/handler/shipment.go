package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/storefront/backend/internal/application/order"
	shippingapp "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ShipmentHandler handles shipment booking and tracking endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *shippingapp.ShipmentService
	orderService    *orderapp.OrderService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *shippingapp.ShipmentService, orderService *orderapp.OrderService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
		orderService:    orderService,
	}
}

// TrackByOrder godoc
// @Summary  Track the shipment for one of the customer's orders
// @Tags     shipments
// @Produce  json
// @Param    id path string true "Order ID" format(uuid)
// @Success  200 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /orders/{id}/shipment [get]
func (h *ShipmentHandler) TrackByOrder(c *gin.Context) {
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

	// ownership check before exposing tracking data
	if _, err := h.orderService.GetByID(c.Request.Context(), customerID, orderID, middleware.IsAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	shipment, err := h.shipmentService.TrackByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AdminCreate godoc
// @Summary  Book a shipment for a confirmed order (admin)
// @Tags     admin-shipments
// @Accept   json
// @Produce  json
// @Param    request body shippingapp.CreateShipmentRequest true "Order to ship"
// @Success  201 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments [post]
func (h *ShipmentHandler) AdminCreate(c *gin.Context) {
	var req shippingapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// AdminList godoc
// @Summary  List shipments (admin)
// @Tags     admin-shipments
// @Produce  json
// @Success  200 {object} APIResponse[[]shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments [get]
func (h *ShipmentHandler) AdminList(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	shipments, total, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, shipments, total, filter.Page, filter.PageSize)
}

// AdminGet godoc
// @Summary  Get a shipment (admin)
// @Tags     admin-shipments
// @Produce  json
// @Param    id path string true "Shipment ID" format(uuid)
// @Success  200 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments/{id} [get]
func (h *ShipmentHandler) AdminGet(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AdminGenerateLabel godoc
// @Summary  Generate the shipping label (admin)
// @Tags     admin-shipments
// @Produce  json
// @Param    id path string true "Shipment ID" format(uuid)
// @Success  200 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments/{id}/label [post]
func (h *ShipmentHandler) AdminGenerateLabel(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.GenerateLabel(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AdminSchedulePickup godoc
// @Summary  Schedule courier pickup (admin)
// @Tags     admin-shipments
// @Produce  json
// @Param    id path string true "Shipment ID" format(uuid)
// @Success  200 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments/{id}/pickup [post]
func (h *ShipmentHandler) AdminSchedulePickup(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.SchedulePickup(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// AdminTrack godoc
// @Summary  Refresh tracking from the shipping provider (admin)
// @Tags     admin-shipments
// @Produce  json
// @Param    id path string true "Shipment ID" format(uuid)
// @Success  200 {object} APIResponse[shippingapp.ShipmentResponse]
// @Security BearerAuth
// @Router   /admin/shipments/{id}/track [post]
func (h *ShipmentHandler) AdminTrack(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.Track(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}
