package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

// Package defaults used when an order has no recorded dimensions
var (
	defaultWeightKg  = decimal.NewFromFloat(0.5)
	defaultLengthCm  = decimal.NewFromInt(20)
	defaultBreadthCm = decimal.NewFromInt(15)
	defaultHeightCm  = decimal.NewFromInt(10)
)

// ShipmentService orchestrates shipment booking and tracking against the
// logistics provider
type ShipmentService struct {
	shipmentRepo   shipping.Repository
	orderRepo      order.Repository
	provider       shipping.Provider
	pickupLocation string
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo shipping.Repository,
	orderRepo order.Repository,
	provider shipping.Provider,
	pickupLocation string,
	logger *zap.Logger,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:   shipmentRepo,
		orderRepo:      orderRepo,
		provider:       provider,
		pickupLocation: pickupLocation,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create books a shipment for a confirmed order. Creating a shipment for
// an order that already has one returns the existing shipment.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	if existing, err := s.shipmentRepo.FindByOrderID(ctx, req.OrderID); err == nil {
		response := ToShipmentResponse(existing)
		return &response, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusConfirmed {
		return nil, shared.NewDomainError("ORDER_NOT_CONFIRMED", "Only confirmed orders can be shipped")
	}

	shipment, err := shipping.NewShipment(o.ID, o.OrderNumber)
	if err != nil {
		return nil, err
	}

	booking, err := s.provider.BookShipment(ctx, s.bookingRequest(o))
	if err != nil {
		s.logger.Error("Shipment booking failed",
			zap.String("order_number", o.OrderNumber), zap.Error(err))
		return nil, shared.NewDomainError("PROVIDER_ERROR", "Could not book the shipment with the logistics provider")
	}

	if err := shipment.AttachProviderOrder(booking.ProviderOrderID, booking.ProviderShipID); err != nil {
		return nil, err
	}

	if awb, err := s.provider.AssignAWB(ctx, booking.ProviderShipID); err == nil {
		if err := shipment.AssignAWB(awb.AWB, awb.Courier); err != nil {
			return nil, err
		}
	} else {
		// AWB allocation can lag booking; tracking sync picks it up later
		s.logger.Warn("AWB not assigned at booking time",
			zap.String("order_number", o.OrderNumber), zap.Error(err))
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	if err := o.Ship(); err == nil {
		if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
			s.logger.Error("Failed to mark order shipped",
				zap.String("order_number", o.OrderNumber), zap.Error(err))
		}
	}

	s.publishEvents(ctx, shipment)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GenerateLabel returns the shipment label, generating it at the provider
// on first request. Subsequent calls return the stored URL.
func (s *ShipmentService) GenerateLabel(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !shipment.HasLabel() {
		label, err := s.provider.GenerateLabel(ctx, shipment.ProviderShipID)
		if err != nil {
			return nil, shared.NewDomainError("PROVIDER_ERROR", "Could not generate the shipping label")
		}
		if err := shipment.SetLabelURL(label.LabelURL); err != nil {
			return nil, err
		}
		if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
			return nil, err
		}
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// SchedulePickup asks the provider to arrange a carrier pickup
func (s *ShipmentService) SchedulePickup(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	pickup, err := s.provider.SchedulePickup(ctx, shipment.ProviderShipID)
	if err != nil {
		return nil, shared.NewDomainError("PROVIDER_ERROR", "Could not schedule the pickup")
	}

	shipment.SchedulePickup(pickup.ScheduledAt)
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Track syncs the shipment against the provider and returns the fresh
// state. The provider's scan history wholesale replaces the stored one.
func (s *ShipmentService) Track(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, shipment)
}

// TrackByOrder syncs and returns the shipment belonging to an order
func (s *ShipmentService) TrackByOrder(ctx context.Context, orderID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.sync(ctx, shipment)
}

func (s *ShipmentService) sync(ctx context.Context, shipment *shipping.Shipment) (*ShipmentResponse, error) {
	if shipment.AWB == "" {
		// Nothing to track yet; return the stored state
		response := ToShipmentResponse(shipment)
		return &response, nil
	}

	tracking, err := s.provider.Track(ctx, shipment.AWB)
	if err != nil {
		s.logger.Warn("Tracking sync failed, serving stored state",
			zap.String("awb", shipment.AWB), zap.Error(err))
		response := ToShipmentResponse(shipment)
		return &response, nil
	}

	events := make([]shipping.TrackingEvent, 0, len(tracking.Scans))
	for _, scan := range tracking.Scans {
		events = append(events, shipping.TrackingEvent{
			Activity:   scan.Activity,
			Location:   scan.Location,
			OccurredAt: scan.OccurredAt,
		})
	}
	shipment.ReplaceTrackingHistory(events, tracking.EstimatedArrival)

	if tracking.Status != "" && tracking.Status != shipment.Status {
		if err := shipment.TransitionTo(tracking.Status); err != nil {
			s.logger.Warn("Ignoring invalid provider status transition",
				zap.String("awb", shipment.AWB),
				zap.String("from", shipment.Status.String()),
				zap.String("to", tracking.Status.String()))
		} else if tracking.Status == shipping.StatusDelivered {
			s.markOrderDelivered(ctx, shipment.OrderID)
		}
	}

	if err := s.shipmentRepo.SaveWithLock(ctx, shipment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, shipment)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// GetByID returns a shipment without syncing
func (s *ShipmentService) GetByID(ctx context.Context, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List returns shipments for the admin view
func (s *ShipmentService) List(ctx context.Context, filter shared.Filter) ([]ShipmentResponse, int64, error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.shipmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShipmentResponse, 0, len(shipments))
	for _, shipment := range shipments {
		responses = append(responses, ToShipmentResponse(shipment))
	}
	return responses, total, nil
}

func (s *ShipmentService) markOrderDelivered(ctx context.Context, orderID uuid.UUID) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return
	}
	if err := o.Deliver(); err != nil {
		return
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		s.logger.Error("Failed to mark order delivered",
			zap.String("order_number", o.OrderNumber), zap.Error(err))
	}
}

func (s *ShipmentService) bookingRequest(o *order.Order) *shipping.BookingRequest {
	items := make([]shipping.BookingItem, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, shipping.BookingItem{
			Name:      item.Name,
			SKU:       item.ProductID.String(),
			Units:     item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	collectible := decimal.Zero
	paymentMode := "Prepaid"
	if o.PaymentMethod == order.PaymentMethodCOD {
		paymentMode = "COD"
		collectible = o.Total
	}

	return &shipping.BookingRequest{
		OrderNumber:    o.OrderNumber,
		OrderDate:      o.CreatedAt,
		PickupLocation: s.pickupLocation,
		CustomerName:   o.Customer.Name,
		CustomerEmail:  o.Customer.Email,
		CustomerPhone:  o.Customer.Phone,
		AddressLine1:   o.ShippingAddress.Line1,
		AddressLine2:   o.ShippingAddress.Line2,
		City:           o.ShippingAddress.City,
		State:          o.ShippingAddress.State,
		Country:        o.ShippingAddress.Country,
		PinCode:        o.ShippingAddress.PinCode,
		Items:          items,
		PaymentMode:    paymentMode,
		SubTotal:       o.Subtotal,
		CollectibleAmt: collectible,
		WeightKg:       defaultWeightKg,
		LengthCm:       defaultLengthCm,
		BreadthCm:      defaultBreadthCm,
		HeightCm:       defaultHeightCm,
	}
}

func (s *ShipmentService) publishEvents(ctx context.Context, shipment *shipping.Shipment) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range shipment.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish shipment event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	shipment.ClearDomainEvents()
}
