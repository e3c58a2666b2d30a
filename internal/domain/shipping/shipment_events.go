package shipping

import (
	"github.com/storefront/backend/internal/domain/shared"
)

const AggregateTypeShipment = "Shipment"

// Event type identifiers for shipment lifecycle events
const (
	EventTypeShipmentCreated       = "shipment.created"
	EventTypeShipmentAWBAssigned   = "shipment.awb_assigned"
	EventTypeShipmentStatusChanged = "shipment.status_changed"
)

// ShipmentCreatedEvent is published when a shipment record is created
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

func NewShipmentCreatedEvent(s *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, s.ID),
		OrderNumber:     s.OrderNumber,
	}
}

// ShipmentAWBAssignedEvent is published when the provider allocates an AWB
type ShipmentAWBAssignedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	AWB         string `json:"awb"`
	Courier     string `json:"courier"`
}

func NewShipmentAWBAssignedEvent(s *Shipment) *ShipmentAWBAssignedEvent {
	return &ShipmentAWBAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentAWBAssigned, AggregateTypeShipment, s.ID),
		OrderNumber:     s.OrderNumber,
		AWB:             s.AWB,
		Courier:         s.Courier,
	}
}

// ShipmentStatusChangedEvent is published on every status transition
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Status      Status `json:"status"`
}

func NewShipmentStatusChangedEvent(s *Shipment) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, AggregateTypeShipment, s.ID),
		OrderNumber:     s.OrderNumber,
		Status:          s.Status,
	}
}
