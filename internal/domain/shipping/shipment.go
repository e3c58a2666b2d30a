package shipping

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Status is the normalized shipment status vocabulary. Provider-specific
// codes are mapped into this set at the adapter boundary.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusProcessing  Status = "PROCESSING"
	StatusReadyToShip Status = "READY_TO_SHIP"
	StatusPickedUp    Status = "PICKED_UP"
	StatusInTransit   Status = "IN_TRANSIT"
	StatusOutForDel   Status = "OUT_FOR_DELIVERY"
	StatusDelivered   Status = "DELIVERED"
	StatusReturned    Status = "RETURNED"
	StatusCancelled   Status = "CANCELLED"
)

// IsValid checks if the status is a known shipment status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReadyToShip, StatusPickedUp,
		StatusInTransit, StatusOutForDel, StatusDelivered, StatusReturned,
		StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the shipment lifecycle
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned || s == StatusCancelled
}

// CanTransitionTo checks if the status can move to the target status.
// Forward movement may skip intermediate states since carriers do not
// report every hop, but terminal states never change.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled || target == StatusReturned {
		return true
	}
	return statusRank(target) > statusRank(s)
}

func statusRank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusReadyToShip:
		return 2
	case StatusPickedUp:
		return 3
	case StatusInTransit:
		return 4
	case StatusOutForDel:
		return 5
	case StatusDelivered:
		return 6
	}
	return -1
}

// TrackingEvent is one entry in the carrier's scan history
type TrackingEvent struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	Activity   string
	Location   string
	OccurredAt time.Time
	CreatedAt  time.Time
}

// TableName specifies the table name for GORM
func (TrackingEvent) TableName() string {
	return "shipment_tracking_events"
}

// Shipment is the aggregate root tracking an order's physical delivery
type Shipment struct {
	shared.BaseAggregateRoot
	OrderID          uuid.UUID
	OrderNumber      string
	ProviderOrderID  string
	ProviderShipID   string
	AWB              string
	Courier          string
	Status           Status
	LabelURL         string
	ManifestURL      string
	PickupScheduled  *time.Time
	EstimatedArrival *time.Time
	TrackingHistory  []TrackingEvent
	LastSyncedAt     *time.Time
}

// TableName specifies the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a shipment in PENDING status for an order
func NewShipment(orderID uuid.UUID, orderNumber string) (*Shipment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}

	s := &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		OrderNumber:       orderNumber,
		Status:            StatusPending,
		TrackingHistory:   make([]TrackingEvent, 0),
	}

	s.AddDomainEvent(NewShipmentCreatedEvent(s))

	return s, nil
}

// AttachProviderOrder records the provider's order reference after booking
func (s *Shipment) AttachProviderOrder(providerOrderID, providerShipID string) error {
	if providerOrderID == "" {
		return shared.NewDomainError("INVALID_PROVIDER_ORDER", "Provider order ID cannot be empty")
	}
	s.ProviderOrderID = providerOrderID
	s.ProviderShipID = providerShipID
	s.Touch()
	return nil
}

// AssignAWB records the airway bill and courier once the provider
// allocates one. Reassignment is rejected.
func (s *Shipment) AssignAWB(awb, courier string) error {
	if awb == "" {
		return shared.NewDomainError("INVALID_AWB", "AWB cannot be empty")
	}
	if s.AWB != "" && s.AWB != awb {
		return shared.NewDomainError("AWB_ALREADY_ASSIGNED", "Shipment already has an AWB assigned")
	}
	s.AWB = awb
	s.Courier = courier
	s.Touch()

	s.AddDomainEvent(NewShipmentAWBAssignedEvent(s))

	return nil
}

// HasLabel reports whether a label has already been generated
func (s *Shipment) HasLabel() bool {
	return s.LabelURL != ""
}

// SetLabelURL stores the generated label. Once set the URL is stable;
// repeated generation requests return the stored URL instead.
func (s *Shipment) SetLabelURL(url string) error {
	if url == "" {
		return shared.NewDomainError("INVALID_LABEL_URL", "Label URL cannot be empty")
	}
	if s.HasLabel() {
		return nil
	}
	s.LabelURL = url
	s.Touch()
	return nil
}

// SetManifestURL stores the generated manifest URL
func (s *Shipment) SetManifestURL(url string) {
	s.ManifestURL = url
	s.Touch()
}

// SchedulePickup records the pickup date confirmed by the provider
func (s *Shipment) SchedulePickup(at time.Time) {
	s.PickupScheduled = &at
	s.Touch()
}

// TransitionTo moves the shipment to a new status if the transition is legal
func (s *Shipment) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown shipment status %s", target))
	}
	if target == s.Status {
		return nil
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition shipment from %s to %s", s.Status, target))
	}

	s.Status = target
	s.Touch()

	s.AddDomainEvent(NewShipmentStatusChangedEvent(s))

	return nil
}

// ReplaceTrackingHistory overwrites the scan history with the provider's
// latest full timeline. The provider is the source of truth, so a sync
// replaces rather than appends.
func (s *Shipment) ReplaceTrackingHistory(events []TrackingEvent, eta *time.Time) {
	now := time.Now()
	history := make([]TrackingEvent, 0, len(events))
	for _, e := range events {
		e.ID = uuid.New()
		e.ShipmentID = s.ID
		e.CreatedAt = now
		history = append(history, e)
	}
	s.TrackingHistory = history
	s.EstimatedArrival = eta
	s.LastSyncedAt = &now
	s.UpdatedAt = now
}
