package shipping

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shipping"
)

// CreateShipmentRequest books a shipment for a confirmed order
type CreateShipmentRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// TrackingEventResponse represents one scan in the tracking history
type TrackingEventResponse struct {
	Activity   string    `json:"activity"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ShipmentResponse represents a shipment
type ShipmentResponse struct {
	ID               uuid.UUID               `json:"id"`
	OrderID          uuid.UUID               `json:"order_id"`
	OrderNumber      string                  `json:"order_number"`
	Status           shipping.Status         `json:"status"`
	AWB              string                  `json:"awb,omitempty"`
	Courier          string                  `json:"courier,omitempty"`
	LabelURL         string                  `json:"label_url,omitempty"`
	PickupScheduled  *time.Time              `json:"pickup_scheduled,omitempty"`
	EstimatedArrival *time.Time              `json:"estimated_arrival,omitempty"`
	TrackingHistory  []TrackingEventResponse `json:"tracking_history"`
	LastSyncedAt     *time.Time              `json:"last_synced_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

// ToShipmentResponse converts a domain shipment to a response DTO
func ToShipmentResponse(s *shipping.Shipment) ShipmentResponse {
	history := make([]TrackingEventResponse, 0, len(s.TrackingHistory))
	for idx := range s.TrackingHistory {
		e := &s.TrackingHistory[idx]
		history = append(history, TrackingEventResponse{
			Activity:   e.Activity,
			Location:   e.Location,
			OccurredAt: e.OccurredAt,
		})
	}
	return ShipmentResponse{
		ID:               s.ID,
		OrderID:          s.OrderID,
		OrderNumber:      s.OrderNumber,
		Status:           s.Status,
		AWB:              s.AWB,
		Courier:          s.Courier,
		LabelURL:         s.LabelURL,
		PickupScheduled:  s.PickupScheduled,
		EstimatedArrival: s.EstimatedArrival,
		TrackingHistory:  history,
		LastSyncedAt:     s.LastSyncedAt,
		CreatedAt:        s.CreatedAt,
	}
}
