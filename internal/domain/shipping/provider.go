package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// Booking errors
	ErrInvalidShipmentOrder = errors.New("shipping: invalid shipment order details")
	ErrInvalidPackage       = errors.New("shipping: invalid package dimensions")
	ErrInvalidPickupAddress = errors.New("shipping: invalid pickup location")

	// Provider errors
	ErrProviderNotConfigured   = errors.New("shipping: provider not configured")
	ErrProviderAuthFailed      = errors.New("shipping: provider authentication failed")
	ErrProviderRequestFailed   = errors.New("shipping: provider request failed")
	ErrProviderInvalidResponse = errors.New("shipping: invalid provider response")
	ErrAWBNotAssigned          = errors.New("shipping: AWB not assigned yet")
	ErrShipmentNotFound        = errors.New("shipping: shipment not found at provider")
)

// BookingItem is one order line forwarded to the logistics provider
type BookingItem struct {
	Name      string
	SKU       string
	Units     int
	UnitPrice decimal.Decimal
}

// BookingRequest asks the provider to register a shipment order
type BookingRequest struct {
	OrderNumber     string
	OrderDate       time.Time
	PickupLocation  string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	Country         string
	PinCode         string
	Items           []BookingItem
	PaymentMode     string // "Prepaid" or "COD"
	SubTotal        decimal.Decimal
	CollectibleAmt  decimal.Decimal
	WeightKg        decimal.Decimal
	LengthCm        decimal.Decimal
	BreadthCm       decimal.Decimal
	HeightCm        decimal.Decimal
}

// Validate validates the booking request
func (r *BookingRequest) Validate() error {
	if r.OrderNumber == "" || r.CustomerPhone == "" || r.PinCode == "" {
		return ErrInvalidShipmentOrder
	}
	if len(r.Items) == 0 {
		return ErrInvalidShipmentOrder
	}
	if r.WeightKg.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPackage
	}
	return nil
}

// BookingResponse carries the provider's references for a booked shipment
type BookingResponse struct {
	ProviderOrderID string
	ProviderShipID  string
	Status          string
}

// AWBResponse carries the allocated airway bill
type AWBResponse struct {
	AWB       string
	Courier   string
	CourierID string
}

// LabelResponse carries the generated label document URL
type LabelResponse struct {
	LabelURL string
}

// PickupResponse confirms a scheduled pickup
type PickupResponse struct {
	ScheduledAt time.Time
	TokenNumber string
}

// TrackingScan is one provider scan entry, already normalized
type TrackingScan struct {
	Activity   string
	Location   string
	OccurredAt time.Time
}

// TrackingResponse is the provider's full view of a shipment in flight
type TrackingResponse struct {
	Status           Status
	ProviderStatus   string
	Scans            []TrackingScan
	EstimatedArrival *time.Time
}

// Provider is the port interface for logistics providers. Declared in the
// domain layer; the Shiprocket adapter lives in the infrastructure layer.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// BookShipment registers a shipment order with the provider
	BookShipment(ctx context.Context, req *BookingRequest) (*BookingResponse, error)

	// AssignAWB asks the provider to allocate an airway bill
	AssignAWB(ctx context.Context, providerShipID string) (*AWBResponse, error)

	// GenerateLabel generates a shipping label for the shipment
	GenerateLabel(ctx context.Context, providerShipID string) (*LabelResponse, error)

	// SchedulePickup requests a carrier pickup
	SchedulePickup(ctx context.Context, providerShipID string) (*PickupResponse, error)

	// Track fetches the current scan history for an AWB
	Track(ctx context.Context, awb string) (*TrackingResponse, error)

	// CancelShipment cancels a booked shipment at the provider
	CancelShipment(ctx context.Context, providerOrderID string) error
}
