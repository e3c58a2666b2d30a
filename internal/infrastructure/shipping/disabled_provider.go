package shipping

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shipping"
)

var errProviderDisabled = shared.NewDomainError("PROVIDER_UNAVAILABLE", "logistics provider is not configured")

// DisabledProvider is wired when no logistics provider is configured.
// Every operation fails with PROVIDER_UNAVAILABLE so that shipment
// endpoints degrade cleanly in environments without credentials.
type DisabledProvider struct{}

var _ shipping.Provider = (*DisabledProvider)(nil)

func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

func (p *DisabledProvider) Name() string {
	return "disabled"
}

func (p *DisabledProvider) BookShipment(ctx context.Context, req *shipping.BookingRequest) (*shipping.BookingResponse, error) {
	return nil, errProviderDisabled
}

func (p *DisabledProvider) AssignAWB(ctx context.Context, providerShipID string) (*shipping.AWBResponse, error) {
	return nil, errProviderDisabled
}

func (p *DisabledProvider) GenerateLabel(ctx context.Context, providerShipID string) (*shipping.LabelResponse, error) {
	return nil, errProviderDisabled
}

func (p *DisabledProvider) SchedulePickup(ctx context.Context, providerShipID string) (*shipping.PickupResponse, error) {
	return nil, errProviderDisabled
}

func (p *DisabledProvider) Track(ctx context.Context, awb string) (*shipping.TrackingResponse, error) {
	return nil, errProviderDisabled
}

func (p *DisabledProvider) CancelShipment(ctx context.Context, providerOrderID string) error {
	return errProviderDisabled
}
