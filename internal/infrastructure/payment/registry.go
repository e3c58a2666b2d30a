package payment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// GatewayRegistry holds the configured payment gateways
type GatewayRegistry struct {
	gateways map[payment.GatewayType]payment.Gateway
}

// NewGatewayRegistry builds the registry from configuration. Gateways
// that are disabled or missing credentials are skipped with a warning;
// checkout rejects their payment methods at request time.
func NewGatewayRegistry(cfg *config.Config, logger *zap.Logger) *GatewayRegistry {
	registry := &GatewayRegistry{
		gateways: make(map[payment.GatewayType]payment.Gateway),
	}

	if cfg.Razorpay.Enabled {
		adapter, err := NewRazorpayAdapter(cfg.Razorpay)
		if err != nil {
			logger.Warn("razorpay gateway not registered", zap.Error(err))
		} else {
			registry.gateways[payment.GatewayTypeRazorpay] = adapter
			logger.Info("payment gateway registered", zap.String("gateway", "razorpay"))
		}
	}

	if cfg.PayU.Enabled {
		adapter, err := NewPayUAdapter(cfg.PayU)
		if err != nil {
			logger.Warn("payu gateway not registered", zap.Error(err))
		} else {
			registry.gateways[payment.GatewayTypePayU] = adapter
			logger.Info("payment gateway registered", zap.String("gateway", "payu"))
		}
	}

	return registry
}

// Register adds a gateway to the registry. Used by tests to install fakes.
func (r *GatewayRegistry) Register(gw payment.Gateway) {
	r.gateways[gw.GatewayType()] = gw
}

// Get returns the gateway for the given type
func (r *GatewayRegistry) Get(gatewayType payment.GatewayType) (payment.Gateway, error) {
	if !gatewayType.IsValid() {
		return nil, fmt.Errorf("%w: %s", payment.ErrUnknownGateway, gatewayType)
	}
	gw, ok := r.gateways[gatewayType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", payment.ErrGatewayNotEnabled, gatewayType)
	}
	return gw, nil
}

// List returns all registered gateways
func (r *GatewayRegistry) List() []payment.Gateway {
	gateways := make([]payment.Gateway, 0, len(r.gateways))
	for _, gw := range r.gateways {
		gateways = append(gateways, gw)
	}
	return gateways
}

// IsEnabled reports whether the gateway type is configured
func (r *GatewayRegistry) IsEnabled(gatewayType payment.GatewayType) bool {
	_, ok := r.gateways[gatewayType]
	return ok
}

var _ payment.Registry = (*GatewayRegistry)(nil)
