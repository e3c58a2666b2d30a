package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_RegisterAndGet(t *testing.T) {
	registry := NewHandlerRegistry()

	orderHandler := newTestHandler("order.created")
	shipHandler := newTestHandler("shipment.created")
	registry.Register(orderHandler, "order.created")
	registry.Register(shipHandler, "shipment.created")

	handlers := registry.GetHandlers("order.created")
	assert.Len(t, handlers, 1)
	assert.Empty(t, registry.GetHandlers("order.paid"))
}

func TestHandlerRegistry_MultipleHandlersPerType(t *testing.T) {
	registry := NewHandlerRegistry()

	first := newTestHandler("order.paid")
	second := newTestHandler("order.paid")
	registry.Register(first, "order.paid")
	registry.Register(second, "order.paid")

	assert.Len(t, registry.GetHandlers("order.paid"), 2)
}

func TestHandlerRegistry_WildcardMatchesEverything(t *testing.T) {
	registry := NewHandlerRegistry()

	wildcard := newTestHandler()
	registry.Register(wildcard)

	assert.Len(t, registry.GetHandlers("order.created"), 1)
	assert.Len(t, registry.GetHandlers("anything.else"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()

	handler := newTestHandler("order.created", "order.cancelled")
	registry.Register(handler, handler.EventTypes()...)
	registry.Unregister(handler)

	assert.Empty(t, registry.GetHandlers("order.created"))
	assert.Empty(t, registry.GetHandlers("order.cancelled"))
}

func TestHandlerRegistry_UnregisterWildcard(t *testing.T) {
	registry := NewHandlerRegistry()

	wildcard := newTestHandler()
	registry.Register(wildcard)
	registry.Unregister(wildcard)

	assert.Empty(t, registry.GetHandlers("order.created"))
}
