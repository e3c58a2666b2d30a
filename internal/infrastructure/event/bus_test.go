package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "payload",
	}
}

type testHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func startedBus(t *testing.T) *InMemoryEventBus {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start())
	t.Cleanup(func() { _ = bus.Stop() })
	return bus
}

func TestInMemoryEventBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("order.confirmed")
	require.NoError(t, bus.Subscribe(handler))

	event := newTestEvent("order.confirmed")
	require.NoError(t, bus.Publish(context.Background(), event))

	handled := handler.getHandled()
	require.Len(t, handled, 1)
	assert.Equal(t, event.EventID(), handled[0].EventID())
}

func TestInMemoryEventBus_PublishSkipsOtherEventTypes(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("order.confirmed")
	require.NoError(t, bus.Subscribe(handler))

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.cancelled")))
	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_WildcardHandlerReceivesEverything(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler()
	require.NoError(t, bus.Subscribe(handler))

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("order.confirmed"),
		newTestEvent("shipment.created")))
	assert.Len(t, handler.getHandled(), 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotAbortPublish(t *testing.T) {
	bus := startedBus(t)

	failing := newTestHandler("order.paid")
	failing.err = errors.New("boom")
	healthy := newTestHandler("order.paid")
	require.NoError(t, bus.Subscribe(failing))
	require.NoError(t, bus.Subscribe(healthy))

	err := bus.Publish(context.Background(), newTestEvent("order.paid"))
	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_PublishRequiresRunningBus(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	err := bus.Publish(context.Background(), newTestEvent("order.created"))
	assert.Error(t, err)
}

func TestInMemoryEventBus_StartStopLifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start())
	assert.Error(t, bus.Start(), "double start must fail")
	require.NoError(t, bus.Stop())
	assert.Error(t, bus.Stop(), "double stop must fail")
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := startedBus(t)

	handler := newTestHandler("order.confirmed")
	require.NoError(t, bus.Subscribe(handler))
	require.NoError(t, bus.Unsubscribe(handler))

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.confirmed")))
	assert.Empty(t, handler.getHandled())
}
