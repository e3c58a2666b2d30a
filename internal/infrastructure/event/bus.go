package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// InMemoryEventBus delivers domain events synchronously to registered
// handlers in the same process. Handler failures are logged and never
// abort the publishing operation.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
	wg       sync.WaitGroup
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers events to all matching handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		return fmt.Errorf("event bus is not running")
	}

	for _, event := range events {
		handlers := b.registry.GetHandlers(event.EventType())
		if len(handlers) == 0 {
			b.logger.Debug("no handlers registered for event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()))
			continue
		}

		for _, handler := range handlers {
			b.dispatchToHandler(ctx, handler, event)
		}
	}
	return nil
}

// Subscribe registers a handler for the event types it declares. A
// handler declaring no event types receives all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler) error {
	b.registry.Register(handler, handler.EventTypes()...)
	return nil
}

// Unsubscribe removes a handler from the bus
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) error {
	b.registry.Unregister(handler)
	return nil
}

// Start marks the bus as running
func (b *InMemoryEventBus) Start() error {
	if !b.running.CompareAndSwap(false, true) {
		return fmt.Errorf("event bus is already running")
	}
	b.logger.Info("event bus started")
	return nil
}

// Stop waits for in-flight dispatches and stops the bus
func (b *InMemoryEventBus) Stop() error {
	if !b.running.CompareAndSwap(true, false) {
		return fmt.Errorf("event bus is not running")
	}
	b.wg.Wait()
	b.logger.Info("event bus stopped")
	return nil
}

func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) {
	b.wg.Add(1)
	defer b.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Any("panic", r))
		}
	}()

	if err := handler.Handle(ctx, event); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err))
	}
}
