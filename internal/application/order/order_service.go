package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService handles order retrieval and lifecycle operations
type OrderService struct {
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order, enforcing ownership unless admin
func (s *OrderService) GetByID(ctx context.Context, customerID, orderID uuid.UUID, admin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && o.Customer.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its number
func (s *OrderService) GetByOrderNumber(ctx context.Context, customerID uuid.UUID, orderNumber string, admin bool) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !admin && o.Customer.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListForCustomer retrieves the customer's orders, newest first
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter ListFilter) ([]ListItemResponse, int64, error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ListItemResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToListItemResponse(o))
	}
	return responses, total, nil
}

// List retrieves all orders for the admin view
func (s *OrderService) List(ctx context.Context, filter ListFilter) ([]ListItemResponse, int64, error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ListItemResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToListItemResponse(o))
	}
	return responses, total, nil
}

// Cancel cancels an order while it is still cancellable
func (s *OrderService) Cancel(ctx context.Context, customerID, orderID uuid.UUID, admin bool, req CancelRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && o.Customer.CustomerID != customerID {
		return nil, shared.ErrNotFound
	}

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// MarkDelivered records delivery, typically from a tracking sync
func (s *OrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Deliver(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Event handling is async and best effort
		}
	}
	o.ClearDomainEvents()
}

func toSharedFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = "created_at"
	f.OrderDir = "desc"
	if filter.Status != "" {
		f.Filters["status"] = string(filter.Status)
	}
	if filter.PaymentStatus != "" {
		f.Filters["payment_status"] = string(filter.PaymentStatus)
	}
	return f
}
