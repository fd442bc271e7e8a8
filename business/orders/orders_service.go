package orders

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"viralWallet/business/catalog"
	"viralWallet/domain"
	"viralWallet/pkg/logger"
	"viralWallet/pkg/metrics"

	"github.com/google/uuid"
)

// OrderRepository contract interface. CreateWithDebit must be atomic: the
// order row and the wallet debit commit together or not at all.
type OrderRepository interface {
	CreateWithDebit(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindStuckProcessing(ctx context.Context, cutoff time.Time) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, from, to string, completedAt *time.Time) error
}

type ordersService struct {
	orderRepo   OrderRepository
	serviceRepo catalog.ServiceRepository
	now         func() time.Time
}

func NewOrdersService(orderRepo OrderRepository, serviceRepo catalog.ServiceRepository) *ordersService {
	return &ordersService{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		now:         time.Now,
	}
}

type CreateOrderInput struct {
	UserID    uint
	ServiceID uint
	Quantity  int
	Link      string
}

// CreateOrder places an order: validates the service and quantity, computes
// the price, debits the wallet and persists the order in one transaction.
// Orders go straight to processing; the pending status only exists for
// records imported from elsewhere.
func (s *ordersService) CreateOrder(ctx context.Context, caller domain.Caller, input CreateOrderInput) (domain.Order, error) {
	if !caller.CanActFor(input.UserID) {
		return domain.Order{}, domain.ErrUnauthorized
	}

	service, err := s.serviceRepo.FindByID(ctx, input.ServiceID)
	if err != nil {
		logger.Error("Ordered service not found", err)
		return domain.Order{}, err
	}

	if service.Status != domain.ServiceStatusActive {
		return domain.Order{}, fmt.Errorf("%w: service %d", domain.ErrServiceUnavailable, service.ID)
	}

	if err := catalog.ValidateQuantity(service, input.Quantity); err != nil {
		return domain.Order{}, err
	}

	if err := validateLink(input.Link); err != nil {
		return domain.Order{}, err
	}

	price := catalog.PriceFor(service, input.Quantity)

	order := domain.Order{
		Reference:   uuid.NewString(),
		UserID:      input.UserID,
		ServiceID:   service.ID,
		ServiceName: service.ServiceType,
		Platform:    service.Platform,
		Quantity:    input.Quantity,
		Price:       price,
		Link:        input.Link,
		Status:      domain.OrderStatusProcessing,
		CreatedAt:   s.now(),
	}

	if err := s.orderRepo.CreateWithDebit(ctx, &order); err != nil {
		logger.Error("Failed to place order", "user_id", input.UserID, "service_id", service.ID, "error", err)
		return domain.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	logger.Info("Order placed", "order_id", order.ID, "user_id", order.UserID, "price", order.Price)

	return order, nil
}

// SetStatus applies an admin status transition. The edge must be legal:
// pending -> processing, processing -> completed|failed. Completing stamps
// CompletedAt; nothing else touches it.
func (s *ordersService) SetStatus(ctx context.Context, caller domain.Caller, orderID uint, newStatus string) (domain.Order, error) {
	if !caller.IsAdmin() {
		return domain.Order{}, domain.ErrUnauthorized
	}

	if !domain.IsValidOrderStatus(newStatus) {
		return domain.Order{}, fmt.Errorf("unknown order status %q", newStatus)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	return s.transition(ctx, order, newStatus)
}

// AutoComplete moves a processing order to completed. Called only by the
// background processor; a lost race with an admin action surfaces as
// ErrInvalidState from the guarded update and is safe to ignore.
func (s *ordersService) AutoComplete(ctx context.Context, orderID uint) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	return s.transition(ctx, order, domain.OrderStatusCompleted)
}

func (s *ordersService) transition(ctx context.Context, order domain.Order, newStatus string) (domain.Order, error) {
	if !domain.CanTransitionOrder(order.Status, newStatus) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	var completedAt *time.Time
	if newStatus == domain.OrderStatusCompleted {
		ts := s.now()
		completedAt = &ts
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status, newStatus, completedAt); err != nil {
		return domain.Order{}, err
	}

	logger.Info("Order status updated", "order_id", order.ID, "from", order.Status, "to", newStatus)

	order.Status = newStatus
	order.CompletedAt = completedAt
	return order, nil
}

func (s *ordersService) GetOrder(ctx context.Context, caller domain.Caller, orderID uint) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if !caller.CanActFor(order.UserID) {
		return domain.Order{}, domain.ErrUnauthorized
	}

	return order, nil
}

func (s *ordersService) ListByUser(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Order, error) {
	if !caller.CanActFor(userID) {
		return nil, domain.ErrUnauthorized
	}

	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *ordersService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.Order, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	return s.orderRepo.FindAll(ctx)
}

// ListStuckProcessing returns orders that have sat in processing for at
// least olderThan. Consumed by the background processor.
func (s *ordersService) ListStuckProcessing(ctx context.Context, olderThan time.Duration) ([]domain.Order, error) {
	cutoff := s.now().Add(-olderThan)
	return s.orderRepo.FindStuckProcessing(ctx, cutoff)
}

func validateLink(link string) error {
	if link == "" {
		return fmt.Errorf("link is required")
	}

	u, err := url.ParseRequestURI(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("link must be a valid URL")
	}

	return nil
}
