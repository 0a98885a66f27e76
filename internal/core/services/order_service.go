package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
)

const defaultOrderListLimit = 50

// orderService provides order intake and the PENDING -> COMPLETED/CANCELLED
// lifecycle. Completion is the only path that produces revenue.
type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryFacade) portssvc.OrderSvcFacade {
	return &orderService{orderRepo: orderRepo}
}

// Ensure orderService implements the portssvc.OrderSvcFacade interface
var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder persists a PENDING order with frozen line-item snapshots. The
// caller's totalAmount is taken as the post-discount amount charged.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must have at least one item", apperrors.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: order total must be positive", apperrors.ErrValidation)
	}
	if req.DiscountAmount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: item quantity must be positive", apperrors.ErrInvalidQuantity)
		}
	}

	now := time.Now()
	order := domain.Order{
		OrderID:        uuid.NewString(),
		CustomerName:   req.CustomerName,
		TotalAmount:    req.TotalAmount,
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  req.PaymentMethod,
		Status:         domain.OrderPending,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			OrderItemID: uuid.NewString(),
			OrderID:     order.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	if err := s.orderRepo.SaveOrder(ctx, order, items); err != nil {
		s.LogError(ctx, err, "failed to create order")
		return nil, err
	}

	order.Items = items
	s.LogInfo(ctx, "order created",
		slog.String("order_id", order.OrderID),
		slog.String("total_amount", order.TotalAmount.String()))
	return &order, nil
}

// CompleteOrder moves PENDING -> COMPLETED and posts exactly one INCOME entry
// for the order total. The repository serializes racing attempts; losers get
// ErrAlreadyHandled.
func (s *orderService) CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.CompleteOrder(ctx, orderID, uuid.NewString(), time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to complete order", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "order completed",
		slog.String("order_id", orderID),
		slog.String("total_amount", order.TotalAmount.String()))
	return order, nil
}

// CancelOrder moves PENDING -> CANCELLED with no ledger effect.
func (s *orderService) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.CancelOrder(ctx, orderID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "failed to cancel order", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "order cancelled", slog.String("order_id", orderID))
	return order, nil
}

// GetOrderByID retrieves an order with its line-item snapshots.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders retrieves the most recent orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultOrderListLimit
	}
	orders, err := s.orderRepo.ListOrders(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "failed to list orders")
		return nil, err
	}
	return orders, nil
}
