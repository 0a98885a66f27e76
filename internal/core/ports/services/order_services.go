package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
)

// OrderReaderSvc defines read-only order operations.
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order with its line-item snapshots.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves the most recent orders, newest first.
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

// OrderWriterSvc defines order intake and the lifecycle transitions.
type OrderWriterSvc interface {
	// CreateOrder accepts an intake event and persists a PENDING order.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)

	// CompleteOrder moves PENDING -> COMPLETED and posts exactly one INCOME
	// entry for the order total, atomically. Concurrent calls for the same
	// order serialize so that one succeeds and the rest get ErrAlreadyHandled.
	CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// CancelOrder moves PENDING -> CANCELLED with no ledger effect.
	CancelOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderSvcFacade combines all order service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
