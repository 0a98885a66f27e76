package repositories

import (
	"context"
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
)

// OrderReader defines read operations for order data
type OrderReader interface {
	// FindOrderByID retrieves an order with its line-item snapshots.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves the most recent orders, newest first.
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)

	// FindCompletedOrdersWithoutIncome retrieves COMPLETED orders that have no
	// linked INCOME ledger entry. This is the reconciliation drift predicate.
	FindCompletedOrdersWithoutIncome(ctx context.Context) ([]domain.Order, error)
}

// OrderWriter defines write operations for order data
type OrderWriter interface {
	// SaveOrder persists a new PENDING order and its line items.
	SaveOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) error

	// CompleteOrder locks the order row, verifies it is still PENDING, marks it
	// COMPLETED and posts exactly one INCOME ledger entry for its total, all in
	// one atomic unit. Returns ErrAlreadyHandled when the order is not PENDING.
	CompleteOrder(ctx context.Context, orderID string, incomeTransactionID string, now time.Time) (*domain.Order, error)

	// CancelOrder locks the order row and moves PENDING -> CANCELLED with no
	// ledger effect. Returns ErrAlreadyHandled when the order is not PENDING.
	CancelOrder(ctx context.Context, orderID string, now time.Time) (*domain.Order, error)
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
