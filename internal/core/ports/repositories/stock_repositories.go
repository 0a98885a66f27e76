package repositories

import (
	"context"
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StockReader defines read operations for stock data
type StockReader interface {
	// FindStockItemByID retrieves a specific stock item by its unique identifier.
	FindStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error)

	// ListStockItems retrieves all stock items ordered by name.
	ListStockItems(ctx context.Context) ([]domain.StockItem, error)

	// FindStockLogsByItemID retrieves the most recent movement logs for an item, newest first.
	FindStockLogsByItemID(ctx context.Context, stockItemID string, limit int) ([]domain.StockLog, error)
}

// StockWriter defines write operations for stock data. Each method is one
// atomic unit of work: the item mutation, its stock log, and any ledger entry
// commit together or not at all.
type StockWriter interface {
	// SaveStockItem persists a new item with its initial RESTOCK log and, when
	// expense is non-nil, the acquisition EXPENSE ledger entry.
	SaveStockItem(ctx context.Context, item domain.StockItem, log domain.StockLog, expense *domain.Transaction) error

	// ApplyRestock locks the item row, recomputes the weighted-average unit
	// cost from the new batch, appends a RESTOCK log and posts the batch
	// EXPENSE. Returns the updated item.
	ApplyRestock(ctx context.Context, stockItemID string, addedQuantity, batchCost decimal.Decimal, supplier *string, logID, transactionID string, now time.Time) (*domain.StockItem, error)

	// ApplyDeduction locks the item row and decrements its quantity, appending
	// a USE/WASTE log with the current unit cost. Fails with
	// ErrInsufficientStock without any state change when amount exceeds the
	// on-hand quantity. No ledger entry is written.
	ApplyDeduction(ctx context.Context, stockItemID string, amount decimal.Decimal, kind domain.StockLogKind, reason string, logID string, now time.Time) (*domain.StockItem, error)

	// RemoveStockItem deletes an item after posting a Stock Adjustment
	// reversal for its remaining value (skipped when that value is zero).
	RemoveStockItem(ctx context.Context, stockItemID string, adjustmentTransactionID string, now time.Time) error
}

// StockRepositoryFacade combines all stock-related repository interfaces
type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
