package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
)

// StockReaderSvc defines read-only stock operations exposed to reporting/UI.
type StockReaderSvc interface {
	// Overview returns all items (name ASC) with the shop-wide stock value.
	Overview(ctx context.Context) (*domain.StockOverview, error)

	// GetStockItemByID retrieves a single item.
	GetStockItemByID(ctx context.Context, stockItemID string) (*domain.StockItem, error)

	// History returns the most recent movement logs for an item, newest first.
	History(ctx context.Context, stockItemID string, limit int) ([]domain.StockLog, error)
}

// StockWriterSvc defines the mutating stock-ledger operations. Every method
// is atomic: the item mutation, its log entry and any ledger posting commit
// together.
type StockWriterSvc interface {
	// CreateStockItem creates an item, its initial RESTOCK log and, when the
	// acquisition cost is positive, the EXPENSE ledger entry.
	CreateStockItem(ctx context.Context, req dto.CreateStockItemRequest) (*domain.StockItem, error)

	// Restock adds a priced batch, recomputing the weighted-average unit cost,
	// and posts the batch EXPENSE.
	Restock(ctx context.Context, stockItemID string, req dto.RestockRequest) (*domain.StockItem, error)

	// Deduct cuts stock for USE or WASTE. Usage posts no ledger entry; the
	// cost was recognized at acquisition time.
	Deduct(ctx context.Context, stockItemID string, req dto.DeductStockRequest) (*domain.StockItem, error)

	// RemoveStockItem deletes an item, first reversing the expense for any
	// remaining stock value.
	RemoveStockItem(ctx context.Context, stockItemID string) error
}

// StockSvcFacade combines all stock service interfaces
type StockSvcFacade interface {
	StockReaderSvc
	StockWriterSvc
}
