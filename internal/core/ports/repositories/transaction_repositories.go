package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
)

// TransactionReader defines read operations over the financial ledger
type TransactionReader interface {
	// ListTransactions retrieves ledger entries matching the filter, newest first.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// SumTransactions folds income and expense totals over the date range.
	SumTransactions(ctx context.Context, dateRange domain.DateRange) (domain.LedgerTotals, error)
}

// TransactionWriter defines append operations on the ledger. Entries are
// immutable once written; the only delete path is the reconciliation rebuild.
type TransactionWriter interface {
	// SaveTransaction appends a single ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions appends a batch of ledger entries in one atomic unit.
	// Entries carrying an order reference that already has an INCOME entry are
	// skipped silently (at-most-once posting).
	SaveTransactions(ctx context.Context, txns []domain.Transaction) (int, error)

	// RebuildStockPurchaseExpenses atomically deletes every Stock Purchase
	// EXPENSE entry and appends the given replacement set. Returns the number
	// of entries removed.
	RebuildStockPurchaseExpenses(ctx context.Context, txns []domain.Transaction) (int, error)
}

// TransactionTxSupport defines ledger writes that participate in another
// repository's transaction (stock acquisition, order completion).
type TransactionTxSupport interface {
	// InsertTransactionInTx appends a ledger entry within the given transaction.
	InsertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTxSupport
}
