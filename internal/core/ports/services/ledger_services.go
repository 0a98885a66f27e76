package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	"github.com/kruathong/pos_ledger_backend/internal/dto"
)

// LedgerReaderSvc defines read-only ledger operations. The query feed is
// self-consistent with Sum: folding the returned entries yields the totals.
type LedgerReaderSvc interface {
	// QueryTransactions returns matching entries, newest first.
	QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// Sum folds income and expense totals over the date range.
	Sum(ctx context.Context, dateRange domain.DateRange) (domain.LedgerTotals, error)
}

// LedgerWriterSvc defines the manual append path into the ledger.
type LedgerWriterSvc interface {
	// PostTransaction appends one immutable entry. The timestamp defaults to
	// now; callers may backdate synced or historical entries.
	PostTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
