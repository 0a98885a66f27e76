package services

import (
	"context"

	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
)

// ReconciliationSvcFacade repairs drift between source records (orders,
// stock) and the ledger. "Nothing to do" is the expected steady state, not an
// error.
type ReconciliationSvcFacade interface {
	// SyncIncome posts one INCOME entry, dated at the order's completion time,
	// for every COMPLETED order lacking one. Idempotent: the missing-income
	// predicate is re-evaluated against ledger state each run.
	SyncIncome(ctx context.Context) (int, error)

	// SyncExpense deletes all Stock Purchase EXPENSE entries and re-derives
	// one per current stock item (quantity x costPerUnit, dated at item
	// creation). Destructive but deterministic; guarded by a single-flight
	// lock and must not run concurrently with itself.
	SyncExpense(ctx context.Context) (removed, recreated int, err error)

	// SyncAll runs SyncIncome then SyncExpense and reports the combined counts.
	SyncAll(ctx context.Context) (*domain.SyncReport, error)
}
