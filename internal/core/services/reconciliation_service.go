package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/kruathong/pos_ledger_backend/internal/apperrors"
	"github.com/kruathong/pos_ledger_backend/internal/core/domain"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/kruathong/pos_ledger_backend/internal/core/ports/services"
)

const syncExpenseLockKey = "posledger:sync:expense"

// reconciliationService repairs drift between the source records (orders,
// stock) and the ledger. SyncExpense is destructive and therefore
// single-flight: a Redis lock fences other instances and an in-process mutex
// fences concurrent requests on this one.
type reconciliationService struct {
	BaseService
	orderRepo       portsrepo.OrderRepositoryFacade
	stockRepo       portsrepo.StockRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	locker          *redislock.Client
	lockTTL         time.Duration
	mu              sync.Mutex
}

// NewReconciliationService creates a new ReconciliationService. locker may be
// nil when Redis is not configured; the in-process mutex still applies.
func NewReconciliationService(
	orderRepo portsrepo.OrderRepositoryFacade,
	stockRepo portsrepo.StockRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	locker *redislock.Client,
	lockTTL time.Duration,
) portssvc.ReconciliationSvcFacade {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &reconciliationService{
		orderRepo:       orderRepo,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		locker:          locker,
		lockTTL:         lockTTL,
	}
}

// Ensure reconciliationService implements the portssvc.ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SyncIncome posts one INCOME entry per COMPLETED order lacking one, dated at
// the order's completion time so historical reports stay correct. The
// missing-income predicate is evaluated against current ledger state, which
// makes the operation idempotent.
func (s *reconciliationService) SyncIncome(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.FindCompletedOrdersWithoutIncome(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to find completed orders without income")
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	txns := make([]domain.Transaction, len(orders))
	for i, order := range orders {
		orderID := order.OrderID
		txns[i] = domain.Transaction{
			TransactionID: uuid.NewString(),
			Kind:          domain.Income,
			Amount:        order.TotalAmount,
			Category:      domain.CategorySales,
			Description:   fmt.Sprintf("Order: %s", order.CustomerName),
			OrderID:       &orderID,
			CreatedAt:     order.LastUpdatedAt,
		}
	}

	created, err := s.transactionRepo.SaveTransactions(ctx, txns)
	if err != nil {
		s.LogError(ctx, err, "failed to save synced income entries")
		return 0, err
	}

	s.LogInfo(ctx, "income reconciliation complete",
		slog.Int("orders_missing_income", len(orders)),
		slog.Int("incomes_created", created))
	return created, nil
}

// SyncExpense deletes every Stock Purchase expense and re-derives one entry
// per stock item from its current quantity and unit cost, dated at the item's
// creation. The delete and the rebuild commit together.
func (s *reconciliationService) SyncExpense(ctx context.Context) (int, int, error) {
	if !s.mu.TryLock() {
		return 0, 0, apperrors.ErrSyncInProgress
	}
	defer s.mu.Unlock()

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, syncExpenseLockKey, s.lockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return 0, 0, apperrors.ErrSyncInProgress
		}
		if err != nil {
			s.LogError(ctx, err, "failed to obtain expense sync lock")
			return 0, 0, err
		}
		defer func() {
			if rErr := lock.Release(context.WithoutCancel(ctx)); rErr != nil && !errors.Is(rErr, redislock.ErrLockNotHeld) {
				s.LogError(ctx, rErr, "failed to release expense sync lock")
			}
		}()
	}

	items, err := s.stockRepo.ListStockItems(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list stock items for expense sync")
		return 0, 0, err
	}

	txns := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		value := item.TotalValue()
		if value.IsZero() {
			continue
		}
		stockItemID := item.StockItemID
		txns = append(txns, domain.Transaction{
			TransactionID: uuid.NewString(),
			Kind:          domain.Expense,
			Amount:        value,
			Category:      domain.CategoryStockPurchase,
			Description:   fmt.Sprintf("Stock on hand: %s (%s %s)", item.Name, item.Quantity.String(), item.Unit),
			StockItemID:   &stockItemID,
			CreatedAt:     item.CreatedAt,
		})
	}

	removed, err := s.transactionRepo.RebuildStockPurchaseExpenses(ctx, txns)
	if err != nil {
		s.LogError(ctx, err, "failed to rebuild stock purchase expenses")
		return 0, 0, err
	}

	s.LogInfo(ctx, "expense reconciliation complete",
		slog.Int("expenses_removed", removed),
		slog.Int("expenses_recreated", len(txns)))
	return removed, len(txns), nil
}

// SyncAll runs SyncIncome then SyncExpense and reports the combined counts.
func (s *reconciliationService) SyncAll(ctx context.Context) (*domain.SyncReport, error) {
	created, err := s.SyncIncome(ctx)
	if err != nil {
		return nil, err
	}

	removed, recreated, err := s.SyncExpense(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SyncReport{
		IncomesCreated:    created,
		ExpensesRemoved:   removed,
		ExpensesRecreated: recreated,
	}, nil
}
