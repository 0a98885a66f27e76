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

// ledgerService provides append and query operations over the financial
// ledger. Entries are immutable once written.
type ledgerService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{transactionRepo: transactionRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostTransaction appends one manual ledger entry. CreatedAt may backdate the
// entry; it defaults to now.
func (s *ledgerService) PostTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	kind := domain.TransactionKind(req.Kind)
	if kind != domain.Income && kind != domain.Expense {
		return nil, fmt.Errorf("%w: kind must be INCOME or EXPENSE", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	createdAt := time.Now()
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          kind,
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		CreatedAt:     createdAt,
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to save transaction", slog.String("kind", req.Kind))
		return nil, err
	}

	s.LogInfo(ctx, "transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// QueryTransactions returns matching entries, newest first.
func (s *ledgerService) QueryTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions")
		return nil, err
	}
	return txns, nil
}

// Sum folds income and expense totals over the date range.
func (s *ledgerService) Sum(ctx context.Context, dateRange domain.DateRange) (domain.LedgerTotals, error) {
	totals, err := s.transactionRepo.SumTransactions(ctx, dateRange)
	if err != nil {
		s.LogError(ctx, err, "failed to sum transactions")
		return domain.LedgerTotals{}, err
	}
	return totals, nil
}
