package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kruathong/pos_ledger_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	stockRepo := newPgxStockRepository(dbPool, transactionRepo)
	orderRepo := newPgxOrderRepository(dbPool, transactionRepo)

	return portsrepo.RepositoryProvider{
		StockRepo:       stockRepo,
		TransactionRepo: transactionRepo,
		OrderRepo:       orderRepo,
	}
}
